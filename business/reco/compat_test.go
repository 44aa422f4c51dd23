//go:build !integration

package reco

import (
	"math"
	"testing"

	"orchidMatch/domain"

	"gorm.io/datatypes"
)

func fullProfile() domain.GrowerProfile {
	return domain.GrowerProfile{
		UserID:             1,
		LightLevel:         "low",
		TemperatureMinC:    15,
		TemperatureMaxC:    30,
		HumidityMinPercent: 40,
		HumidityMaxPercent: 80,
		SkillCeiling:       "Moderate",
	}
}

func TestEnvironmentalScore_FullContainment(t *testing.T) {
	needs := buildProfileNeeds(fullProfile())
	fv := Normalize(fullOrchid())

	if got := environmentalScore(needs, fv); got != 100 {
		t.Errorf("contained ranges should score 100, got %v", got)
	}
	if needs.lowConfidence {
		t.Error("complete profile should not be low confidence")
	}
}

func TestEnvironmentalScore_LinearTemperaturePenalty(t *testing.T) {
	needs := buildProfileNeeds(fullProfile())

	o := fullOrchid()
	o.TemperatureMaxC = 32 // 2 degrees past the grower's 30
	fv := Normalize(o)

	want := 100.0 - 2*tempPenaltyPerC
	if got := environmentalScore(needs, fv); math.Abs(got-want) > 1e-9 {
		t.Errorf("2C overflow should score %v, got %v", want, got)
	}
}

func TestEnvironmentalScore_LightStepPenalty(t *testing.T) {
	needs := buildProfileNeeds(fullProfile())

	o := fullOrchid()
	o.LightRequirementFC = 3500 // high, grower has low
	fv := Normalize(o)

	want := 100.0 - 2*lightPenaltyPerStep
	if got := environmentalScore(needs, fv); math.Abs(got-want) > 1e-9 {
		t.Errorf("two light steps should score %v, got %v", want, got)
	}
}

func TestEnvironmentalScore_FlooredAtZero(t *testing.T) {
	needs := buildProfileNeeds(fullProfile())

	o := fullOrchid()
	o.TemperatureMinC = -20
	o.TemperatureMaxC = 60
	fv := Normalize(o)

	if got := environmentalScore(needs, fv); got != 0 {
		t.Errorf("massive overflow should floor at 0, got %v", got)
	}
}

func TestCareScore_HardCeilingExcludes(t *testing.T) {
	p := fullProfile()
	p.SkillCeiling = "Easy"
	needs := buildProfileNeeds(p)

	o := fullOrchid()
	o.Difficulty = "Difficult"
	fv := Normalize(o)

	if _, ok := careScore(needs, fv); ok {
		t.Error("orchid above the skill ceiling must be excluded, not scored")
	}
}

func TestCareScore_MatchAndAdjacent(t *testing.T) {
	needs := buildProfileNeeds(fullProfile()) // Moderate ceiling

	o := fullOrchid()
	o.Difficulty = "Moderate"
	if got, ok := careScore(needs, Normalize(o)); !ok || got != 100 {
		t.Errorf("exact difficulty match should score 100, got %v ok=%v", got, ok)
	}

	o.Difficulty = "Easy"
	if got, ok := careScore(needs, Normalize(o)); !ok || got != 50 {
		t.Errorf("one tier below should score 50, got %v ok=%v", got, ok)
	}
}

func TestBuildProfileNeeds_MissingCeilingIsSoft(t *testing.T) {
	p := fullProfile()
	p.SkillCeiling = ""
	needs := buildProfileNeeds(p)

	if needs.hasCeiling {
		t.Error("empty ceiling must not become a hard constraint")
	}
	if needs.ceilingRank != DifficultyModerate {
		t.Errorf("missing ceiling should score against moderate, got %d", needs.ceilingRank)
	}
	if !needs.lowConfidence {
		t.Error("missing ceiling should lower confidence")
	}

	o := fullOrchid()
	o.Difficulty = "Difficult"
	if _, ok := careScore(needs, Normalize(o)); !ok {
		t.Error("without a ceiling nothing is excluded")
	}
}

func TestAestheticScore_NeutralWithoutPreferences(t *testing.T) {
	needs := buildProfileNeeds(fullProfile())
	fv := Normalize(fullOrchid())

	if got := aestheticScore(needs, fv); got != neutralScore {
		t.Errorf("no stated preferences should score neutral %v, got %v", neutralScore, got)
	}
}

func TestAestheticScore_ColorMatch(t *testing.T) {
	p := fullProfile()
	p.PreferredColors = datatypes.JSONMap{"white": true, "pink": true}
	needs := buildProfileNeeds(p)

	fv := Normalize(fullOrchid()) // white

	want := aestheticColorShare*100 + aestheticSizeShare*neutralScore + aestheticFragranceShare*neutralScore
	if got := aestheticScore(needs, fv); math.Abs(got-want) > 1e-9 {
		t.Errorf("color match should score %v, got %v", want, got)
	}

	o := fullOrchid()
	o.FlowerColor = "Yellow"
	want = aestheticSizeShare*neutralScore + aestheticFragranceShare*neutralScore
	if got := aestheticScore(needs, Normalize(o)); math.Abs(got-want) > 1e-9 {
		t.Errorf("color miss should score %v, got %v", want, got)
	}
}

func TestPopularityScore_Clamps(t *testing.T) {
	if got := popularityScore(0.7); got != 70 {
		t.Errorf("popularityScore(0.7) = %v", got)
	}
	if got := popularityScore(-2); got != 0 {
		t.Errorf("negative signal should clamp to 0, got %v", got)
	}
	if got := popularityScore(3); got != 100 {
		t.Errorf("oversized signal should clamp to 100, got %v", got)
	}
}
