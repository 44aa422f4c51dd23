//go:build !integration

package reco

import (
	"reflect"
	"testing"

	"orchidMatch/domain"
)

func fullOrchid() domain.Orchid {
	return domain.Orchid{
		ID:                 7,
		ScientificName:     "Phalaenopsis amabilis",
		Genus:              "Phalaenopsis",
		GrowthHabit:        "Epiphyte",
		FlowerColor:        "White",
		FlowerSizeCm:       8,
		Fragrance:          false,
		BloomingSeasons:    "Winter, Spring",
		BloomDurationWeeks: 8,
		LightRequirementFC: 1200,
		TemperatureMinC:    18,
		TemperatureMaxC:    29,
		HumidityMinPercent: 50,
		HumidityMaxPercent: 70,
		Difficulty:         "Easy",
		NativeRegions:      "Southeast Asia, Philippines",
	}
}

func TestNormalize_CompleteOrchid(t *testing.T) {
	fv := Normalize(fullOrchid())

	if fv.Incomplete {
		t.Error("complete orchid should not be flagged incomplete")
	}
	if fv.Genus != "phalaenopsis" {
		t.Errorf("genus not lowercased: %q", fv.Genus)
	}
	if fv.FlowerColor != "white" {
		t.Errorf("color not lowercased: %q", fv.FlowerColor)
	}
	if fv.LightRank != LightLow {
		t.Errorf("1200 fc should be low light, got rank %d", fv.LightRank)
	}
	if fv.DifficultyRank != DifficultyEasy {
		t.Errorf("expected easy rank, got %d", fv.DifficultyRank)
	}
	if want := 8.0 / 25.0; fv.SizeNorm != want {
		t.Errorf("SizeNorm = %v, want %v", fv.SizeNorm, want)
	}
	if want := 8.0 / 16.0; fv.BloomNorm != want {
		t.Errorf("BloomNorm = %v, want %v", fv.BloomNorm, want)
	}
	if !reflect.DeepEqual(fv.Seasons, []string{"winter", "spring"}) {
		t.Errorf("Seasons = %v", fv.Seasons)
	}
	if !reflect.DeepEqual(fv.Regions, []string{"southeast asia", "philippines"}) {
		t.Errorf("Regions = %v", fv.Regions)
	}
}

func TestNormalize_ClampsOutOfBoundValues(t *testing.T) {
	o := fullOrchid()
	o.FlowerSizeCm = 120
	o.BloomDurationWeeks = 52

	fv := Normalize(o)

	if fv.SizeNorm != 1.0 {
		t.Errorf("oversized flower should clamp to 1.0, got %v", fv.SizeNorm)
	}
	if fv.BloomNorm != 1.0 {
		t.Errorf("overlong bloom should clamp to 1.0, got %v", fv.BloomNorm)
	}
	if fv.Incomplete {
		t.Error("clamped values must not mark the vector incomplete")
	}
}

func TestNormalize_LightBucketBoundaries(t *testing.T) {
	cases := []struct {
		fc   float64
		want int
	}{
		{100, LightLow},
		{1499.9, LightLow},
		{1500, LightMedium},
		{2999.9, LightMedium},
		{3000, LightHigh},
		{5000, LightHigh},
	}
	for _, tc := range cases {
		o := fullOrchid()
		o.LightRequirementFC = tc.fc
		if got := Normalize(o).LightRank; got != tc.want {
			t.Errorf("lightBucket(%v) = %d, want %d", tc.fc, got, tc.want)
		}
	}
}

func TestNormalize_MissingFieldsTakeNeutralDefaults(t *testing.T) {
	fv := Normalize(domain.Orchid{ID: 1, Genus: "Cattleya"})

	if !fv.Incomplete {
		t.Fatal("empty orchid must be flagged incomplete")
	}
	if fv.SizeNorm != neutralUnit || fv.BloomNorm != neutralUnit {
		t.Errorf("missing numerics should default to %v, got size %v bloom %v",
			neutralUnit, fv.SizeNorm, fv.BloomNorm)
	}
	if fv.LightRank != LightMedium {
		t.Errorf("missing light should default to medium, got %d", fv.LightRank)
	}
	if fv.DifficultyRank != DifficultyModerate {
		t.Errorf("missing difficulty should default to moderate, got %d", fv.DifficultyRank)
	}
	if fv.TempMinC != neutralTempMinC || fv.TempMaxC != neutralTempMaxC {
		t.Errorf("missing temperature defaults wrong: %v..%v", fv.TempMinC, fv.TempMaxC)
	}
	if fv.HumidityMin != neutralHumidity || fv.HumidityMax != neutralHumidityHi {
		t.Errorf("missing humidity defaults wrong: %v..%v", fv.HumidityMin, fv.HumidityMax)
	}
	if fv.FlowerColor != "unspecified" || fv.GrowthHabit != "unspecified" {
		t.Errorf("missing categoricals should be unspecified, got %q / %q",
			fv.FlowerColor, fv.GrowthHabit)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList("  Winter , , SPRING "); !reflect.DeepEqual(got, []string{"winter", "spring"}) {
		t.Errorf("splitList = %v", got)
	}
	if got := splitList("   "); got != nil {
		t.Errorf("blank input should return nil, got %v", got)
	}
}
