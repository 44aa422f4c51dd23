//go:build !integration

package reco

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"orchidMatch/domain"
)

func candidateFrom(o domain.Orchid, pop float64) Candidate {
	return Candidate{
		Vector:         Normalize(o),
		ScientificName: o.ScientificName,
		Popularity:     pop,
	}
}

func TestRank_DiversityBonusIsTenPoints(t *testing.T) {
	phal := fullOrchid() // genus Phalaenopsis
	catt := fullOrchid()
	catt.ID = 8
	catt.Genus = "Cattleya"

	candidates := []Candidate{
		candidateFrom(phal, 0.5),
		candidateFrom(catt, 0.5),
	}

	// Phalaenopsis was recently served, Cattleya was not.
	result := Rank(fullProfile(), candidates, []string{"phalaenopsis"}, DefaultConfig(), 10)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Genus != "cattleya" {
		t.Fatalf("unseen genus should rank first, got %q", result.Items[0].Genus)
	}

	gap := result.Items[0].Breakdown.Total - result.Items[1].Breakdown.Total
	if math.Abs(gap-10.0) > 1e-9 {
		t.Errorf("diversity bonus should be worth exactly 10 points, gap was %v", gap)
	}
	if result.Items[0].Breakdown.Diversity != 10.0 {
		t.Errorf("unseen genus diversity component = %v, want 10", result.Items[0].Breakdown.Diversity)
	}
	if result.Items[1].Breakdown.Diversity != 0.0 {
		t.Errorf("seen genus diversity component = %v, want 0", result.Items[1].Breakdown.Diversity)
	}
}

func TestRank_SkillCeilingExcludesBeforeScoring(t *testing.T) {
	p := fullProfile()
	p.SkillCeiling = "Easy"

	hard := fullOrchid()
	hard.ID = 2
	hard.Difficulty = "Difficult"

	candidates := []Candidate{
		candidateFrom(fullOrchid(), 0.9), // Easy
		candidateFrom(hard, 0.9),
	}

	result := Rank(p, candidates, nil, DefaultConfig(), 10)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(result.Items))
	}
	if result.Items[0].OrchidID != 7 {
		t.Errorf("survivor should be the easy orchid, got id %d", result.Items[0].OrchidID)
	}
}

func TestRank_TopKTruncatesNeverPads(t *testing.T) {
	candidates := make([]Candidate, 0, 3)
	for i := uint64(1); i <= 3; i++ {
		o := fullOrchid()
		o.ID = i
		candidates = append(candidates, candidateFrom(o, 0.5))
	}

	if got := Rank(fullProfile(), candidates, nil, DefaultConfig(), 10); len(got.Items) != 3 {
		t.Errorf("asking for 10 of 3 should return 3, got %d", len(got.Items))
	}
	if got := Rank(fullProfile(), candidates, nil, DefaultConfig(), 2); len(got.Items) != 2 {
		t.Errorf("asking for 2 of 3 should return 2, got %d", len(got.Items))
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	result := Rank(fullProfile(), nil, nil, DefaultConfig(), 10)
	if len(result.Items) != 0 {
		t.Errorf("empty catalog should produce an empty result, got %d items", len(result.Items))
	}
}

func TestRank_TiesBreakByAscendingID(t *testing.T) {
	candidates := make([]Candidate, 0, 5)
	for _, id := range []uint64{42, 7, 99, 13, 1} {
		o := fullOrchid()
		o.ID = id
		candidates = append(candidates, candidateFrom(o, 0.5))
	}

	result := Rank(fullProfile(), candidates, nil, DefaultConfig(), 10)

	want := []uint64{1, 7, 13, 42, 99}
	got := make([]uint64, 0, len(result.Items))
	for _, item := range result.Items {
		got = append(got, item.OrchidID)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("identical scores should order by ascending id: got %v", got)
	}
}

func TestRank_DeterministicUnderParallelScoring(t *testing.T) {
	candidates := make([]Candidate, 0, 200)
	for i := uint64(1); i <= 200; i++ {
		o := fullOrchid()
		o.ID = i
		o.ScientificName = fmt.Sprintf("Phalaenopsis sp. %d", i)
		o.FlowerSizeCm = float64(1 + i%20)
		o.TemperatureMaxC = 26 + float64(i%8)
		if i%3 == 0 {
			o.Genus = "Dendrobium"
		}
		candidates = append(candidates, candidateFrom(o, float64(i%10)/10.0))
	}

	cfg := DefaultConfig()
	cfg.Workers = 8

	first := Rank(fullProfile(), candidates, []string{"dendrobium"}, cfg, 50)
	for run := 0; run < 10; run++ {
		again := Rank(fullProfile(), candidates, []string{"dendrobium"}, cfg, 50)
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d produced a different ordering", run)
		}
	}

	// single worker must agree with the pool
	cfg.Workers = 1
	serial := Rank(fullProfile(), candidates, []string{"dendrobium"}, cfg, 50)
	if !reflect.DeepEqual(serial, first) {
		t.Fatal("serial and parallel scoring disagree")
	}
}

func TestRank_HistoryWindowLimitsDiversityLookback(t *testing.T) {
	o := fullOrchid() // genus phalaenopsis

	cfg := DefaultConfig()
	cfg.HistoryWindow = 2

	// phalaenopsis sits outside the 2-entry window, so it still counts as
	// unseen and earns the bonus.
	history := []string{"cattleya", "dendrobium", "phalaenopsis"}
	result := Rank(fullProfile(), []Candidate{candidateFrom(o, 0.5)}, history, cfg, 10)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Breakdown.Diversity != 10.0 {
		t.Errorf("genus outside the window should earn the bonus, got %v",
			result.Items[0].Breakdown.Diversity)
	}

	cfg.HistoryWindow = 3
	result = Rank(fullProfile(), []Candidate{candidateFrom(o, 0.5)}, history, cfg, 10)
	if result.Items[0].Breakdown.Diversity != 0.0 {
		t.Errorf("genus inside the window should earn nothing, got %v",
			result.Items[0].Breakdown.Diversity)
	}
}
