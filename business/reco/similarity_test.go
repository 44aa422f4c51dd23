//go:build !integration

package reco

import (
	"errors"
	"testing"

	"orchidMatch/domain"
)

func vecPhal() FeatureVector {
	return Normalize(fullOrchid())
}

func vecCatt() FeatureVector {
	return Normalize(domain.Orchid{
		ID:                 9,
		Genus:              "Cattleya",
		GrowthHabit:        "Epiphyte",
		FlowerColor:        "Purple",
		FlowerSizeCm:       15,
		Fragrance:          true,
		BloomingSeasons:    "Spring",
		BloomDurationWeeks: 3,
		LightRequirementFC: 3500,
		TemperatureMinC:    16,
		TemperatureMaxC:    30,
		HumidityMinPercent: 50,
		HumidityMaxPercent: 80,
		Difficulty:         "Moderate",
		NativeRegions:      "Central America, South America",
	})
}

func TestSimilarity_IdenticalVectorsScoreOne(t *testing.T) {
	a := vecPhal()
	got, err := Similarity(a, a, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 1.0-weightEpsilon || got > 1.0 {
		t.Errorf("self-similarity = %v, want 1.0", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a, b := vecPhal(), vecCatt()

	ab, err := Similarity(a, b, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Similarity(b, a, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
	if ab < 0 || ab > 1 {
		t.Errorf("similarity out of range: %v", ab)
	}
}

func TestSimilarity_Deterministic(t *testing.T) {
	a, b := vecPhal(), vecCatt()

	first, err := Similarity(a, b, DefaultWeights())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := Similarity(a, b, DefaultWeights())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced %v, first run produced %v", i, again, first)
		}
	}
}

func TestDimOrderCoversEveryDimension(t *testing.T) {
	if len(dimOrder) != len(dimFuncs) {
		t.Fatalf("dimOrder has %d entries, dimFuncs has %d", len(dimOrder), len(dimFuncs))
	}
	for _, dim := range dimOrder {
		if _, ok := dimFuncs[dim]; !ok {
			t.Errorf("dimOrder entry %q has no similarity function", dim)
		}
	}
}

func TestValidateWeights_Rejections(t *testing.T) {
	cases := map[string]Weights{
		"empty table": {},
		"bad sum":     {DimColor: 0.5, DimSize: 0.4},
		"negative":    {DimColor: 1.2, DimSize: -0.2},
		"unknown dim": {"petal_count": 1.0},
		"sum above 1": {DimColor: 0.8, DimSize: 0.3},
	}
	for name, w := range cases {
		if err := ValidateWeights(w); !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("%s: expected ErrInvalidWeights, got %v", name, err)
		}
	}

	if err := ValidateWeights(DefaultWeights()); err != nil {
		t.Errorf("default weights should validate, got %v", err)
	}
}

func TestSimilarity_InvalidWeightsSurface(t *testing.T) {
	_, err := Similarity(vecPhal(), vecCatt(), Weights{DimColor: 0.5})
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestJaccard_EmptySets(t *testing.T) {
	if got := jaccard(nil, nil); got != 1.0 {
		t.Errorf("two empty sets should compare as identical, got %v", got)
	}
	if got := jaccard([]string{"spring"}, nil); got != 0.0 {
		t.Errorf("one empty set should score 0, got %v", got)
	}
	if got := jaccard([]string{"spring", "winter"}, []string{"spring"}); got != 0.5 {
		t.Errorf("expected 0.5 overlap, got %v", got)
	}
}

func TestOrdinalTier(t *testing.T) {
	if ordinalTier(LightLow, LightLow) != 1.0 {
		t.Error("same rank should score 1.0")
	}
	if ordinalTier(LightLow, LightMedium) != 0.5 {
		t.Error("adjacent rank should score 0.5")
	}
	if ordinalTier(LightLow, LightHigh) != 0.0 {
		t.Error("two steps apart should score 0")
	}
}
