package reco

import (
	"fmt"
	"math"
)

// Similarity dimension names. Each dimension has a fixed comparison function
// chosen by its type: exact match for categoricals, normalized closeness for
// numerics, Jaccard overlap for multi-value sets, tiered proximity for
// ordinals.
const (
	DimColor       = "color"
	DimGrowthHabit = "growth_habit"
	DimFragrance   = "fragrance"
	DimSize        = "size"
	DimBloom       = "bloom"
	DimSeason      = "season"
	DimRegion      = "region"
	DimLight       = "light"
	DimDifficulty  = "difficulty"
)

// dimOrder fixes the summation order. Float addition is not associative, so
// ranging over the weight map directly would make the last ULP of the score
// depend on Go's randomized map iteration.
var dimOrder = []string{
	DimColor,
	DimGrowthHabit,
	DimFragrance,
	DimSize,
	DimBloom,
	DimSeason,
	DimRegion,
	DimLight,
	DimDifficulty,
}

const weightEpsilon = 1e-6

// Weights maps similarity dimensions to their share of the final score.
// Weights must be non-negative and sum to 1.0 within weightEpsilon.
type Weights map[string]float64

func DefaultWeights() Weights {
	return Weights{
		DimColor:       0.20,
		DimGrowthHabit: 0.10,
		DimFragrance:   0.05,
		DimSize:        0.10,
		DimBloom:       0.05,
		DimSeason:      0.10,
		DimRegion:      0.10,
		DimLight:       0.15,
		DimDifficulty:  0.15,
	}
}

// dimFuncs dispatches per-dimension similarity. Every function here is
// symmetric: f(a,b) == f(b,a).
var dimFuncs = map[string]func(a, b FeatureVector) float64{
	DimColor: func(a, b FeatureVector) float64 {
		return exactMatch(a.FlowerColor, b.FlowerColor)
	},
	DimGrowthHabit: func(a, b FeatureVector) float64 {
		return exactMatch(a.GrowthHabit, b.GrowthHabit)
	},
	DimFragrance: func(a, b FeatureVector) float64 {
		if a.Fragrant == b.Fragrant {
			return 1.0
		}
		return 0.0
	},
	DimSize: func(a, b FeatureVector) float64 {
		return unitCloseness(a.SizeNorm, b.SizeNorm)
	},
	DimBloom: func(a, b FeatureVector) float64 {
		return unitCloseness(a.BloomNorm, b.BloomNorm)
	},
	DimSeason: func(a, b FeatureVector) float64 {
		return jaccard(a.Seasons, b.Seasons)
	},
	DimRegion: func(a, b FeatureVector) float64 {
		return jaccard(a.Regions, b.Regions)
	},
	DimLight: func(a, b FeatureVector) float64 {
		return ordinalTier(a.LightRank, b.LightRank)
	},
	DimDifficulty: func(a, b FeatureVector) float64 {
		return ordinalTier(a.DifficultyRank, b.DifficultyRank)
	},
}

// ValidateWeights rejects unknown dimensions, negative weights, and weight
// tables whose sum strays from 1.0 by more than weightEpsilon.
func ValidateWeights(w Weights) error {
	if len(w) == 0 {
		return fmt.Errorf("%w: empty weight table", ErrInvalidWeights)
	}
	sum := 0.0
	for dim, weight := range w {
		if _, ok := dimFuncs[dim]; !ok {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidWeights, dim)
		}
		if weight < 0 {
			return fmt.Errorf("%w: negative weight for %q", ErrInvalidWeights, dim)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: sum is %.6f", ErrInvalidWeights, sum)
	}
	return nil
}

// Similarity computes the weighted pairwise similarity of two feature
// vectors in [0,1]. Pure and symmetric: Similarity(a,b,w) == Similarity(b,a,w).
func Similarity(a, b FeatureVector, w Weights) (float64, error) {
	if err := ValidateWeights(w); err != nil {
		return 0, err
	}

	score := 0.0
	for _, dim := range dimOrder {
		weight, ok := w[dim]
		if !ok || weight == 0 {
			continue
		}
		score += weight * dimFuncs[dim](a, b)
	}

	// guard against float drift at the top end
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

func exactMatch(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

// unitCloseness is 1 − |a−b| for values already normalized to [0,1].
func unitCloseness(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 1 {
		d = 1
	}
	return 1 - d
}

// jaccard is |A∩B| / |A∪B|. Two empty sets compare as identical, so items
// both missing a multi-value field are not pushed apart by it.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}

	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// ordinalTier scores ordinal ranks by distance: same 1.0, adjacent 0.5,
// further 0. Symmetric by construction.
func ordinalTier(a, b int) float64 {
	switch d := absInt(a - b); d {
	case 0:
		return 1.0
	case 1:
		return 0.5
	default:
		return 0.0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
