package reco

import (
	"strings"

	"orchidMatch/domain"
)

// Ordinal ranks for bucketed dimensions. Higher means more demanding.
const (
	LightLow    = 0
	LightMedium = 1
	LightHigh   = 2

	DifficultyEasy      = 0
	DifficultyModerate  = 1
	DifficultyDifficult = 2
)

// Scaling bounds and bucket boundaries for the normalizer. Values outside the
// numeric bounds are clamped, never rejected. Light buckets are half-open
// intervals; a boundary value lands in the higher bucket.
const (
	flowerSizeMaxCm   = 25.0
	bloomMaxWeeks     = 16.0
	lightMediumMinFC  = 1500.0
	lightHighMinFC    = 3000.0
	neutralUnit       = 0.5
	neutralTempMinC   = 18.0
	neutralTempMaxC   = 24.0
	neutralHumidity   = 40.0
	neutralHumidityHi = 70.0
)

// FeatureVector is the normalized, read-only projection of one orchid into
// comparable dimensions. Every dimension is always defined: missing source
// values take the neutral defaults above and set Incomplete instead of
// dropping the item.
type FeatureVector struct {
	OrchidID   uint64 `json:"orchid_id"`
	Genus      string `json:"genus"`
	Incomplete bool   `json:"incomplete"`

	FlowerColor string `json:"flower_color"`
	GrowthHabit string `json:"growth_habit"`
	Fragrant    bool   `json:"fragrant"`

	SizeNorm  float64 `json:"size_norm"`
	BloomNorm float64 `json:"bloom_norm"`

	Seasons []string `json:"seasons"`
	Regions []string `json:"regions"`

	LightRank      int `json:"light_rank"`
	DifficultyRank int `json:"difficulty_rank"`

	TempMinC    float64 `json:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c"`
	HumidityMin float64 `json:"humidity_min"`
	HumidityMax float64 `json:"humidity_max"`
}

// Normalize projects a catalog orchid into a FeatureVector.
func Normalize(o domain.Orchid) FeatureVector {
	fv := FeatureVector{
		OrchidID: o.ID,
		Genus:    strings.ToLower(strings.TrimSpace(o.Genus)),
		Fragrant: o.Fragrance,
	}

	fv.FlowerColor = strings.ToLower(strings.TrimSpace(o.FlowerColor))
	if fv.FlowerColor == "" {
		fv.FlowerColor = "unspecified"
		fv.Incomplete = true
	}

	fv.GrowthHabit = strings.ToLower(strings.TrimSpace(o.GrowthHabit))
	if fv.GrowthHabit == "" {
		fv.GrowthHabit = "unspecified"
		fv.Incomplete = true
	}

	if o.FlowerSizeCm > 0 {
		fv.SizeNorm = scaleToUnit(o.FlowerSizeCm, 0, flowerSizeMaxCm)
	} else {
		fv.SizeNorm = neutralUnit
		fv.Incomplete = true
	}

	if o.BloomDurationWeeks > 0 {
		fv.BloomNorm = scaleToUnit(o.BloomDurationWeeks, 0, bloomMaxWeeks)
	} else {
		fv.BloomNorm = neutralUnit
		fv.Incomplete = true
	}

	fv.Seasons = splitList(o.BloomingSeasons)
	if len(fv.Seasons) == 0 {
		fv.Incomplete = true
	}

	fv.Regions = splitList(o.NativeRegions)
	if len(fv.Regions) == 0 {
		fv.Incomplete = true
	}

	if o.LightRequirementFC > 0 {
		fv.LightRank = lightBucket(o.LightRequirementFC)
	} else {
		fv.LightRank = LightMedium
		fv.Incomplete = true
	}

	if rank, ok := DifficultyRank(o.Difficulty); ok {
		fv.DifficultyRank = rank
	} else {
		fv.DifficultyRank = DifficultyModerate
		fv.Incomplete = true
	}

	fv.TempMinC = o.TemperatureMinC
	fv.TempMaxC = o.TemperatureMaxC
	if fv.TempMinC == 0 && fv.TempMaxC == 0 {
		fv.TempMinC = neutralTempMinC
		fv.TempMaxC = neutralTempMaxC
		fv.Incomplete = true
	}

	fv.HumidityMin = o.HumidityMinPercent
	fv.HumidityMax = o.HumidityMaxPercent
	if fv.HumidityMin == 0 && fv.HumidityMax == 0 {
		fv.HumidityMin = neutralHumidity
		fv.HumidityMax = neutralHumidityHi
		fv.Incomplete = true
	}

	return fv
}

// scaleToUnit maps v into [0,1] over [min,max], clamping out-of-bounds values.
func scaleToUnit(v, min, max float64) float64 {
	if max <= min {
		return neutralUnit
	}
	u := (v - min) / (max - min)
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// lightBucket maps foot-candles into low/medium/high. Boundaries belong to
// the higher bucket.
func lightBucket(fc float64) int {
	switch {
	case fc >= lightHighMinFC:
		return LightHigh
	case fc >= lightMediumMinFC:
		return LightMedium
	default:
		return LightLow
	}
}

// LightRank maps the textual light levels used in grower profiles to the
// same ordinal scale as lightBucket.
func LightRank(label string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low":
		return LightLow, true
	case "medium":
		return LightMedium, true
	case "high":
		return LightHigh, true
	default:
		return LightMedium, false
	}
}

// DifficultyRank maps the horticultural difficulty ladder to ordinal ranks.
func DifficultyRank(label string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy":
		return DifficultyEasy, true
	case "moderate":
		return DifficultyModerate, true
	case "difficult":
		return DifficultyDifficult, true
	default:
		return DifficultyModerate, false
	}
}

// splitList parses a comma separated multi-value field into a lowercased,
// trimmed slice. Empty entries are dropped.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
