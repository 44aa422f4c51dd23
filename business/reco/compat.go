package reco

import (
	"strings"

	"orchidMatch/domain"
)

// Per-unit penalties for the environmental fit score. A grower whose declared
// range fully contains an orchid's tolerance range scores 100; every degree,
// humidity point, or light step outside subtracts linearly, floored at 0.
const (
	tempPenaltyPerC       = 5.0
	humidityPenaltyPerPct = 1.0
	lightPenaltyPerStep   = 25.0
)

// Aesthetic sub-weights over the grower's stated preferences.
const (
	aestheticColorShare     = 0.5
	aestheticSizeShare      = 0.3
	aestheticFragranceShare = 0.2
)

const neutralScore = 50.0

// profileNeeds is the grower profile resolved into scoring terms. Missing
// fields fall back to documented neutral defaults and set lowConfidence
// instead of failing the request.
type profileNeeds struct {
	lightRank   int
	tempMin     float64
	tempMax     float64
	humidityMin float64
	humidityMax float64

	ceilingRank int
	hasCeiling  bool

	colors       map[string]struct{}
	sizeNorm     float64
	hasSizePref  bool
	fragrancePrf *bool

	lowConfidence bool
}

func buildProfileNeeds(p domain.GrowerProfile) profileNeeds {
	needs := profileNeeds{}

	if rank, ok := LightRank(p.LightLevel); ok {
		needs.lightRank = rank
	} else {
		needs.lightRank = LightMedium
		needs.lowConfidence = true
	}

	needs.tempMin = p.TemperatureMinC
	needs.tempMax = p.TemperatureMaxC
	if needs.tempMin == 0 && needs.tempMax == 0 {
		needs.tempMin = neutralTempMinC
		needs.tempMax = neutralTempMaxC
		needs.lowConfidence = true
	}

	needs.humidityMin = p.HumidityMinPercent
	needs.humidityMax = p.HumidityMaxPercent
	if needs.humidityMin == 0 && needs.humidityMax == 0 {
		needs.humidityMin = neutralHumidity
		needs.humidityMax = neutralHumidityHi
		needs.lowConfidence = true
	}

	if rank, ok := DifficultyRank(p.SkillCeiling); ok && strings.TrimSpace(p.SkillCeiling) != "" {
		needs.ceilingRank = rank
		needs.hasCeiling = true
	} else {
		// no hard constraint; score against a moderate skill level
		needs.ceilingRank = DifficultyModerate
		needs.lowConfidence = true
	}

	if colors := p.ColorPreferences(); len(colors) > 0 {
		needs.colors = make(map[string]struct{}, len(colors))
		for _, c := range colors {
			needs.colors[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
		}
	}

	if p.PreferredSizeCm > 0 {
		needs.sizeNorm = scaleToUnit(p.PreferredSizeCm, 0, flowerSizeMaxCm)
		needs.hasSizePref = true
	}

	needs.fragrancePrf = p.FragrancePreferred

	return needs
}

// environmentalScore measures how well the orchid's tolerance ranges fit
// inside the grower's declared environment, in [0,100].
func environmentalScore(needs profileNeeds, fv FeatureVector) float64 {
	penalty := 0.0

	penalty += tempPenaltyPerC * rangeOverflow(fv.TempMinC, fv.TempMaxC, needs.tempMin, needs.tempMax)
	penalty += humidityPenaltyPerPct * rangeOverflow(fv.HumidityMin, fv.HumidityMax, needs.humidityMin, needs.humidityMax)
	penalty += lightPenaltyPerStep * float64(absInt(fv.LightRank-needs.lightRank))

	score := 100.0 - penalty
	if score < 0 {
		score = 0
	}
	return score
}

// rangeOverflow is how many units of [lo,hi] stick out of [boundLo,boundHi].
func rangeOverflow(lo, hi, boundLo, boundHi float64) float64 {
	over := 0.0
	if lo < boundLo {
		over += boundLo - lo
	}
	if hi > boundHi {
		over += hi - boundHi
	}
	return over
}

// aestheticScore weighs color, size, and fragrance against stated
// preferences, in [0,100]. Unstated preferences score neutral rather than
// punishing the item.
func aestheticScore(needs profileNeeds, fv FeatureVector) float64 {
	color := neutralScore
	if len(needs.colors) > 0 {
		if _, ok := needs.colors[fv.FlowerColor]; ok {
			color = 100
		} else {
			color = 0
		}
	}

	size := neutralScore
	if needs.hasSizePref {
		size = unitCloseness(needs.sizeNorm, fv.SizeNorm) * 100
	}

	fragrance := neutralScore
	if needs.fragrancePrf != nil {
		if *needs.fragrancePrf == fv.Fragrant {
			fragrance = 100
		} else {
			fragrance = 0
		}
	}

	return aestheticColorShare*color + aestheticSizeShare*size + aestheticFragranceShare*fragrance
}

// careScore rates the difficulty match in [0,100]. When the grower declared a
// skill ceiling it acts as a hard filter: orchids above it are excluded
// entirely, signalled by ok=false, never merely penalized.
func careScore(needs profileNeeds, fv FeatureVector) (score float64, ok bool) {
	if needs.hasCeiling && fv.DifficultyRank > needs.ceilingRank {
		return 0, false
	}
	return ordinalTier(fv.DifficultyRank, needs.ceilingRank) * 100, true
}

// popularityScore passes the external [0,1] signal through on the 0..100
// scale. This component never computes popularity itself.
func popularityScore(pop float64) float64 {
	if pop < 0 {
		pop = 0
	}
	if pop > 1 {
		pop = 1
	}
	return pop * 100
}
