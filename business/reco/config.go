package reco

import (
	"context"
	"fmt"
	"math"

	"orchidMatch/domain"
)

// Config is the full scoring configuration: aggregate sub-score weights, the
// diversity history window, and the similarity dimension weight table.
type Config struct {
	WEnvironmental float64
	WAesthetic     float64
	WCare          float64
	WPopularity    float64
	WDiversity     float64

	// HistoryWindow is how many recently recommended genera count for the
	// diversity bonus.
	HistoryWindow int

	// DefaultTopK is used when a caller asks for zero or negative results.
	DefaultTopK int

	// Workers bounds the per-item scoring fan-out. Zero means one worker per
	// CPU.
	Workers int

	Similarity Weights
}

const (
	defaultWEnvironmental = 0.35
	defaultWAesthetic     = 0.25
	defaultWCare          = 0.20
	defaultWPopularity    = 0.10
	defaultWDiversity     = 0.10
	defaultHistoryWindow  = 3
	defaultTopK           = 10
)

func DefaultConfig() Config {
	return Config{
		WEnvironmental: defaultWEnvironmental,
		WAesthetic:     defaultWAesthetic,
		WCare:          defaultWCare,
		WPopularity:    defaultWPopularity,
		WDiversity:     defaultWDiversity,
		HistoryWindow:  defaultHistoryWindow,
		DefaultTopK:    defaultTopK,
		Similarity:     DefaultWeights(),
	}
}

// Validate enforces both weight tables. A failure here is a fatal
// configuration error; callers must surface it, not fall back.
func (cfg Config) Validate() error {
	sum := cfg.WEnvironmental + cfg.WAesthetic + cfg.WCare + cfg.WPopularity + cfg.WDiversity
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: aggregate weights sum to %.6f", ErrInvalidWeights, sum)
	}
	for _, w := range []float64{cfg.WEnvironmental, cfg.WAesthetic, cfg.WCare, cfg.WPopularity, cfg.WDiversity} {
		if w < 0 {
			return fmt.Errorf("%w: negative aggregate weight", ErrInvalidWeights)
		}
	}
	if cfg.HistoryWindow < 0 {
		return fmt.Errorf("%w: negative history window", ErrInvalidWeights)
	}
	return ValidateWeights(cfg.Similarity)
}

// ConfigRepository reads per-slot scoring config from the database.
type ConfigRepository interface {
	GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error
}
