package reco

import (
	"context"

	"orchidMatch/pkg/logger"
)

// loadConfig resolves the scoring config for a slot. An absent row or a repo
// error falls back to defaults; a present but malformed config is a fatal
// configuration error and is surfaced, never silently replaced.
func (s *Service) loadConfig(ctx context.Context, slot string) (Config, error) {
	if s.cfgRepo == nil {
		return s.defaultCfg, nil
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, slot)
	if err != nil {
		logger.Warn("reco config lookup failed, using defaults", "slot", slot, "error", err)
		return s.defaultCfg, nil
	}
	if !ok {
		return s.defaultCfg, nil
	}

	// start from defaults so unset fields keep sane values
	cfg := s.defaultCfg

	cfg.WEnvironmental = dbCfg.WEnvironmental
	cfg.WAesthetic = dbCfg.WAesthetic
	cfg.WCare = dbCfg.WCare
	cfg.WPopularity = dbCfg.WPopularity
	cfg.WDiversity = dbCfg.WDiversity

	if dbCfg.HistoryWindow > 0 {
		cfg.HistoryWindow = dbCfg.HistoryWindow
	}

	if len(dbCfg.SimilarityWeights) > 0 {
		w := make(Weights, len(dbCfg.SimilarityWeights))
		for dim, weight := range dbCfg.SimilarityWeights {
			w[dim] = weight
		}
		cfg.Similarity = w
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
