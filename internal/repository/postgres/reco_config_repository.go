package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"orchidMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecoConfigRepository struct {
	DB *gorm.DB
}

func NewRecoConfigRepository(db *gorm.DB) *RecoConfigRepository {
	return &RecoConfigRepository{DB: db}
}

func (r *RecoConfigRepository) GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecoConfig{}, false, fmt.Errorf("context error: %w", err)
	}

	var cfg domain.RecoConfig
	err := r.DB.WithContext(ctx).First(&cfg, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RecoConfig{}, false, nil
	}
	if err != nil {
		return domain.RecoConfig{}, false, fmt.Errorf("failed to query reco_configs: %w", err)
	}

	if len(cfg.SimilarityWeightsRaw) > 0 {
		if err := json.Unmarshal(cfg.SimilarityWeightsRaw, &cfg.SimilarityWeights); err != nil {
			return domain.RecoConfig{}, false, fmt.Errorf("failed to unmarshal similarity weights: %w", err)
		}
	}

	return cfg, true, nil
}

func (r *RecoConfigRepository) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(cfg.SimilarityWeights) > 0 {
		raw, err := json.Marshal(cfg.SimilarityWeights)
		if err != nil {
			return fmt.Errorf("failed to marshal similarity weights: %w", err)
		}
		cfg.SimilarityWeightsRaw = raw
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			UpdateAll: true,
		},
	).Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to upsert reco config: %w", err)
	}

	return nil
}
