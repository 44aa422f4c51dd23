package postgres

import (
	"context"
	"errors"
	"fmt"

	"orchidMatch/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GrowerProfileRepository struct {
	DB *gorm.DB
}

func NewGrowerProfileRepository(db *gorm.DB) *GrowerProfileRepository {
	return &GrowerProfileRepository{DB: db}
}

func (r *GrowerProfileRepository) GetByUserID(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.GrowerProfile{}, false, fmt.Errorf("context error: %w", err)
	}

	var profile domain.GrowerProfile
	err := r.DB.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.GrowerProfile{}, false, nil
	}
	if err != nil {
		return domain.GrowerProfile{}, false, fmt.Errorf("failed to query grower_profiles: %w", err)
	}

	return profile, true, nil
}

func (r *GrowerProfileRepository) Upsert(ctx context.Context, profile *domain.GrowerProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		},
	).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to upsert grower profile: %w", err)
	}

	return nil
}
