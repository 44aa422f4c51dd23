package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// popularityRow backs the externally maintained popularity signal, one
// normalized [0,1] score per orchid.
type popularityRow struct {
	OrchidID uint64  `gorm:"column:orchid_id;primaryKey"`
	Score    float64 `gorm:"column:score;not null"`
}

func (popularityRow) TableName() string {
	return "orchid_popularity"
}

type PopularityRepository struct {
	DB *gorm.DB
}

func NewPopularityRepository(db *gorm.DB) *PopularityRepository {
	return &PopularityRepository{DB: db}
}

func (r *PopularityRepository) GetScores(ctx context.Context, orchidIDs []uint64) (map[uint64]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(orchidIDs) == 0 {
		return map[uint64]float64{}, nil
	}

	var rows []popularityRow
	err := r.DB.WithContext(ctx).Where("orchid_id IN ?", orchidIDs).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orchid_popularity: %w", err)
	}

	scores := make(map[uint64]float64, len(rows))
	for _, row := range rows {
		scores[row.OrchidID] = row.Score
	}

	return scores, nil
}

func (r *PopularityRepository) UpsertScore(ctx context.Context, orchidID uint64, score float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := popularityRow{OrchidID: orchidID, Score: score}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "orchid_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert popularity score: %w", err)
	}

	return nil
}
