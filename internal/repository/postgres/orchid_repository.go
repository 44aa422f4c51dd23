package postgres

import (
	"context"
	"errors"
	"fmt"

	"orchidMatch/domain"

	"gorm.io/gorm"
)

type OrchidRepository struct {
	DB *gorm.DB
}

func NewOrchidRepository(db *gorm.DB) *OrchidRepository {
	return &OrchidRepository{
		DB: db,
	}
}

func (r *OrchidRepository) Create(ctx context.Context, orchid *domain.Orchid) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(orchid).Error; err != nil {
		return fmt.Errorf("failed to create orchid: %w", err)
	}

	return nil
}

func (r *OrchidRepository) FindByID(ctx context.Context, id uint64) (domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		return domain.Orchid{}, fmt.Errorf("context error: %w", err)
	}

	var orchid domain.Orchid

	err := r.DB.WithContext(ctx).First(&orchid, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Orchid{}, errors.New("orchid not found")
		}
		return domain.Orchid{}, fmt.Errorf("failed to find orchid: %w", err)
	}

	return orchid, nil
}

func (r *OrchidRepository) FindAll(ctx context.Context) ([]domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orchids []domain.Orchid
	if err := r.DB.WithContext(ctx).Order("id asc").Find(&orchids).Error; err != nil {
		return nil, fmt.Errorf("failed to find orchids: %w", err)
	}

	return orchids, nil
}

func (r *OrchidRepository) Search(ctx context.Context, filter domain.OrchidFilter) ([]domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Model(&domain.Orchid{})

	if filter.Genus != "" {
		q = q.Where("genus ILIKE ?", filter.Genus)
	}
	if filter.FlowerColor != "" {
		q = q.Where("flower_color ILIKE ?", "%"+filter.FlowerColor+"%")
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.TempMinC != nil {
		q = q.Where("temperature_min_c >= ?", *filter.TempMinC)
	}
	if filter.TempMaxC != nil {
		q = q.Where("temperature_max_c <= ?", *filter.TempMaxC)
	}
	if filter.Fragrance != nil {
		q = q.Where("fragrance = ?", *filter.Fragrance)
	}
	switch filter.LightLevel {
	case "low":
		q = q.Where("light_requirement_fc < ?", 1500)
	case "medium":
		q = q.Where("light_requirement_fc >= ? AND light_requirement_fc < ?", 1500, 3000)
	case "high":
		q = q.Where("light_requirement_fc >= ?", 3000)
	}

	var orchids []domain.Orchid
	if err := q.Order("id asc").Find(&orchids).Error; err != nil {
		return nil, fmt.Errorf("failed to search orchids: %w", err)
	}

	return orchids, nil
}

func (r *OrchidRepository) Update(ctx context.Context, orchid *domain.Orchid) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"scientific_name":      orchid.ScientificName,
		"genus":                orchid.Genus,
		"growth_habit":         orchid.GrowthHabit,
		"flower_color":         orchid.FlowerColor,
		"flower_size_cm":       orchid.FlowerSizeCm,
		"fragrance":            orchid.Fragrance,
		"blooming_seasons":     orchid.BloomingSeasons,
		"bloom_duration_weeks": orchid.BloomDurationWeeks,
		"light_requirement_fc": orchid.LightRequirementFC,
		"temperature_min_c":    orchid.TemperatureMinC,
		"temperature_max_c":    orchid.TemperatureMaxC,
		"humidity_min_percent": orchid.HumidityMinPercent,
		"humidity_max_percent": orchid.HumidityMaxPercent,
		"difficulty":           orchid.Difficulty,
		"native_regions":       orchid.NativeRegions,
		"conservation_status":  orchid.ConservationStatus,
		"description":          orchid.Description,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Orchid{}).Where("id = ?", orchid.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update orchid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("orchid not found or already deleted")
	}

	return nil
}

func (r *OrchidRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Orchid{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete orchid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("orchid not found or already deleted")
	}

	return nil
}

// Version derives the catalog version from the row count and the newest
// updated_at. Any create, update, or delete changes it, which is what keys
// the feature-vector cache.
func (r *OrchidRepository) Version(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	type versionRow struct {
		Count  int64
		Latest int64
	}

	var row versionRow
	err := r.DB.WithContext(ctx).
		Model(&domain.Orchid{}).
		Select("COUNT(*) AS count, COALESCE(EXTRACT(EPOCH FROM MAX(updated_at)), 0)::bigint AS latest").
		Scan(&row).Error
	if err != nil {
		return "", fmt.Errorf("failed to derive catalog version: %w", err)
	}

	return fmt.Sprintf("%d-%d", row.Count, row.Latest), nil
}

func (r *OrchidRepository) Statistics(ctx context.Context) (domain.CatalogStatistics, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("context error: %w", err)
	}

	stats := domain.CatalogStatistics{
		ByGenus:      map[string]int64{},
		ByDifficulty: map[string]int64{},
	}

	if err := r.DB.WithContext(ctx).Model(&domain.Orchid{}).Count(&stats.TotalOrchids).Error; err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("failed to count orchids: %w", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byGenus []bucket
	err := r.DB.WithContext(ctx).
		Model(&domain.Orchid{}).
		Select("genus AS key, COUNT(*) AS count").
		Group("genus").
		Scan(&byGenus).Error
	if err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("failed to group by genus: %w", err)
	}
	for _, b := range byGenus {
		stats.ByGenus[b.Key] = b.Count
	}

	var byDifficulty []bucket
	err = r.DB.WithContext(ctx).
		Model(&domain.Orchid{}).
		Select("difficulty AS key, COUNT(*) AS count").
		Where("difficulty <> ''").
		Group("difficulty").
		Scan(&byDifficulty).Error
	if err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("failed to group by difficulty: %w", err)
	}
	for _, b := range byDifficulty {
		stats.ByDifficulty[b.Key] = b.Count
	}

	var fragrant int64
	if err := r.DB.WithContext(ctx).Model(&domain.Orchid{}).Where("fragrance = true").Count(&fragrant).Error; err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("failed to count fragrant orchids: %w", err)
	}
	if stats.TotalOrchids > 0 {
		stats.FragrantPct = float64(fragrant) / float64(stats.TotalOrchids) * 100
	}

	return stats, nil
}

func (r *OrchidRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var values []string
	err := r.DB.WithContext(ctx).
		Model(&domain.Orchid{}).
		Distinct(column).
		Where(column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", column, err)
	}

	return values, nil
}
