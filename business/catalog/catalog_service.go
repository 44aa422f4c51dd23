package catalog

import (
	"context"
	"errors"
	"fmt"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"
)

// OrchidRepository contract interface
type OrchidRepository interface {
	Create(ctx context.Context, orchid *domain.Orchid) error
	FindByID(ctx context.Context, id uint64) (domain.Orchid, error)
	FindAll(ctx context.Context) ([]domain.Orchid, error)
	Search(ctx context.Context, filter domain.OrchidFilter) ([]domain.Orchid, error)
	Update(ctx context.Context, orchid *domain.Orchid) error
	Delete(ctx context.Context, id uint64) error
	Statistics(ctx context.Context) (domain.CatalogStatistics, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
}

type catalogService struct {
	orchidRepo OrchidRepository
}

func NewCatalogService(orchidRepo OrchidRepository) *catalogService {
	return &catalogService{
		orchidRepo: orchidRepo,
	}
}

// Columns exposed through the distinct-values endpoint. Anything else is
// rejected so the column name never reaches SQL unchecked.
var browsableColumns = map[string]bool{
	"genus":        true,
	"flower_color": true,
	"difficulty":   true,
	"growth_habit": true,
}

func (s *catalogService) GetAllOrchids(ctx context.Context) ([]domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing orchids")
		return nil, fmt.Errorf("context error: %w", err)
	}

	orchids, err := s.orchidRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list orchids", err)
		return nil, err
	}

	return orchids, nil
}

func (s *catalogService) GetOrchidByID(ctx context.Context, id uint64) (*domain.Orchid, error) {
	if id == 0 {
		logger.Error("invalid orchid id")
		return nil, errors.New("invalid orchid id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when getting orchid")
		return nil, fmt.Errorf("context error: %w", err)
	}

	orchid, err := s.orchidRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find orchid by id", err.Error())
		return nil, err
	}

	return &orchid, nil
}

func (s *catalogService) SearchOrchids(ctx context.Context, filter domain.OrchidFilter) ([]domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if filter.TempMinC != nil && filter.TempMaxC != nil && *filter.TempMinC > *filter.TempMaxC {
		return nil, errors.New("temperature range is inverted")
	}

	orchids, err := s.orchidRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("failed to search orchids", err)
		return nil, err
	}

	return orchids, nil
}

func (s *catalogService) CreateOrchid(ctx context.Context, orchid *domain.Orchid) (*domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating orchid")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateOrchid(orchid); err != nil {
		logger.Error("invalid orchid data", err)
		return nil, err
	}

	if err := s.orchidRepo.Create(ctx, orchid); err != nil {
		logger.Error("failed to create orchid", err)
		return nil, fmt.Errorf("failed to create orchid: %w", err)
	}

	logger.Info("orchid created", "id", orchid.ID, "name", orchid.ScientificName)

	return orchid, nil
}

func (s *catalogService) UpdateOrchid(ctx context.Context, orchid *domain.Orchid) (*domain.Orchid, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating orchid")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if orchid.ID == 0 {
		logger.Error("invalid orchid data: ID is required")
		return nil, errors.New("orchid ID is required")
	}

	if err := validateOrchid(orchid); err != nil {
		logger.Error("invalid orchid data", err)
		return nil, err
	}

	if _, err := s.orchidRepo.FindByID(ctx, orchid.ID); err != nil {
		logger.Error("orchid not found", err)
		return nil, errors.New("orchid not found")
	}

	if err := s.orchidRepo.Update(ctx, orchid); err != nil {
		logger.Error("failed to update orchid", err)
		return nil, fmt.Errorf("failed to update orchid: %w", err)
	}

	updated, err := s.orchidRepo.FindByID(ctx, orchid.ID)
	if err != nil {
		logger.Error("failed to fetch updated orchid", err)
		return nil, fmt.Errorf("failed to fetch updated orchid: %w", err)
	}

	logger.Info("orchid updated", "id", updated.ID)

	return &updated, nil
}

func (s *catalogService) DeleteOrchid(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("invalid orchid id when deleting orchid")
		return errors.New("invalid orchid id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting orchid")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.orchidRepo.FindByID(ctx, id); err != nil {
		logger.Error("orchid not found", err)
		return errors.New("orchid not found")
	}

	if err := s.orchidRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete orchid", err)
		return fmt.Errorf("failed to delete orchid: %w", err)
	}

	logger.Info("orchid deleted", "id", id)

	return nil
}

func (s *catalogService) GetStatistics(ctx context.Context) (domain.CatalogStatistics, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogStatistics{}, fmt.Errorf("context error: %w", err)
	}

	stats, err := s.orchidRepo.Statistics(ctx)
	if err != nil {
		logger.Error("failed to compute catalog statistics", err)
		return domain.CatalogStatistics{}, err
	}

	return stats, nil
}

func (s *catalogService) GetDistinctValues(ctx context.Context, column string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !browsableColumns[column] {
		return nil, errors.New("unknown column")
	}

	values, err := s.orchidRepo.DistinctValues(ctx, column)
	if err != nil {
		logger.Error("failed to list distinct values", err)
		return nil, err
	}

	return values, nil
}

func validateOrchid(o *domain.Orchid) error {
	if o.ScientificName == "" {
		return errors.New("scientific name is required")
	}
	if o.Genus == "" {
		return errors.New("genus is required")
	}
	if o.FlowerSizeCm < 0 {
		return errors.New("flower size cannot be negative")
	}
	if o.TemperatureMinC > o.TemperatureMaxC {
		return errors.New("temperature range is inverted")
	}
	if o.HumidityMinPercent > o.HumidityMaxPercent {
		return errors.New("humidity range is inverted")
	}
	if o.Difficulty != "" &&
		o.Difficulty != domain.SkillEasy &&
		o.Difficulty != domain.SkillModerate &&
		o.Difficulty != domain.SkillDifficult {
		return errors.New("difficulty must be Easy, Moderate, or Difficult")
	}
	return nil
}
