package grower

import (
	"context"
	"errors"
	"fmt"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// ProfileRepository contract interface
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error)
	Upsert(ctx context.Context, profile *domain.GrowerProfile) error
}

type profileService struct {
	profileRepo ProfileRepository
	validate    *validator.Validate
}

func NewProfileService(profileRepo ProfileRepository, validate *validator.Validate) *profileService {
	return &profileService{
		profileRepo: profileRepo,
		validate:    validate,
	}
}

// GetProfile returns the grower's profile. The boolean mirrors the repo:
// false means no profile has been saved yet, which downstream scoring treats
// as an incomplete profile, not an error.
func (s *profileService) GetProfile(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.GrowerProfile{}, false, fmt.Errorf("context error: %w", err)
	}
	if userID == 0 {
		return domain.GrowerProfile{}, false, errors.New("invalid user id")
	}

	profile, found, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to load grower profile", err)
		return domain.GrowerProfile{}, false, err
	}

	return profile, found, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, profile *domain.GrowerProfile) (*domain.GrowerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if profile.UserID == 0 {
		return nil, errors.New("invalid user id")
	}

	if err := validateProfile(profile); err != nil {
		logger.Error("invalid grower profile", err)
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		logger.Error("failed to save grower profile", err)
		return nil, fmt.Errorf("failed to save grower profile: %w", err)
	}

	logger.Info("grower profile saved", "user_id", profile.UserID)

	return profile, nil
}

func validateProfile(p *domain.GrowerProfile) error {
	if p.LightLevel != "" && p.LightLevel != "low" && p.LightLevel != "medium" && p.LightLevel != "high" {
		return errors.New("light level must be low, medium, or high")
	}
	if p.SkillCeiling != "" &&
		p.SkillCeiling != domain.SkillEasy &&
		p.SkillCeiling != domain.SkillModerate &&
		p.SkillCeiling != domain.SkillDifficult {
		return errors.New("skill ceiling must be Easy, Moderate, or Difficult")
	}
	if p.TemperatureMinC > p.TemperatureMaxC {
		return errors.New("temperature range is inverted")
	}
	if p.HumidityMinPercent > p.HumidityMaxPercent {
		return errors.New("humidity range is inverted")
	}
	if p.HumidityMinPercent < 0 || p.HumidityMaxPercent > 100 {
		return errors.New("humidity must be between 0 and 100")
	}
	if p.PreferredSizeCm < 0 {
		return errors.New("preferred size cannot be negative")
	}
	return nil
}
