package rest

import (
	"context"
	"net/http"
	"time"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error)
	UpsertProfile(ctx context.Context, profile *domain.GrowerProfile) (*domain.GrowerProfile, error)
}

type ProfileHandler struct {
	profileService ProfileService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProfileRequest struct {
	LightLevel         string          `json:"light_level" validate:"required,oneof=low medium high"`
	TemperatureMinC    float64         `json:"temperature_min_c"`
	TemperatureMaxC    float64         `json:"temperature_max_c"`
	HumidityMinPercent float64         `json:"humidity_min_percent" validate:"gte=0,lte=100"`
	HumidityMaxPercent float64         `json:"humidity_max_percent" validate:"gte=0,lte=100"`
	SkillCeiling       string          `json:"skill_ceiling" validate:"omitempty,oneof=Easy Moderate Difficult"`
	PreferredColors    map[string]bool `json:"preferred_colors"`
	PreferredSizeCm    float64         `json:"preferred_size_cm" validate:"gte=0"`
	FragrancePreferred *bool           `json:"fragrance_preferred"`
}

// GET /api/v1/profiles/me
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, found, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		logger.Error("failed to get grower profile", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if !found {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "grower profile not found"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

// PUT /api/v1/profiles/me
func (h *ProfileHandler) UpsertMyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing user identity"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate profile request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	colors := datatypes.JSONMap{}
	for color, on := range req.PreferredColors {
		colors[color] = on
	}

	profile := &domain.GrowerProfile{
		UserID:             userID,
		LightLevel:         req.LightLevel,
		TemperatureMinC:    req.TemperatureMinC,
		TemperatureMaxC:    req.TemperatureMaxC,
		HumidityMinPercent: req.HumidityMinPercent,
		HumidityMaxPercent: req.HumidityMaxPercent,
		SkillCeiling:       req.SkillCeiling,
		PreferredColors:    colors,
		PreferredSizeCm:    req.PreferredSizeCm,
		FragrancePreferred: req.FragrancePreferred,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.profileService.UpsertProfile(ctx, profile)
	if err != nil {
		logger.Error("failed to upsert grower profile", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(saved))
}
