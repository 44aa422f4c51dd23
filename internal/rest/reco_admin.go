package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"orchidMatch/business/reco"
	"orchidMatch/domain"
	"orchidMatch/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PopularityService interface {
	SetScore(ctx context.Context, orchidID uint64, score float64) error
}

// RecoAdminHandler exposes the scoring knobs: per-slot weight configs and
// manual popularity overrides. All routes sit behind the admin middleware.
type RecoAdminHandler struct {
	configRepo        reco.ConfigRepository
	popularityService PopularityService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewRecoAdminHandler(configRepo reco.ConfigRepository, popularityService PopularityService) *RecoAdminHandler {
	return &RecoAdminHandler{
		configRepo:        configRepo,
		popularityService: popularityService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type RecoConfigRequest struct {
	WEnvironmental    float64            `json:"w_environmental" validate:"gte=0"`
	WAesthetic        float64            `json:"w_aesthetic" validate:"gte=0"`
	WCare             float64            `json:"w_care" validate:"gte=0"`
	WPopularity       float64            `json:"w_popularity" validate:"gte=0"`
	WDiversity        float64            `json:"w_diversity" validate:"gte=0"`
	HistoryWindow     int                `json:"history_window" validate:"gte=0"`
	SimilarityWeights map[string]float64 `json:"similarity_weights"`
}

type PopularityScoreRequest struct {
	Score float64 `json:"score" validate:"gte=0,lte=1"`
}

// GET /api/v1/admin/reco/config/:slot
func (h *RecoAdminHandler) GetConfig(c echo.Context) error {
	slot := c.Param("slot")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cfg, found, err := h.configRepo.GetConfig(ctx, slot)
	if err != nil {
		logger.Error("failed to load scoring config", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	if !found {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "no stored config for slot, defaults apply"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg))
}

// PUT /api/v1/admin/reco/config/:slot
//
// The request is validated through the scoring core before it is stored so a
// config that would fail at serve time is rejected here instead.
func (h *RecoAdminHandler) UpsertConfig(c echo.Context) error {
	slot := c.Param("slot")
	if slot == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "slot is required"})
	}

	var req RecoConfigRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate config request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	similarity := reco.DefaultWeights()
	if len(req.SimilarityWeights) > 0 {
		similarity = reco.Weights(req.SimilarityWeights)
	}

	cfg := reco.Config{
		WEnvironmental: req.WEnvironmental,
		WAesthetic:     req.WAesthetic,
		WCare:          req.WCare,
		WPopularity:    req.WPopularity,
		WDiversity:     req.WDiversity,
		HistoryWindow:  req.HistoryWindow,
		Similarity:     similarity,
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, reco.ErrInvalidWeights) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stored := domain.RecoConfig{
		Slot:              slot,
		WEnvironmental:    req.WEnvironmental,
		WAesthetic:        req.WAesthetic,
		WCare:             req.WCare,
		WPopularity:       req.WPopularity,
		WDiversity:        req.WDiversity,
		HistoryWindow:     req.HistoryWindow,
		SimilarityWeights: map[string]float64(similarity),
	}
	if err := h.configRepo.UpsertConfig(ctx, stored); err != nil {
		logger.Error("failed to store scoring config", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stored))
}

// PUT /api/v1/admin/popularity/:id
func (h *RecoAdminHandler) SetPopularityScore(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid orchid id"})
	}

	var req PopularityScoreRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate popularity request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.popularityService.SetScore(ctx, id, req.Score); err != nil {
		logger.Error("failed to store popularity score", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"orchid_id": id,
		"score":     req.Score,
	}))
}
