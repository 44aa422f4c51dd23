package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetAllOrchids(ctx context.Context) ([]domain.Orchid, error)
	GetOrchidByID(ctx context.Context, id uint64) (*domain.Orchid, error)
	SearchOrchids(ctx context.Context, filter domain.OrchidFilter) ([]domain.Orchid, error)
	CreateOrchid(ctx context.Context, orchid *domain.Orchid) (*domain.Orchid, error)
	UpdateOrchid(ctx context.Context, orchid *domain.Orchid) (*domain.Orchid, error)
	DeleteOrchid(ctx context.Context, id uint64) error
	GetStatistics(ctx context.Context) (domain.CatalogStatistics, error)
	GetDistinctValues(ctx context.Context, column string) ([]string, error)
}

type OrchidHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewOrchidHandler(catalogService CatalogService) *OrchidHandler {
	return &OrchidHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type OrchidRequest struct {
	ScientificName     string  `json:"scientific_name" validate:"required"`
	Genus              string  `json:"genus" validate:"required"`
	GrowthHabit        string  `json:"growth_habit"`
	FlowerColor        string  `json:"flower_color"`
	FlowerSizeCm       float64 `json:"flower_size_cm" validate:"gte=0"`
	Fragrance          bool    `json:"fragrance"`
	BloomingSeasons    string  `json:"blooming_seasons"`
	BloomDurationWeeks float64 `json:"bloom_duration_weeks" validate:"gte=0"`
	LightRequirementFC float64 `json:"light_requirement_fc" validate:"gte=0"`
	TemperatureMinC    float64 `json:"temperature_min_c"`
	TemperatureMaxC    float64 `json:"temperature_max_c"`
	HumidityMinPercent float64 `json:"humidity_min_percent" validate:"gte=0,lte=100"`
	HumidityMaxPercent float64 `json:"humidity_max_percent" validate:"gte=0,lte=100"`
	Difficulty         string  `json:"difficulty" validate:"omitempty,oneof=Easy Moderate Difficult"`
	NativeRegions      string  `json:"native_regions"`
	ConservationStatus string  `json:"conservation_status"`
	Description        string  `json:"description"`
}

func (req OrchidRequest) toDomain() *domain.Orchid {
	return &domain.Orchid{
		ScientificName:     req.ScientificName,
		Genus:              req.Genus,
		GrowthHabit:        req.GrowthHabit,
		FlowerColor:        req.FlowerColor,
		FlowerSizeCm:       req.FlowerSizeCm,
		Fragrance:          req.Fragrance,
		BloomingSeasons:    req.BloomingSeasons,
		BloomDurationWeeks: req.BloomDurationWeeks,
		LightRequirementFC: req.LightRequirementFC,
		TemperatureMinC:    req.TemperatureMinC,
		TemperatureMaxC:    req.TemperatureMaxC,
		HumidityMinPercent: req.HumidityMinPercent,
		HumidityMaxPercent: req.HumidityMaxPercent,
		Difficulty:         req.Difficulty,
		NativeRegions:      req.NativeRegions,
		ConservationStatus: req.ConservationStatus,
		Description:        req.Description,
	}
}

func (h *OrchidHandler) GetAllOrchids(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orchids, err := h.catalogService.GetAllOrchids(ctx)
	if err != nil {
		logger.Error("failed to list orchids", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully listed orchids",
		"orchids": orchids,
	})
}

func (h *OrchidHandler) GetOrchidByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("invalid orchid id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orchid, err := h.catalogService.GetOrchidByID(ctx, id)
	if err != nil {
		if err.Error() == "orchid not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully found orchid by id",
		"orchid":  orchid,
	})
}

// GET /api/v1/orchids/search?genus=&color=&difficulty=&light=&temp_min=&temp_max=&fragrance=
func (h *OrchidHandler) SearchOrchids(c echo.Context) error {
	filter := domain.OrchidFilter{
		Genus:       c.QueryParam("genus"),
		FlowerColor: c.QueryParam("color"),
		Difficulty:  c.QueryParam("difficulty"),
		LightLevel:  c.QueryParam("light"),
	}

	if v := c.QueryParam("temp_min"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid temp_min"})
		}
		filter.TempMinC = &t
	}
	if v := c.QueryParam("temp_max"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid temp_max"})
		}
		filter.TempMaxC = &t
	}
	if v := c.QueryParam("fragrance"); v != "" {
		f, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid fragrance"})
		}
		filter.Fragrance = &f
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orchids, err := h.catalogService.SearchOrchids(ctx, filter)
	if err != nil {
		logger.Error("failed to search orchids", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully searched orchids",
		"orchids": orchids,
	})
}

func (h *OrchidHandler) CreateOrchid(c echo.Context) error {
	var req OrchidRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate orchid request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.catalogService.CreateOrchid(ctx, req.toDomain())
	if err != nil {
		logger.Error("failed to create orchid", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "orchid successfully created",
		"orchid":  created,
	})
}

func (h *OrchidHandler) UpdateOrchid(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("invalid orchid id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req OrchidRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("failed to validate orchid request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orchid := req.toDomain()
	orchid.ID = id

	updated, err := h.catalogService.UpdateOrchid(ctx, orchid)
	if err != nil {
		if err.Error() == "orchid not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully updated orchid",
		"orchid":  updated,
	})
}

func (h *OrchidHandler) DeleteOrchid(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("invalid orchid id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteOrchid(ctx, id); err != nil {
		if err.Error() == "orchid not found" || err.Error() == "invalid orchid id" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "orchid successfully deleted",
		"orchid_id": id,
	})
}

func (h *OrchidHandler) GetStatistics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.catalogService.GetStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully computed catalog statistics",
		"statistics": stats,
	})
}

func (h *OrchidHandler) GetDistinctValues(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	column := c.Param("column")
	values, err := h.catalogService.GetDistinctValues(ctx, column)
	if err != nil {
		if err.Error() == "unknown column" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully listed values",
		"column":  column,
		"values":  values,
	})
}
