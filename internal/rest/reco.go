package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"orchidMatch/business/reco"
	"orchidMatch/domain"
	"orchidMatch/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecoHandler struct {
		validate    *validator.Validate
		recoService RecoService
	}

	RecoService interface {
		Recommend(ctx context.Context, userID uint, slot string, topK int) (domain.RankedResult, error)
		SimilarTo(ctx context.Context, orchidID uint64, limit int) ([]domain.SimilarOrchid, error)
		ComputeSimilarity(ctx context.Context, idA, idB uint64) (float64, error)
	}

	RecommendQuery struct {
		Slot string `query:"slot"`
		N    int    `query:"n"`
	}
)

func NewRecoHandler(svc RecoService) *RecoHandler {
	return &RecoHandler{
		validate:    validator.New(),
		recoService: svc,
	}
}

// GET /api/v1/recommendations?slot=home&n=10
func (h *RecoHandler) Recommend(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = 10
	}

	result, err := h.recoService.Recommend(c.Request().Context(), userID, q.Slot, q.N)
	if err != nil {
		if errors.Is(err, reco.ErrInvalidWeights) {
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: "scoring configuration is invalid"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/orchids/:id/similar?n=10
func (h *RecoHandler) SimilarOrchids(c echo.Context) error {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid orchid id"})
	}

	n, _ := strconv.Atoi(c.QueryParam("n"))
	if n <= 0 {
		n = 10
	}

	similar, err := h.recoService.SimilarTo(c.Request().Context(), id, n)
	if err != nil {
		if errors.Is(err, reco.ErrOrchidNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(similar))
}

// GET /api/v1/orchids/similarity?a=1&b=2
func (h *RecoHandler) Similarity(c echo.Context) error {
	idA, errA := strconv.ParseUint(c.QueryParam("a"), 10, 64)
	idB, errB := strconv.ParseUint(c.QueryParam("b"), 10, 64)
	if errA != nil || errB != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "query params a and b must be orchid ids"})
	}

	score, err := h.recoService.ComputeSimilarity(c.Request().Context(), idA, idB)
	if err != nil {
		if errors.Is(err, reco.ErrOrchidNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"orchid_a":   idA,
		"orchid_b":   idB,
		"similarity": score,
	}))
}
