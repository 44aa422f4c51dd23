package popularity

import (
	"context"
	"fmt"
)

// SignalRepository reads the externally maintained popularity signal.
type SignalRepository interface {
	GetScores(ctx context.Context, orchidIDs []uint64) (map[uint64]float64, error)
	UpsertScore(ctx context.Context, orchidID uint64, score float64) error
}

type Service struct {
	repo SignalRepository
}

func NewService(repo SignalRepository) *Service {
	return &Service{repo: repo}
}

// GetScores returns normalized [0,1] popularity per orchid. IDs without a
// signal are simply absent; the scoring core treats them as 0.
func (s *Service) GetScores(ctx context.Context, orchidIDs []uint64) (map[uint64]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(orchidIDs) == 0 {
		return map[uint64]float64{}, nil
	}

	scores, err := s.repo.GetScores(ctx, orchidIDs)
	if err != nil {
		return nil, err
	}

	// a stored row outside [0,1] is clamped, not rejected
	for id, v := range scores {
		if v < 0 {
			scores[id] = 0
		} else if v > 1 {
			scores[id] = 1
		}
	}

	return scores, nil
}

// SetScore lets operators push an externally computed signal.
func (s *Service) SetScore(ctx context.Context, orchidID uint64, score float64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if orchidID == 0 {
		return fmt.Errorf("invalid orchid id")
	}
	if score < 0 || score > 1 {
		return fmt.Errorf("popularity score must be in [0,1]")
	}

	return s.repo.UpsertScore(ctx, orchidID, score)
}
