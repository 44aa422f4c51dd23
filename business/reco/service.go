package reco

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Orchid, error)
	FindByID(ctx context.Context, id uint64) (domain.Orchid, error)
	// Version changes whenever the catalog changes; it keys the feature cache.
	Version(ctx context.Context) (string, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error)
}

type PopularityRepository interface {
	GetScores(ctx context.Context, orchidIDs []uint64) (map[uint64]float64, error)
}

// HistoryRepository tracks the recently recommended genera per user, newest
// first, trimmed to the diversity window.
type HistoryRepository interface {
	RecentGenera(ctx context.Context, userID uint, window int) ([]string, error)
	PushGenus(ctx context.Context, userID uint, genus string, window int) error
}

// ---- Usecase / Service ----

type Service struct {
	catalogRepo CatalogRepository
	profileRepo ProfileRepository
	popRepo     PopularityRepository
	historyRepo HistoryRepository
	cache       FeatureCache
	cfgRepo     ConfigRepository
	defaultCfg  Config
}

func NewService(
	catalogRepo CatalogRepository,
	profileRepo ProfileRepository,
	popRepo PopularityRepository,
	historyRepo HistoryRepository,
	cache FeatureCache,
	cfgRepo ConfigRepository,
	defaultCfg Config,
) (*Service, error) {
	if err := defaultCfg.Validate(); err != nil {
		return nil, fmt.Errorf("default reco config: %w", err)
	}
	if cache == nil {
		cache = NoopFeatureCache{}
	}
	return &Service{
		catalogRepo: catalogRepo,
		profileRepo: profileRepo,
		popRepo:     popRepo,
		historyRepo: historyRepo,
		cache:       cache,
		cfgRepo:     cfgRepo,
		defaultCfg:  defaultCfg,
	}, nil
}

// Recommend produces the ranked recommendation list for a user. A missing or
// incomplete profile is recoverable: scoring proceeds on neutral defaults and
// the result is flagged low-confidence. An empty catalog, or a catalog fully
// removed by the hard constraint, yields an empty result, not an error.
func (s *Service) Recommend(ctx context.Context, userID uint, slot string, topK int) (domain.RankedResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RankedResult{}, fmt.Errorf("context error: %w", err)
	}
	if slot == "" {
		slot = "home"
	}

	cfg, err := s.loadConfig(ctx, slot)
	if err != nil {
		return domain.RankedResult{}, err
	}
	if topK <= 0 {
		topK = cfg.DefaultTopK
	}

	profile, found, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.RankedResult{}, fmt.Errorf("load grower profile: %w", err)
	}

	orchids, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return domain.RankedResult{}, fmt.Errorf("load catalog: %w", err)
	}
	if len(orchids) == 0 {
		return domain.RankedResult{LowConfidence: !found}, nil
	}

	vectors, err := s.featureVectors(ctx, orchids)
	if err != nil {
		return domain.RankedResult{}, err
	}

	ids := make([]uint64, 0, len(orchids))
	for _, o := range orchids {
		ids = append(ids, o.ID)
	}
	popScores := map[uint64]float64{}
	if s.popRepo != nil {
		popScores, err = s.popRepo.GetScores(ctx, ids)
		if err != nil {
			logger.Warn("popularity lookup failed, scoring without it", "error", err)
			popScores = map[uint64]float64{}
		}
	}

	var history []string
	if s.historyRepo != nil {
		history, err = s.historyRepo.RecentGenera(ctx, userID, cfg.HistoryWindow)
		if err != nil {
			logger.Warn("history lookup failed, skipping diversity window", "error", err)
			history = nil
		}
	}

	candidates := make([]Candidate, len(orchids))
	for i, o := range orchids {
		candidates[i] = Candidate{
			Vector:         vectors[i],
			ScientificName: o.ScientificName,
			Popularity:     popScores[o.ID],
		}
	}

	result := Rank(profile, candidates, history, cfg, topK)
	if !found {
		result.LowConfidence = true
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("reco_recommend",
		"trace_id", tid,
		"user_id", userID,
		"slot", slot,
		"catalog_size", len(orchids),
		"served", len(result.Items),
		"low_confidence", result.LowConfidence,
	)

	if s.historyRepo != nil && len(result.Items) > 0 {
		if err := s.historyRepo.PushGenus(ctx, userID, result.Items[0].Genus, cfg.HistoryWindow); err != nil {
			logger.Warn("failed to record recommendation history", "error", err)
		}
	}

	RecoServedTotal.WithLabelValues(slot, strconv.FormatBool(result.LowConfidence)).Inc()

	return result, nil
}

// SimilarTo ranks the rest of the catalog by weighted similarity to one
// orchid. Ties break by ascending ID so the ordering is reproducible.
func (s *Service) SimilarTo(ctx context.Context, orchidID uint64, limit int) ([]domain.SimilarOrchid, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = s.defaultCfg.DefaultTopK
	}

	target, err := s.catalogRepo.FindByID(ctx, orchidID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrOrchidNotFound, orchidID)
	}

	orchids, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	vectors, err := s.featureVectors(ctx, orchids)
	if err != nil {
		return nil, err
	}
	targetVec := Normalize(target)

	weights := s.defaultCfg.Similarity
	out := make([]domain.SimilarOrchid, 0, len(orchids))
	for i, o := range orchids {
		if o.ID == target.ID {
			continue
		}
		sim, err := Similarity(targetVec, vectors[i], weights)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SimilarOrchid{
			OrchidID:       o.ID,
			ScientificName: o.ScientificName,
			Genus:          vectors[i].Genus,
			Similarity:     sim,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].OrchidID < out[j].OrchidID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ComputeSimilarity scores two catalog orchids against each other using the
// configured dimension weights.
func (s *Service) ComputeSimilarity(ctx context.Context, idA, idB uint64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	a, err := s.catalogRepo.FindByID(ctx, idA)
	if err != nil {
		return 0, fmt.Errorf("%w: id %d", ErrOrchidNotFound, idA)
	}
	b, err := s.catalogRepo.FindByID(ctx, idB)
	if err != nil {
		return 0, fmt.Errorf("%w: id %d", ErrOrchidNotFound, idB)
	}

	return Similarity(Normalize(a), Normalize(b), s.defaultCfg.Similarity)
}

// featureVectors resolves vectors for a catalog snapshot through the cache,
// normalizing and backfilling misses. Cache failures are logged and ignored.
func (s *Service) featureVectors(ctx context.Context, orchids []domain.Orchid) ([]FeatureVector, error) {
	version, err := s.catalogRepo.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}

	vectors := make([]FeatureVector, len(orchids))
	for i, o := range orchids {
		if fv, ok, err := s.cache.Get(ctx, o.ID, version); err == nil && ok {
			RecoFeatureCacheHits.WithLabelValues("hit").Inc()
			vectors[i] = fv
			continue
		} else if err != nil {
			logger.Warn("feature cache read failed", "orchid_id", o.ID, "error", err)
		}
		RecoFeatureCacheHits.WithLabelValues("miss").Inc()

		vectors[i] = Normalize(o)
		if err := s.cache.Set(ctx, o.ID, version, vectors[i]); err != nil {
			logger.Warn("feature cache write failed", "orchid_id", o.ID, "error", err)
		}
	}
	return vectors, nil
}
