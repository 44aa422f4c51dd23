package reco

import "context"

// FeatureCache stores normalized feature vectors keyed by orchid ID and
// catalog version. A version bump makes every old entry unreachable, so no
// explicit invalidation pass is needed. Implementations must treat the cache
// as best-effort; the normalizer is always the source of truth.
type FeatureCache interface {
	Get(ctx context.Context, orchidID uint64, version string) (FeatureVector, bool, error)
	Set(ctx context.Context, orchidID uint64, version string, fv FeatureVector) error
}

// NoopFeatureCache always misses. Used when Redis is not wired in.
type NoopFeatureCache struct{}

func (NoopFeatureCache) Get(ctx context.Context, orchidID uint64, version string) (FeatureVector, bool, error) {
	return FeatureVector{}, false, nil
}

func (NoopFeatureCache) Set(ctx context.Context, orchidID uint64, version string, fv FeatureVector) error {
	return nil
}
