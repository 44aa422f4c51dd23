//go:build !integration

package reco

import (
	"context"
	"errors"
	"testing"

	"orchidMatch/domain"
)

type fakeCatalogRepo struct {
	orchids []domain.Orchid
	version string
	failAll bool
}

func (f *fakeCatalogRepo) FindAll(ctx context.Context) ([]domain.Orchid, error) {
	if f.failAll {
		return nil, errors.New("db down")
	}
	return f.orchids, nil
}

func (f *fakeCatalogRepo) FindByID(ctx context.Context, id uint64) (domain.Orchid, error) {
	for _, o := range f.orchids {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Orchid{}, errors.New("record not found")
}

func (f *fakeCatalogRepo) Version(ctx context.Context) (string, error) {
	if f.version == "" {
		return "1-0", nil
	}
	return f.version, nil
}

type fakeProfileRepo struct {
	profile domain.GrowerProfile
	found   bool
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uint) (domain.GrowerProfile, bool, error) {
	return f.profile, f.found, nil
}

type fakeHistoryRepo struct {
	genera []string
	pushed []string
}

func (f *fakeHistoryRepo) RecentGenera(ctx context.Context, userID uint, window int) ([]string, error) {
	return f.genera, nil
}

func (f *fakeHistoryRepo) PushGenus(ctx context.Context, userID uint, genus string, window int) error {
	f.pushed = append(f.pushed, genus)
	return nil
}

type fakePopularityRepo struct {
	scores map[uint64]float64
}

func (f *fakePopularityRepo) GetScores(ctx context.Context, ids []uint64) (map[uint64]float64, error) {
	return f.scores, nil
}

type fakeConfigRepo struct {
	cfg   domain.RecoConfig
	found bool
}

func (f *fakeConfigRepo) GetConfig(ctx context.Context, slot string) (domain.RecoConfig, bool, error) {
	return f.cfg, f.found, nil
}

func (f *fakeConfigRepo) UpsertConfig(ctx context.Context, cfg domain.RecoConfig) error {
	f.cfg = cfg
	f.found = true
	return nil
}

func testCatalog() []domain.Orchid {
	phal := fullOrchid()
	catt := fullOrchid()
	catt.ID = 8
	catt.Genus = "Cattleya"
	catt.ScientificName = "Cattleya labiata"
	catt.FlowerColor = "Purple"
	return []domain.Orchid{phal, catt}
}

func newTestService(t *testing.T, catalog *fakeCatalogRepo, profiles *fakeProfileRepo, history *fakeHistoryRepo) *Service {
	t.Helper()
	svc, err := NewService(catalog, profiles, &fakePopularityRepo{}, history, nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewService_RejectsInvalidDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WEnvironmental = 0.9

	_, err := NewService(&fakeCatalogRepo{}, &fakeProfileRepo{}, nil, nil, nil, nil, cfg)
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestRecommend_MissingProfileIsLowConfidence(t *testing.T) {
	svc := newTestService(t,
		&fakeCatalogRepo{orchids: testCatalog()},
		&fakeProfileRepo{found: false},
		&fakeHistoryRepo{},
	)

	result, err := svc.Recommend(context.Background(), 1, "home", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !result.LowConfidence {
		t.Error("missing profile must flag the result low confidence")
	}
	if len(result.Items) != 2 {
		t.Errorf("neutral defaults should still score the catalog, got %d items", len(result.Items))
	}
}

func TestRecommend_EmptyCatalogIsEmptyResult(t *testing.T) {
	svc := newTestService(t,
		&fakeCatalogRepo{},
		&fakeProfileRepo{profile: fullProfile(), found: true},
		&fakeHistoryRepo{},
	)

	result, err := svc.Recommend(context.Background(), 1, "home", 10)
	if err != nil {
		t.Fatalf("empty catalog must not error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected empty result, got %d items", len(result.Items))
	}
}

func TestRecommend_RecordsServedGenus(t *testing.T) {
	history := &fakeHistoryRepo{}
	svc := newTestService(t,
		&fakeCatalogRepo{orchids: testCatalog()},
		&fakeProfileRepo{profile: fullProfile(), found: true},
		history,
	)

	result, err := svc.Recommend(context.Background(), 1, "home", 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(history.pushed) != 1 {
		t.Fatalf("expected one history push, got %d", len(history.pushed))
	}
	if history.pushed[0] != result.Items[0].Genus {
		t.Errorf("pushed genus %q, top item genus %q", history.pushed[0], result.Items[0].Genus)
	}
}

func TestRecommend_MalformedStoredConfigIsFatal(t *testing.T) {
	cfgRepo := &fakeConfigRepo{
		found: true,
		cfg: domain.RecoConfig{
			Slot:           "home",
			WEnvironmental: 0.9,
			WAesthetic:     0.9,
		},
	}
	svc, err := NewService(
		&fakeCatalogRepo{orchids: testCatalog()},
		&fakeProfileRepo{profile: fullProfile(), found: true},
		nil, nil, nil, cfgRepo, DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Recommend(context.Background(), 1, "home", 10)
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("malformed stored config must surface, got %v", err)
	}
}

func TestRecommend_AbsentStoredConfigFallsBack(t *testing.T) {
	svc, err := NewService(
		&fakeCatalogRepo{orchids: testCatalog()},
		&fakeProfileRepo{profile: fullProfile(), found: true},
		nil, nil, nil, &fakeConfigRepo{found: false}, DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Recommend(context.Background(), 1, "home", 10); err != nil {
		t.Errorf("absent config row should fall back to defaults, got %v", err)
	}
}

func TestSimilarTo_UnknownOrchid(t *testing.T) {
	svc := newTestService(t,
		&fakeCatalogRepo{orchids: testCatalog()},
		&fakeProfileRepo{},
		&fakeHistoryRepo{},
	)

	_, err := svc.SimilarTo(context.Background(), 404, 5)
	if !errors.Is(err, ErrOrchidNotFound) {
		t.Errorf("expected ErrOrchidNotFound, got %v", err)
	}
}

func TestSimilarTo_ExcludesTargetAndOrders(t *testing.T) {
	catalog := testCatalog()
	third := fullOrchid()
	third.ID = 20
	third.FlowerColor = "Purple"
	third.Genus = "Cattleya"
	catalog = append(catalog, third)

	svc := newTestService(t,
		&fakeCatalogRepo{orchids: catalog},
		&fakeProfileRepo{},
		&fakeHistoryRepo{},
	)

	similar, err := svc.SimilarTo(context.Background(), 8, 5)
	if err != nil {
		t.Fatalf("SimilarTo: %v", err)
	}
	if len(similar) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(similar))
	}
	for _, s := range similar {
		if s.OrchidID == 8 {
			t.Error("target orchid must not appear in its own neighbor list")
		}
	}
	if similar[0].Similarity < similar[1].Similarity {
		t.Error("neighbors must be ordered by descending similarity")
	}
}

func TestComputeSimilarity_MatchesDirectCall(t *testing.T) {
	catalog := testCatalog()
	svc := newTestService(t,
		&fakeCatalogRepo{orchids: catalog},
		&fakeProfileRepo{},
		&fakeHistoryRepo{},
	)

	got, err := svc.ComputeSimilarity(context.Background(), 7, 8)
	if err != nil {
		t.Fatalf("ComputeSimilarity: %v", err)
	}

	want, err := Similarity(Normalize(catalog[0]), Normalize(catalog[1]), DefaultWeights())
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if got != want {
		t.Errorf("service similarity %v, direct similarity %v", got, want)
	}
}
