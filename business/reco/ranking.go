package reco

import (
	"runtime"
	"sort"
	"sync"

	"orchidMatch/domain"
)

// Candidate is one catalog item ready for scoring: its feature vector plus
// the external popularity signal in [0,1].
type Candidate struct {
	Vector         FeatureVector
	ScientificName string
	Popularity     float64
}

// scored pairs a candidate index with its breakdown; excluded candidates
// never produce one.
type scored struct {
	item domain.RankedOrchid
	keep bool
}

// Rank scores every candidate against the profile and produces the ordered
// recommendation list. Hard-constraint failures are excluded before scoring.
// Scoring is fanned out over a bounded worker pool; each item is independent
// and side-effect-free, so results land in a fixed slot per candidate and the
// final ordering is deterministic: descending total, ties by ascending ID.
// Fewer than topK survivors returns all survivors; zero survivors returns an
// empty result, which is a valid outcome rather than an error.
func Rank(profile domain.GrowerProfile, candidates []Candidate, history []string, cfg Config, topK int) domain.RankedResult {
	if topK <= 0 {
		topK = cfg.DefaultTopK
	}

	needs := buildProfileNeeds(profile)

	histSet := make(map[string]struct{}, len(history))
	window := cfg.HistoryWindow
	if window > len(history) {
		window = len(history)
	}
	for _, genus := range history[:window] {
		histSet[genus] = struct{}{}
	}

	results := make([]scored, len(candidates))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	if workers > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = scoreOne(needs, candidates[i], histSet, cfg)
				}
			}()
		}
		for i := range candidates {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := range candidates {
			results[i] = scoreOne(needs, candidates[i], histSet, cfg)
		}
	}

	items := make([]domain.RankedOrchid, 0, len(candidates))
	for _, r := range results {
		if r.keep {
			items = append(items, r.item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Breakdown.Total != items[j].Breakdown.Total {
			return items[i].Breakdown.Total > items[j].Breakdown.Total
		}
		return items[i].OrchidID < items[j].OrchidID
	})

	if len(items) > topK {
		items = items[:topK]
	}

	return domain.RankedResult{
		Items:         items,
		LowConfidence: needs.lowConfidence,
	}
}

// scoreOne computes the full weighted breakdown for a single candidate.
func scoreOne(needs profileNeeds, cand Candidate, histSet map[string]struct{}, cfg Config) scored {
	care, ok := careScore(needs, cand.Vector)
	if !ok {
		RecoExcludedTotal.Inc()
		return scored{}
	}

	env := environmentalScore(needs, cand.Vector)
	aesthetic := aestheticScore(needs, cand.Vector)
	popularity := popularityScore(cand.Popularity)

	diversity := 0.0
	if _, seen := histSet[cand.Vector.Genus]; !seen {
		diversity = 100.0
	}

	breakdown := domain.ScoreBreakdown{
		Environmental: cfg.WEnvironmental * env,
		Aesthetic:     cfg.WAesthetic * aesthetic,
		Care:          cfg.WCare * care,
		Popularity:    cfg.WPopularity * popularity,
		Diversity:     cfg.WDiversity * diversity,
	}
	breakdown.Total = breakdown.Environmental + breakdown.Aesthetic +
		breakdown.Care + breakdown.Popularity + breakdown.Diversity

	return scored{
		item: domain.RankedOrchid{
			OrchidID:       cand.Vector.OrchidID,
			ScientificName: cand.ScientificName,
			Genus:          cand.Vector.Genus,
			Breakdown:      breakdown,
		},
		keep: true,
	}
}
