package domain

// ScoreBreakdown records the weighted contribution of every sub-score for one
// ranked orchid. Each field is already multiplied by its configured weight, so
// the bounds are: Environmental 0..35, Aesthetic 0..25, Care 0..20,
// Popularity 0..10, Diversity 0 or 10, Total 0..100 (with default weights).
// Never mutated after creation.
type ScoreBreakdown struct {
	Environmental float64 `json:"environmental"`
	Aesthetic     float64 `json:"aesthetic"`
	Care          float64 `json:"care"`
	Popularity    float64 `json:"popularity"`
	Diversity     float64 `json:"diversity"`
	Total         float64 `json:"total"`
}

// RankedOrchid is one entry of a recommendation response.
type RankedOrchid struct {
	OrchidID       uint64         `json:"orchid_id"`
	ScientificName string         `json:"scientific_name"`
	Genus          string         `json:"genus"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
}

// RankedResult is the ordered recommendation list. Ordering is deterministic:
// descending total, ties broken by ascending orchid ID. LowConfidence is set
// when the grower profile was incomplete and neutral defaults were used.
type RankedResult struct {
	Items         []RankedOrchid `json:"items"`
	LowConfidence bool           `json:"low_confidence"`
}

// SimilarOrchid is one entry of a catalog-to-catalog similarity lookup.
type SimilarOrchid struct {
	OrchidID       uint64  `json:"orchid_id"`
	ScientificName string  `json:"scientific_name"`
	Genus          string  `json:"genus"`
	Similarity     float64 `json:"similarity"`
}
