package domain

// RecoConfig is the persisted scoring configuration for one recommendation
// slot. Similarity dimension weights are stored as JSON in the weights
// column; aggregate weights are flat columns so they can be tuned with plain
// SQL. A config that fails validation in the scoring core is never applied.
type RecoConfig struct {
	Slot string `json:"slot" gorm:"column:slot;primaryKey"`

	WEnvironmental float64 `json:"w_environmental" gorm:"column:w_environmental"`
	WAesthetic     float64 `json:"w_aesthetic" gorm:"column:w_aesthetic"`
	WCare          float64 `json:"w_care" gorm:"column:w_care"`
	WPopularity    float64 `json:"w_popularity" gorm:"column:w_popularity"`
	WDiversity     float64 `json:"w_diversity" gorm:"column:w_diversity"`

	HistoryWindow int `json:"history_window" gorm:"column:history_window"`

	SimilarityWeightsRaw []byte             `json:"-" gorm:"column:similarity_weights"`
	SimilarityWeights    map[string]float64 `json:"similarity_weights" gorm:"-"`
}

func (RecoConfig) TableName() string {
	return "reco_configs"
}
