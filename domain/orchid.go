package domain

import (
	"time"
)

// CREATE TABLE public.orchids (
//     id                    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     scientific_name       TEXT NOT NULL,
//     genus                 TEXT NOT NULL,
//     growth_habit          TEXT,
//     flower_color          TEXT,
//     flower_size_cm        NUMERIC,
//     fragrance             BOOLEAN,
//     blooming_seasons      TEXT,
//     bloom_duration_weeks  NUMERIC,
//     light_requirement_fc  NUMERIC,
//     temperature_min_c     NUMERIC,
//     temperature_max_c     NUMERIC,
//     humidity_min_percent  NUMERIC,
//     humidity_max_percent  NUMERIC,
//     difficulty            TEXT,
//     native_regions        TEXT,
//     conservation_status   TEXT,
//     description           TEXT,
//     created_at            TIMESTAMPTZ DEFAULT NOW(),
//     updated_at            TIMESTAMPTZ DEFAULT NOW()
// );

// Orchid is one catalog entry. Immutable once loaded by the scoring core;
// multi-valued fields (blooming_seasons, native_regions) are comma separated.
type Orchid struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ScientificName     string    `gorm:"column:scientific_name;type:text;not null" json:"scientific_name"`
	Genus              string    `gorm:"column:genus;type:text;not null" json:"genus"`
	GrowthHabit        string    `gorm:"column:growth_habit;type:text" json:"growth_habit"`
	FlowerColor        string    `gorm:"column:flower_color;type:text" json:"flower_color"`
	FlowerSizeCm       float64   `gorm:"column:flower_size_cm;type:numeric" json:"flower_size_cm"`
	Fragrance          bool      `gorm:"column:fragrance;default:false" json:"fragrance"`
	BloomingSeasons    string    `gorm:"column:blooming_seasons;type:text" json:"blooming_seasons"`
	BloomDurationWeeks float64   `gorm:"column:bloom_duration_weeks;type:numeric" json:"bloom_duration_weeks"`
	LightRequirementFC float64   `gorm:"column:light_requirement_fc;type:numeric" json:"light_requirement_fc"`
	TemperatureMinC    float64   `gorm:"column:temperature_min_c;type:numeric" json:"temperature_min_c"`
	TemperatureMaxC    float64   `gorm:"column:temperature_max_c;type:numeric" json:"temperature_max_c"`
	HumidityMinPercent float64   `gorm:"column:humidity_min_percent;type:numeric" json:"humidity_min_percent"`
	HumidityMaxPercent float64   `gorm:"column:humidity_max_percent;type:numeric" json:"humidity_max_percent"`
	Difficulty         string    `gorm:"column:difficulty;type:text" json:"difficulty"`
	NativeRegions      string    `gorm:"column:native_regions;type:text" json:"native_regions"`
	ConservationStatus string    `gorm:"column:conservation_status;type:text" json:"conservation_status"`
	Description        string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Orchid) TableName() string {
	return "orchids"
}

// OrchidFilter narrows catalog listings. Zero values mean "no filter".
type OrchidFilter struct {
	Genus       string
	FlowerColor string
	Difficulty  string
	LightLevel  string
	TempMinC    *float64
	TempMaxC    *float64
	Fragrance   *bool
}

// CatalogStatistics summarizes the catalog for the statistics endpoint.
type CatalogStatistics struct {
	TotalOrchids int64            `json:"total_orchids"`
	ByGenus      map[string]int64 `json:"by_genus"`
	ByDifficulty map[string]int64 `json:"by_difficulty"`
	FragrantPct  float64          `json:"fragrant_pct"`
}
