package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Skill ladder used for the care sub-score and the hard skill ceiling.
const (
	SkillEasy      = "Easy"
	SkillModerate  = "Moderate"
	SkillDifficult = "Difficult"
)

// GrowerProfile holds one user's growing environment and aesthetic
// preferences. SkillCeiling is a hard constraint: orchids rated above it are
// excluded from recommendations outright. An empty SkillCeiling is allowed
// but marks the profile incomplete and downgrades result confidence.
type GrowerProfile struct {
	UserID             uint              `gorm:"column:user_id;primaryKey" json:"user_id"`
	LightLevel         string            `gorm:"column:light_level;type:text" json:"light_level"`
	TemperatureMinC    float64           `gorm:"column:temperature_min_c;type:numeric" json:"temperature_min_c"`
	TemperatureMaxC    float64           `gorm:"column:temperature_max_c;type:numeric" json:"temperature_max_c"`
	HumidityMinPercent float64           `gorm:"column:humidity_min_percent;type:numeric" json:"humidity_min_percent"`
	HumidityMaxPercent float64           `gorm:"column:humidity_max_percent;type:numeric" json:"humidity_max_percent"`
	SkillCeiling       string            `gorm:"column:skill_ceiling;type:text" json:"skill_ceiling"`
	PreferredColors    datatypes.JSONMap `gorm:"column:preferred_colors;type:jsonb" json:"preferred_colors"`
	PreferredSizeCm    float64           `gorm:"column:preferred_size_cm;type:numeric" json:"preferred_size_cm"`
	FragrancePreferred *bool             `gorm:"column:fragrance_preferred" json:"fragrance_preferred"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (GrowerProfile) TableName() string {
	return "grower_profiles"
}

// ColorPreferences flattens the JSONB color map ({"pink": true, ...}) into
// the set of preferred color names.
func (p GrowerProfile) ColorPreferences() []string {
	if len(p.PreferredColors) == 0 {
		return nil
	}
	colors := make([]string, 0, len(p.PreferredColors))
	for color, v := range p.PreferredColors {
		if on, ok := v.(bool); ok && !on {
			continue
		}
		colors = append(colors, color)
	}
	return colors
}
