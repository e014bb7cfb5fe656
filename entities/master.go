package entities

import "time"

// Master tables are reference data: seeded at bootstrap, edited only through
// the admin endpoints, read-only from the recommendation engine's side.

type SpeciesMaster struct {
	SpeciesID      uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"uniqueIndex" json:"name"`
	ScientificName string `json:"scientific_name"`
	Category       string `json:"category"` // 針葉樹|広葉樹|花木|果樹|その他
	Description    string `json:"description"`
	CareNotes      string `json:"care_notes"`

	CreatedAt time.Time
}

type PesticideMaster struct {
	PesticideID      uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"uniqueIndex" json:"name"`
	Type             string `json:"type"` // insecticide|fungicide
	IntervalDays     int    `json:"interval_days"`
	ActiveIngredient string `json:"active_ingredient"`
	Description      string `json:"description"`

	CreatedAt time.Time
}

// PestDiseaseMaster carries both the month range and the legacy season label.
// The label survives only as a fallback for rows that predate month ranges.
type PestDiseaseMaster struct {
	PestDiseaseID uint   `gorm:"primaryKey" json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"` // pest|disease
	Description   string `json:"description"`
	Season        string `json:"season"` // 春|夏|秋|冬|通年|梅雨
	StartMonth    *int   `json:"start_month"`
	EndMonth      *int   `json:"end_month"`

	CreatedAt time.Time
}

type PesticideEffectiveness struct {
	EffectivenessID    uint   `gorm:"primaryKey" json:"id"`
	PesticideID        uint   `gorm:"index" json:"pesticide_id"`
	PestDiseaseID      uint   `gorm:"index" json:"pest_disease_id"`
	EffectivenessLevel int    `json:"effectiveness_level"` // 1-5
	Notes              string `json:"notes"`
}

type SpeciesPestDisease struct {
	SpeciesRiskID         uint   `gorm:"primaryKey" json:"id"`
	SpeciesID             uint   `gorm:"index" json:"species_id"`
	PestDiseaseID         uint   `gorm:"index" json:"pest_disease_id"`
	OccurrenceProbability int    `json:"occurrence_probability"` // 1-5
	Season                string `json:"season"`
	StartMonth            *int   `json:"start_month"` // overrides the master range when both set
	EndMonth              *int   `json:"end_month"`
	Notes                 string `json:"notes"`
}

type SpeciesProhibitedPesticide struct {
	ProhibitedID uint   `gorm:"primaryKey" json:"id"`
	SpeciesID    uint   `gorm:"index" json:"species_id"`
	PesticideID  uint   `gorm:"index" json:"pesticide_id"`
	Severity     string `json:"severity"` // warning|prohibited
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
}
