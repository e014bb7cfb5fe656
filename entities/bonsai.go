package entities

import "time"

type Bonsai struct {
	BonsaiID  uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index" json:"user_id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	SpeciesID uint   `gorm:"index" json:"species_id"`
	Notes     string `json:"notes"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type BonsaiImage struct {
	ImageID          uint   `gorm:"primaryKey" json:"id"`
	BonsaiID         uint   `gorm:"index" json:"bonsai_id"`
	UserID           uint   `json:"user_id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`

	CreatedAt time.Time `json:"created_at"`
}
