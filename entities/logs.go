package entities

import "time"

// PesticideLog rows are append-only: created by the owner, never updated,
// deleted only one-by-one by the owner.
type PesticideLog struct {
	LogID             uint   `gorm:"primaryKey" json:"id"`
	BonsaiID          uint   `gorm:"index" json:"bonsai_id"`
	UserID            uint   `gorm:"index" json:"user_id"`
	Date              string `json:"date"` // YYYY-MM-DD
	PesticideName     string `json:"pesticide_name"`
	Dosage            string `json:"dosage"`
	Notes             string `json:"notes"`
	WaterAmount       string `json:"water_amount"`
	DilutionRatio     string `json:"dilution_ratio"`
	ActualUsageAmount string `json:"actual_usage_amount"`

	CreatedAt time.Time
}

type WorkLog struct {
	WorkLogID   uint   `gorm:"primaryKey" json:"id"`
	BonsaiID    uint   `gorm:"index" json:"bonsai_id"`
	UserID      uint   `gorm:"index" json:"user_id"`
	Date        string `json:"date"` // YYYY-MM-DD
	WorkType    string `json:"work_type"` // 剪定|植え替え|針金掛け|針金外し|水やり|肥料|植え替え準備|その他
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Duration    *int   `json:"duration"` // minutes

	CreatedAt time.Time
}
