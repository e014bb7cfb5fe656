package entities

import "time"

type User struct {
	UserID       uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // admin|user

	CreatedAt time.Time
}
