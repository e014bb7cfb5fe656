package repository

import "bonsai/entities"

type UserWorkLogRow struct {
	entities.WorkLog
	BonsaiName string `json:"bonsai_name"`
}

type WorkLogRepository interface {
	ListByBonsai(bonsaiID uint) ([]entities.WorkLog, error)
	ListByUser(userID uint) ([]UserWorkLogRow, error)
	Create(l *entities.WorkLog) error
	FindByID(id uint) (*entities.WorkLog, error)
	Delete(id uint) error

	FindBonsai(id uint) (*entities.Bonsai, error)
}
