package repository

import "bonsai/entities"

// UserLogRow is a log joined with the owning tree's name for the
// all-trees view.
type UserLogRow struct {
	entities.PesticideLog
	BonsaiName string `json:"bonsai_name"`
}

type PesticideLogRepository interface {
	ListByBonsai(bonsaiID uint) ([]entities.PesticideLog, error)
	ListByUser(userID uint) ([]UserLogRow, error)
	Create(l *entities.PesticideLog) error
	FindByID(id uint) (*entities.PesticideLog, error)
	Delete(id uint) error

	FindBonsai(id uint) (*entities.Bonsai, error)
	ListCatalog() ([]entities.PesticideMaster, error)
}
