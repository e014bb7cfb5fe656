package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/worklog/repository"
)

type workLogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WorkLogRepository { return &workLogRepo{db} }

func (r *workLogRepo) ListByBonsai(bonsaiID uint) ([]entities.WorkLog, error) {
	var out []entities.WorkLog
	if err := r.db.Where("bonsai_id = ?", bonsaiID).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workLogRepo) ListByUser(userID uint) ([]repository.UserWorkLogRow, error) {
	var out []repository.UserWorkLogRow
	err := r.db.
		Table("work_logs wl").
		Select("wl.*, b.name AS bonsai_name").
		Joins("JOIN bonsais b ON wl.bonsai_id = b.bonsai_id").
		Where("b.user_id = ?", userID).
		Order("wl.date DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workLogRepo) Create(l *entities.WorkLog) error { return r.db.Create(l).Error }

func (r *workLogRepo) FindByID(id uint) (*entities.WorkLog, error) {
	var l entities.WorkLog
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *workLogRepo) Delete(id uint) error {
	return r.db.Delete(&entities.WorkLog{}, id).Error
}

func (r *workLogRepo) FindBonsai(id uint) (*entities.Bonsai, error) {
	var b entities.Bonsai
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
