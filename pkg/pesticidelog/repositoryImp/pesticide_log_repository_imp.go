package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/pesticidelog/repository"
)

type logRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PesticideLogRepository { return &logRepo{db} }

func (r *logRepo) ListByBonsai(bonsaiID uint) ([]entities.PesticideLog, error) {
	var out []entities.PesticideLog
	if err := r.db.Where("bonsai_id = ?", bonsaiID).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *logRepo) ListByUser(userID uint) ([]repository.UserLogRow, error) {
	var out []repository.UserLogRow
	err := r.db.
		Table("pesticide_logs pl").
		Select("pl.*, b.name AS bonsai_name").
		Joins("JOIN bonsais b ON pl.bonsai_id = b.bonsai_id").
		Where("b.user_id = ?", userID).
		Order("pl.date DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *logRepo) Create(l *entities.PesticideLog) error { return r.db.Create(l).Error }

func (r *logRepo) FindByID(id uint) (*entities.PesticideLog, error) {
	var l entities.PesticideLog
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *logRepo) Delete(id uint) error {
	return r.db.Delete(&entities.PesticideLog{}, id).Error
}

func (r *logRepo) FindBonsai(id uint) (*entities.Bonsai, error) {
	var b entities.Bonsai
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *logRepo) ListCatalog() ([]entities.PesticideMaster, error) {
	var out []entities.PesticideMaster
	if err := r.db.Order("type, interval_days ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
