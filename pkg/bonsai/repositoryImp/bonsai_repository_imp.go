package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/bonsai/repository"
)

type bonsaiRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BonsaiRepository { return &bonsaiRepo{db} }

func (r *bonsaiRepo) Create(b *entities.Bonsai) error { return r.db.Create(b).Error }

func (r *bonsaiRepo) FindByID(id uint) (*entities.Bonsai, error) {
	var b entities.Bonsai
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *bonsaiRepo) ListAll() ([]entities.Bonsai, error) {
	var out []entities.Bonsai
	if err := r.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bonsaiRepo) ListByUser(userID uint) ([]entities.Bonsai, error) {
	var out []entities.Bonsai
	if err := r.db.Where("user_id = ?", userID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bonsaiRepo) DeleteCascade(id uint) ([]entities.BonsaiImage, error) {
	var images []entities.BonsaiImage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bonsai_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		if err := tx.Where("bonsai_id = ?", id).Delete(&entities.BonsaiImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bonsai_id = ?", id).Delete(&entities.PesticideLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bonsai_id = ?", id).Delete(&entities.WorkLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Bonsai{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *bonsaiRepo) CreateImage(img *entities.BonsaiImage) error { return r.db.Create(img).Error }

func (r *bonsaiRepo) FindImage(id uint) (*entities.BonsaiImage, error) {
	var img entities.BonsaiImage
	if err := r.db.First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *bonsaiRepo) LatestImage(bonsaiID uint) (*entities.BonsaiImage, error) {
	var img entities.BonsaiImage
	err := r.db.Where("bonsai_id = ?", bonsaiID).Order("created_at DESC").First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *bonsaiRepo) ListImages(bonsaiID uint) ([]entities.BonsaiImage, error) {
	var out []entities.BonsaiImage
	if err := r.db.Where("bonsai_id = ?", bonsaiID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *bonsaiRepo) DeleteImage(id uint) error {
	return r.db.Delete(&entities.BonsaiImage{}, id).Error
}

func (r *bonsaiRepo) SpeciesByID(id uint) (*entities.SpeciesMaster, error) {
	var s entities.SpeciesMaster
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *bonsaiRepo) ListSpecies() ([]entities.SpeciesMaster, error) {
	var out []entities.SpeciesMaster
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
