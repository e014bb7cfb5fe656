package repository

import "bonsai/entities"

type BonsaiRepository interface {
	Create(b *entities.Bonsai) error
	FindByID(id uint) (*entities.Bonsai, error)
	ListAll() ([]entities.Bonsai, error)
	ListByUser(userID uint) ([]entities.Bonsai, error)
	// DeleteCascade removes the tree together with its images and
	// pesticide/work logs, returning the image rows so the caller can
	// unlink the stored files.
	DeleteCascade(id uint) ([]entities.BonsaiImage, error)

	CreateImage(img *entities.BonsaiImage) error
	FindImage(id uint) (*entities.BonsaiImage, error)
	LatestImage(bonsaiID uint) (*entities.BonsaiImage, error)
	ListImages(bonsaiID uint) ([]entities.BonsaiImage, error)
	DeleteImage(id uint) error

	SpeciesByID(id uint) (*entities.SpeciesMaster, error)
	ListSpecies() ([]entities.SpeciesMaster, error)
}
