package repository

import "bonsai/entities"

type UserRepository interface {
	Create(u *entities.User) error
	FindByUsername(username string) (*entities.User, error)
	FindByID(id uint) (*entities.User, error)
	List() ([]entities.User, error)
}
