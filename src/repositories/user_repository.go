package repositories

import (
	"appealapp/src/db"
	"appealapp/src/models"
)

type UserRepo interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

type DBUserRepo struct{}

func (r *DBUserRepo) Create(user *models.User) error {
	return db.DB.Create(user).Error
}

func (r *DBUserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *DBUserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := db.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *DBUserRepo) Update(user *models.User) error {
	return db.DB.Save(user).Error
}
