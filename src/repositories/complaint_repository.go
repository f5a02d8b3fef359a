package repositories

import (
	"appealapp/src/db"
	"appealapp/src/models"
)

type ComplaintRepo interface {
	Create(complaint *models.Complaint) error
	FindByUserID(userID uint) ([]models.Complaint, error)
	FindAll() ([]models.Complaint, error)
	FindByID(id uint) (*models.Complaint, error)
	Update(complaint *models.Complaint) error
}

type DBComplaintRepo struct{}

func (r *DBComplaintRepo) Create(complaint *models.Complaint) error {
	return db.DB.Create(complaint).Error
}

func (r *DBComplaintRepo) FindByUserID(userID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := db.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&complaints).Error
	return complaints, err
}

func (r *DBComplaintRepo) FindAll() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := db.DB.Preload("User").Order("created_at desc").Find(&complaints).Error
	return complaints, err
}

func (r *DBComplaintRepo) FindByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	err := db.DB.First(&complaint, id).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *DBComplaintRepo) Update(complaint *models.Complaint) error {
	return db.DB.Save(complaint).Error
}
