package services

import (
	"errors"
	"log"

	"appealapp/src/config"
	"appealapp/src/dto"
	"appealapp/src/middleware"
	"appealapp/src/models"
	"appealapp/src/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
)

type UserService struct {
	repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Register(input dto.RegisterDTO) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Password: string(hashed),
		Role:     string(models.UserRoleUser),
		Email:    input.Email,
		Phone:    input.Phone,
	}
	if err := s.repos.User.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a bearer token.
func (s *UserService) Login(input dto.LoginDTO) (string, *models.User, error) {
	user, err := s.repos.User.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, user.Role, middleware.TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.repos.User.FindByID(id)
}

func (s *UserService) Update(id uint, input dto.UpdateUserDTO) (*models.User, error) {
	user, err := s.repos.User.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		if input.OldPassword == nil {
			return nil, ErrWrongOldPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*input.OldPassword)); err != nil {
			return nil, ErrWrongOldPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.repos.User.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
func (s *UserService) EnsureAdmin() error {
	_, err := s.repos.User.FindByUsername(config.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username: config.AdminUsername,
		Password: string(hashed),
		Role:     string(models.UserRoleAdmin),
	}
	if err := s.repos.User.Create(admin); err != nil {
		return err
	}
	log.Printf("Admin account created: %s", config.AdminUsername)
	return nil
}
