package services_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"appealapp/src/config"
	"appealapp/src/dto"
	"appealapp/src/middleware"
	"appealapp/src/models"
	"appealapp/src/repositories"
	"appealapp/src/repositories/mock_repositories"
	"appealapp/src/services"
)

func newUserService(t *testing.T) (*services.UserService, *mock_repositories.MockUserRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	userRepo := mock_repositories.NewMockUserRepo(ctrl)
	repos := &repositories.Repos{
		User:      userRepo,
		Complaint: mock_repositories.NewMockComplaintRepo(ctrl),
	}
	return services.NewUserService(repos), userRepo
}

func hash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		u.ID = 1
		return nil
	})

	user, err := svc.Register(dto.RegisterDTO{
		Username: "ivanov",
		Password: "secret1",
		Email:    "ivanov@example.ru",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.UserRoleUser), user.Role)
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
}

func TestLoginIssuesToken(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByUsername("ivanov").Return(&models.User{
		ID:       1,
		Username: "ivanov",
		Password: hash(t, "secret1"),
		Role:     string(models.UserRoleUser),
	}, nil)

	token, user, err := svc.Login(dto.LoginDTO{Username: "ivanov", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ivanov", user.Username)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByUsername("ivanov").Return(&models.User{
		Username: "ivanov",
		Password: hash(t, "secret1"),
	}, nil)

	_, _, err := svc.Login(dto.LoginDTO{Username: "ivanov", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByUsername("ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(dto.LoginDTO{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUpdatePasswordChecksOldOne(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByID(uint(1)).Return(&models.User{
		ID:       1,
		Password: hash(t, "secret1"),
	}, nil)

	wrong := "nope"
	next := "betterpass"
	_, err := svc.Update(1, dto.UpdateUserDTO{OldPassword: &wrong, Password: &next})
	assert.ErrorIs(t, err, services.ErrWrongOldPassword)
}

func TestUpdateProfileFields(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByID(uint(1)).Return(&models.User{ID: 1, Email: "old@example.ru"}, nil)
	repo.EXPECT().Update(gomock.Any()).Return(nil)

	email := "new@example.ru"
	phone := "+79991234567"
	user, err := svc.Update(1, dto.UpdateUserDTO{Email: &email, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "new@example.ru", user.Email)
	assert.Equal(t, "+79991234567", user.Phone)
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByUsername(config.AdminUsername).Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.Equal(t, string(models.UserRoleAdmin), u.Role)
		return nil
	})

	require.NoError(t, svc.EnsureAdmin())
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc, repo := newUserService(t)

	repo.EXPECT().FindByUsername(config.AdminUsername).Return(&models.User{Username: config.AdminUsername}, nil)

	require.NoError(t, svc.EnsureAdmin())
}
