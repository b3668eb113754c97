package service

import (
	"testing"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-sec"
	cfg.JWT.ExpireTime = 72 * time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Name:          "Dana Reyes",
		Email:         "dana@example.com",
		Password:      "correct horse battery",
		Specialty:     "Family Medicine",
		LicenseNumber: "A12345",
		LicenseState:  "TX",
	}
	require.NoError(t, svc.Register(user))
	assert.Equal(t, model.Member, user.Role)
	assert.Equal(t, model.LicensePending, user.LicenseStatus)
	assert.NotEqual(t, "correct horse battery", user.Password, "password must be stored hashed")

	token, loggedIn, err := svc.Login("dana@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{Name: "A", Email: "dup@example.com", Password: "password-one"}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "B", Email: "dup@example.com", Password: "password-two"}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "C", Email: "c@example.com", Password: "right-password"}
	require.NoError(t, svc.Register(user))

	_, _, err := svc.Login("c@example.com", "wrong-password")
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "D", Email: "d@example.com", Password: "some-password"}
	require.NoError(t, svc.Register(user))
	require.NoError(t, db.Model(user).Update("disabled", true).Error)

	_, _, err := svc.Login("d@example.com", "some-password")
	assert.EqualError(t, err, "account disabled")
}

func TestRegisterCannotSelfAssignVerifiedLicense(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Name:          "E",
		Email:         "e@example.com",
		Password:      "some-password",
		LicenseStatus: model.LicenseVerified,
	}
	require.NoError(t, svc.Register(user))
	assert.Equal(t, model.LicensePending, user.LicenseStatus)
}
