package service

import (
	"errors"
	"time"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles profile management and the license review queue.
type UserService struct {
	UserRepo *repository.UserRepository
	Logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Logger:   logger,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile lets a user edit their own display and license fields.
// Resubmitting license details sends the account back to pending review.
func (s *UserService) UpdateProfile(userID uint, updates *model.User) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = updates.Name
	user.Specialty = updates.Specialty
	user.Avatar = updates.Avatar

	licenseChanged := updates.LicenseNumber != user.LicenseNumber ||
		updates.LicenseState != user.LicenseState ||
		updates.NPINumber != user.NPINumber
	if licenseChanged {
		user.LicenseNumber = updates.LicenseNumber
		user.LicenseState = updates.LicenseState
		user.NPINumber = updates.NPINumber
		user.LicenseStatus = model.LicensePending
		user.VerifiedAt = nil
	}
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("incorrect password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()

	return s.UserRepo.Update(user)
}

// ListUsers is the admin view, filterable by license status for the
// verification queue.
func (s *UserService) ListUsers(page, limit int, licenseStatus string) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit, licenseStatus)
}

// ReviewLicense records an admin decision on a pending medical license.
func (s *UserService) ReviewLicense(userID uint, approve bool) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	status := model.LicenseRejected
	if approve {
		status = model.LicenseVerified
	}
	if err := s.UserRepo.SetLicenseStatus(userID, status); err != nil {
		return nil, err
	}

	s.Logger.Info("license reviewed",
		zap.Uint("user_id", userID),
		zap.String("status", string(status)))

	return s.GetUserByID(user.ID)
}

func (s *UserService) DisableUser(id uint, disable bool) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	user.Disabled = disable
	user.UpdatedAt = time.Now()

	return s.UserRepo.Update(user)
}
