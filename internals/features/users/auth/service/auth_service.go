package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/features/users/auth/dto"
	authRepo "lms_backend/internals/features/users/auth/repository"
	helper "lms_backend/internals/helpers"
	helperAuth "lms_backend/internals/helpers/auth"
)

const msgInvalidCredentials = "Invalid credentials"

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login fails with the same 401 for an unknown username and a wrong
// password; the unknown path still pays for a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	username = strings.TrimSpace(username)

	user, err := authRepo.FindUserByUsername(ctx, s.DB, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(err, "find user")
		}
		helperAuth.BurnPasswordCheck(password)
		log.Printf("[INFO] login failed: unknown user %q", username)
		return nil, fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
	}
	if !helperAuth.CheckPassword(user.Password, password) {
		log.Printf("[INFO] login failed: password mismatch for %q", username)
		return nil, fiber.NewError(fiber.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := helperAuth.IssueToken(user.ID, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] login ok: %q", username)
	return &dto.LoginResponse{Token: token, User: dto.NewUserSummary(user)}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return pkgerrors.Wrap(err, "find user")
	}
	if !helperAuth.CheckPassword(user.Password, oldPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "Incorrect old password")
	}
	hash, err := helperAuth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := authRepo.UpdatePassword(ctx, s.DB, userID, hash); err != nil {
		return pkgerrors.Wrap(err, "update password")
	}
	return nil
}

// ChangeUsername verifies the password, then checks the name against every
// other account. The unique index backs the check up.
func (s *AuthService) ChangeUsername(ctx context.Context, userID uuid.UUID, newUsername, password string) (string, error) {
	newUsername = strings.TrimSpace(newUsername)

	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return "", pkgerrors.Wrap(err, "find user")
	}
	if !helperAuth.CheckPassword(user.Password, password) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Incorrect password")
	}

	taken, err := authRepo.UsernameTakenByOther(ctx, s.DB, newUsername, userID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "check username")
	}
	if taken {
		return "", fiber.NewError(fiber.StatusBadRequest, "Username already taken")
	}

	if err := authRepo.UpdateUserName(ctx, s.DB, userID, newUsername); err != nil {
		if helper.IsUniqueViolation(err) {
			return "", fiber.NewError(fiber.StatusBadRequest, "Username already taken")
		}
		return "", pkgerrors.Wrap(err, "update username")
	}
	return newUsername, nil
}
