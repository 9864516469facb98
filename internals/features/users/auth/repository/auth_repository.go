package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(ctx context.Context, db *gorm.DB, username string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTakenByOther reports whether another account already uses username.
func UsernameTakenByOther(ctx context.Context, db *gorm.DB, username string, selfID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_name = ? AND id <> ?", username, selfID).
		Count(&count).Error
	return count > 0, err
}

func UpdatePassword(ctx context.Context, db *gorm.DB, userID uuid.UUID, hash string) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}

func UpdateUserName(ctx context.Context, db *gorm.DB, userID uuid.UUID, username string) error {
	return db.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("user_name", username).Error
}
