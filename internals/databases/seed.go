package database

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"lms_backend/internals/configs"
	"lms_backend/internals/constants"
	userModel "lms_backend/internals/features/users/user/model"
	helperAuth "lms_backend/internals/helpers/auth"
)

// SeedDefaultTeacher creates the default teacher account when no teacher
// exists yet. It returns true when an account was created.
func SeedDefaultTeacher(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleTeacher).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count teachers")
	}
	if count > 0 {
		return false, nil
	}

	hash, err := helperAuth.HashPassword(configs.DefaultTeacherPassword)
	if err != nil {
		return false, err
	}
	teacher := userModel.UserModel{
		UserName: configs.DefaultTeacherUsername,
		Password: hash,
		Role:     constants.RoleTeacher,
		FullName: configs.DefaultTeacherName,
	}
	if err := db.Create(&teacher).Error; err != nil {
		return false, errors.Wrap(err, "create default teacher")
	}
	log.Printf("[INFO] Seeded default teacher %q", teacher.UserName)
	return true, nil
}
