package model

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms_backend/internals/constants"
)

var validate = validator.New()

// UserModel merepresentasikan tabel users
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;size:50;not null;uniqueIndex:uq_users_user_name" json:"username" validate:"required,min=3,max=50"`
	Password  string    `gorm:"column:password;not null" json:"-" validate:"required"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:'student';index" json:"role" validate:"required,oneof=teacher student"`
	FullName  string    `gorm:"column:full_name;size:120;not null" json:"fullName" validate:"required,max=120"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) SetDefaultValues() {
	u.UserName = strings.TrimSpace(u.UserName)
	u.FullName = strings.TrimSpace(u.FullName)
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
}

func (u *UserModel) IsTeacher() bool { return u.Role == constants.RoleTeacher }

// Validate checks the model after defaults are applied.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			messages[fieldErr.Field()] = fieldErr.Field() + " is required."
		case "min":
			messages[fieldErr.Field()] = fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters."
		case "max":
			messages[fieldErr.Field()] = fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters."
		case "oneof":
			messages[fieldErr.Field()] = fieldErr.Field() + " must be one of " + fieldErr.Param() + "."
		default:
			messages[fieldErr.Field()] = fieldErr.Field() + " is invalid."
		}
	}
	return errors.New(formatErrorMessage(messages))
}

func formatErrorMessage(messages map[string]string) string {
	fields := make([]string, 0, len(messages))
	for f := range messages {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, messages[f])
	}
	return strings.Join(parts, " ")
}
