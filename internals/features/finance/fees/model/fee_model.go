package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "lms_backend/internals/features/users/user/model"
)

const (
	FeeStatusPaid    = "paid"
	FeeStatusPending = "pending"
)

// FeeModel: one row per (user, month, year). Month is the English month name.
type FeeModel struct {
	FeeID        uuid.UUID  `json:"id"        gorm:"column:fee_id;type:uuid;primaryKey"`
	FeeUserID    uuid.UUID  `json:"userId"    gorm:"column:fee_user_id;type:uuid;not null;uniqueIndex:uq_fees_user_period,priority:1"`
	FeeMonth     string     `json:"month"     gorm:"column:fee_month;type:varchar(12);not null;uniqueIndex:uq_fees_user_period,priority:2"`
	FeeYear      int        `json:"year"      gorm:"column:fee_year;not null;uniqueIndex:uq_fees_user_period,priority:3;index"`
	FeeAmount    int64      `json:"amount"    gorm:"column:fee_amount;not null;default:0"`
	FeeStatus    string     `json:"status"    gorm:"column:fee_status;type:varchar(10);not null;default:'pending'"`
	FeePaidDate  *time.Time `json:"paidDate"  gorm:"column:fee_paid_date"`
	FeeCreatedAt time.Time  `json:"createdAt" gorm:"column:fee_created_at;not null;autoCreateTime"`
	FeeUpdatedAt time.Time  `json:"updatedAt" gorm:"column:fee_updated_at;not null;autoUpdateTime"`

	User *userModel.UserModel `json:"user,omitempty" gorm:"foreignKey:FeeUserID;references:ID"`
}

func (FeeModel) TableName() string { return "fees" }

func (m *FeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeID == uuid.Nil {
		m.FeeID = uuid.New()
	}
	return nil
}
