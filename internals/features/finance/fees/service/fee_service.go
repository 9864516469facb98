package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms_backend/internals/constants"
	"lms_backend/internals/features/finance/fees/dto"
	feeModel "lms_backend/internals/features/finance/fees/model"
	classService "lms_backend/internals/features/school/classes/service"
	userModel "lms_backend/internals/features/users/user/model"
	helper "lms_backend/internals/helpers"
)

const (
	minFeeYear = 2000
	maxFeeYear = 2100
)

type FeeService struct {
	DB *gorm.DB
}

func NewFeeService(db *gorm.DB) *FeeService {
	return &FeeService{DB: db}
}

// ClassSheet returns each enrolled student's fee for the period; students
// without a row are reported pending with amount 0.
func (s *FeeService) ClassSheet(ctx context.Context, classID uuid.UUID, month string, year int) ([]dto.ClassFeeRow, error) {
	if _, err := classService.FindClass(ctx, s.DB, classID); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var students []userModel.UserModel
	if err := db.
		Joins("JOIN enrollments ON enrollments.enrollment_user_id = users.id").
		Where("enrollments.enrollment_class_id = ?", classID).
		Order("users.full_name ASC").
		Find(&students).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load roster")
	}
	if len(students) == 0 {
		return []dto.ClassFeeRow{}, nil
	}

	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	var fees []feeModel.FeeModel
	if err := db.
		Where("fee_user_id IN ? AND fee_month = ? AND fee_year = ?", ids, month, year).
		Find(&fees).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load fees")
	}
	byUser := make(map[uuid.UUID]feeModel.FeeModel, len(fees))
	for _, f := range fees {
		byUser[f.FeeUserID] = f
	}

	out := make([]dto.ClassFeeRow, 0, len(students))
	for _, st := range students {
		row := dto.ClassFeeRow{ID: st.ID, FullName: st.FullName, FeeStatus: feeModel.FeeStatusPending}
		if f, ok := byUser[st.ID]; ok {
			id := f.FeeID
			row.FeeStatus, row.Amount, row.FeeID = f.FeeStatus, f.FeeAmount, &id
		}
		out = append(out, row)
	}
	return out, nil
}

// Mark upserts the (user, month, year) fee. "paid" stamps the paid date
// with now, "pending" clears it; the amount is always overwritten.
func (s *FeeService) Mark(ctx context.Context, req dto.MarkFeeRequest) (*feeModel.FeeModel, error) {
	userID, err := helper.ParseUUID(req.StudentID, "student")
	if err != nil {
		return nil, err
	}
	month, ok := helper.NormalizeMonth(req.Month)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid month")
	}
	year, ok := req.Year.Int()
	if !ok || year < minFeeYear || year > maxFeeYear {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid year")
	}
	var amount int64
	if req.Amount.Set {
		n, ok := req.Amount.Int()
		if !ok || n < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid amount")
		}
		amount = int64(n)
	}

	var student userModel.UserModel
	err = s.DB.WithContext(ctx).
		Where("id = ? AND role = ?", userID, constants.RoleStudent).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find student")
	}

	f := &feeModel.FeeModel{
		FeeUserID: userID,
		FeeMonth:  month,
		FeeYear:   year,
		FeeAmount: amount,
		FeeStatus: req.Status,
	}
	if req.Status == feeModel.FeeStatusPaid {
		now := time.Now().UTC()
		f.FeePaidDate = &now
	}

	db := s.DB.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "fee_user_id"}, {Name: "fee_month"}, {Name: "fee_year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fee_amount", "fee_status", "fee_paid_date", "fee_updated_at",
		}),
	}).Create(f).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "upsert fee")
	}

	// the conflict path keeps the original id; read back by key
	var stored feeModel.FeeModel
	if err := db.Preload("User").
		Where("fee_user_id = ? AND fee_month = ? AND fee_year = ?", userID, month, year).
		First(&stored).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "reload fee")
	}
	log.Printf("[INFO] fee %s %d for %s set to %s", month, year, userID, req.Status)
	return &stored, nil
}

// History lists every fee, newest period first. Paging is applied after
// the calendar sort since month names do not sort in SQL.
func (s *FeeService) History(ctx context.Context, p helper.Paging) ([]feeModel.FeeModel, int64, error) {
	var rows []feeModel.FeeModel
	if err := s.DB.WithContext(ctx).Preload("User").Find(&rows).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "load fees")
	}
	SortFees(rows)
	total := int64(len(rows))
	if !p.Enabled {
		return rows, total, nil
	}
	if p.Offset >= len(rows) {
		return []feeModel.FeeModel{}, total, nil
	}
	end := p.Offset + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[p.Offset:end], total, nil
}

func (s *FeeService) ForStudent(ctx context.Context, userID uuid.UUID) ([]feeModel.FeeModel, error) {
	var rows []feeModel.FeeModel
	if err := s.DB.WithContext(ctx).
		Where("fee_user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load fees")
	}
	SortFees(rows)
	return rows, nil
}

// SortFees orders by year DESC, calendar month DESC, updated_at DESC.
func SortFees(rows []feeModel.FeeModel) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.FeeYear != b.FeeYear {
			return a.FeeYear > b.FeeYear
		}
		if ma, mb := helper.MonthIndex(a.FeeMonth), helper.MonthIndex(b.FeeMonth); ma != mb {
			return ma > mb
		}
		return a.FeeUpdatedAt.After(b.FeeUpdatedAt)
	})
}

// PaidTotal sums paid amounts for one period.
func PaidTotal(ctx context.Context, db *gorm.DB, month string, year int) (int64, error) {
	var sum int64
	if err := db.WithContext(ctx).Model(&feeModel.FeeModel{}).
		Select("COALESCE(SUM(fee_amount), 0)").
		Where("fee_status = ? AND fee_month = ? AND fee_year = ?", feeModel.FeeStatusPaid, month, year).
		Scan(&sum).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "sum paid fees")
	}
	return sum, nil
}
