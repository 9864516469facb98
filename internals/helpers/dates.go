package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseDate accepts YYYY-MM-DD (or an RFC3339 timestamp, truncated) and
// returns the calendar day in UTC.
func ParseDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return datatypes.Date(t.UTC()), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
	}
	return datatypes.Date{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
}

// ParseTimestamp accepts RFC3339 or YYYY-MM-DD.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date")
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// NormalizeMonth maps a month name (any case, full or 3-letter) or a
// number 1..12 to its English name.
func NormalizeMonth(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return monthNames[n-1], true
		}
		return "", false
	}
	for _, name := range monthNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return name, true
		}
	}
	return "", false
}

// MonthIndex returns 1..12, or 0 for an unknown name.
func MonthIndex(name string) int {
	for i, n := range monthNames {
		if n == name {
			return i + 1
		}
	}
	return 0
}

func MonthName(m time.Month) string {
	return monthNames[m-1]
}
