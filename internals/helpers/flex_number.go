package helper

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number, a numeric string, "" or null.
// Set is false for missing/null/""; Valid is false when a value was sent but
// is not a finite number within the int32 range of the integer columns.
type FlexInt struct {
	Value int
	Set   bool
	Valid bool
	Raw   string
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	raw = strings.TrimSpace(raw)
	f.Raw = raw
	if raw == "" {
		return nil
	}
	f.Set = true
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		f.Value, f.Valid = int(n), true
		return nil
	}
	// 45.0 style numbers are truncated the same way parseInt does
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return nil
	}
	fl = math.Trunc(fl)
	if fl < math.MinInt32 || fl > math.MaxInt32 {
		return nil
	}
	f.Value, f.Valid = int(fl), true
	return nil
}

// Int returns the value when one was sent and it parsed.
func (f FlexInt) Int() (int, bool) {
	return f.Value, f.Set && f.Valid
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}
