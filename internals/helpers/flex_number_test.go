package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Marks FlexInt `json:"marks"`
	}
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
		wantValue int
	}{
		{name: "missing", body: `{}`},
		{name: "null", body: `{"marks":null}`},
		{name: "empty string", body: `{"marks":""}`},
		{name: "blank string", body: `{"marks":"  "}`},
		{name: "zero number", body: `{"marks":0}`, wantSet: true, wantValid: true, wantValue: 0},
		{name: "zero string", body: `{"marks":"0"}`, wantSet: true, wantValid: true, wantValue: 0},
		{name: "number", body: `{"marks":45}`, wantSet: true, wantValid: true, wantValue: 45},
		{name: "numeric string", body: `{"marks":"45"}`, wantSet: true, wantValid: true, wantValue: 45},
		{name: "decimal truncates", body: `{"marks":45.9}`, wantSet: true, wantValid: true, wantValue: 45},
		{name: "garbage", body: `{"marks":"abc"}`, wantSet: true},
		{name: "bool", body: `{"marks":true}`, wantSet: true},
		{name: "negative string", body: `{"marks":"-3"}`, wantSet: true, wantValid: true, wantValue: -3},
		{name: "max int32", body: `{"marks":"2147483647"}`, wantSet: true, wantValid: true, wantValue: 2147483647},
		{name: "NaN", body: `{"marks":"NaN"}`, wantSet: true},
		{name: "Inf", body: `{"marks":"Inf"}`, wantSet: true},
		{name: "Infinity", body: `{"marks":"Infinity"}`, wantSet: true},
		{name: "negative Infinity", body: `{"marks":"-Infinity"}`, wantSet: true},
		{name: "above int32", body: `{"marks":"99999999999"}`, wantSet: true},
		{name: "above int32 number", body: `{"marks":99999999999}`, wantSet: true},
		{name: "huge exponent", body: `{"marks":"1e300"}`, wantSet: true},
		{name: "below int32", body: `{"marks":"-2147483649"}`, wantSet: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.Marks.Set)
			assert.Equal(t, tt.wantValid, p.Marks.Valid)
			assert.Equal(t, tt.wantValue, p.Marks.Value)
			_, ok := p.Marks.Int()
			assert.Equal(t, tt.wantSet && tt.wantValid, ok)
		})
	}
}

func TestFlexInt_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(FlexInt{Value: 7, Set: true, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))

	b, err = json.Marshal(FlexInt{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
