//go:build unit

package caldate_test

import (
	"encoding/json"
	"testing"
	"time"

	"amenity-booking/internal/pkg/caldate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	want := caldate.New(2030, time.January, 12)
	// 2030-01-12 00:30 JST
	instant := time.Date(2030, 1, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		loc   *time.Location
		want  caldate.Date
		errIs error
	}{
		{name: "date value", input: want, want: want},
		{name: "date-only string", input: "2030-01-12", want: want},
		{name: "date-only string is not shifted by zone", input: "2030-01-12", loc: tokyo, want: want},
		{name: "padded string", input: "  2030-01-12 ", want: want},
		{name: "RFC3339 date is taken in the local zone", input: "2030-01-11T15:30:00Z", loc: tokyo, want: want},
		{name: "zone-less timestamp is local wall clock", input: "2030-01-12T00:30:00", loc: tokyo, want: want},
		{name: "time.Time", input: instant, loc: tokyo, want: want},
		{name: "time pointer", input: &instant, loc: tokyo, want: want},
		{name: "timestamp struct", input: caldate.Timestamp{Seconds: instant.Unix()}, loc: tokyo, want: want},
		{name: "seconds map", input: map[string]any{"seconds": float64(instant.Unix()), "nanoseconds": float64(0)}, loc: tokyo, want: want},
		{name: "underscore map", input: map[string]any{"_seconds": instant.Unix()}, loc: tokyo, want: want},
		{name: "raw json string", input: json.RawMessage(`"2030-01-12"`), want: want},
		{name: "raw json timestamp", input: json.RawMessage(`{"_seconds": ` + jsonInt(instant.Unix()) + `, "_nanoseconds": 0}`), loc: tokyo, want: want},
		{name: "input type", input: caldate.Input(`"2030-01-12"`), want: want},
		{name: "empty string", input: "", errIs: caldate.ErrInvalidDate},
		{name: "garbage string", input: "12/01/2030", errIs: caldate.ErrInvalidDate},
		{name: "invalid day", input: "2030-02-30", errIs: caldate.ErrInvalidDate},
		{name: "zero time", input: time.Time{}, errIs: caldate.ErrInvalidDate},
		{name: "json null", input: json.RawMessage(`null`), errIs: caldate.ErrInvalidDate},
		{name: "json number", input: json.RawMessage(`20300112`), errIs: caldate.ErrUnsupportedDateFormat},
		{name: "map without seconds", input: map[string]any{"nanos": 1}, errIs: caldate.ErrUnsupportedDateFormat},
		{name: "unsupported type", input: 42, errIs: caldate.ErrUnsupportedDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := caldate.Normalize(tt.input, tt.loc)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestDate(t *testing.T) {
	d := caldate.New(2030, time.January, 31)
	assert.Equal(t, "2030-01-31", d.String())
	assert.Equal(t, caldate.New(2030, time.February, 1), d.AddDays(1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.True(t, caldate.Date{}.IsZero())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2030-01-31"`, string(b))

	var back caldate.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
