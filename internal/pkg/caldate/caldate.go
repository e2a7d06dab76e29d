// Package caldate normalizes the many ways a calendar day reaches the service
// (native times, ISO strings, document-store timestamps) into a single Date.
// Business logic compares Date values only and never inspects the original
// representation.
package caldate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const layout = "2006-01-02"

var (
	ErrInvalidDate           = errors.New("invalid calendar date")
	ErrUnsupportedDateFormat = errors.New("unsupported date representation")
)

type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Timestamp mirrors the {seconds, nanoseconds} shape document stores emit.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// Of returns the calendar day t falls on in loc.
func Of(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Of(t, time.UTC), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Midnight returns the start of the day in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return Of(d.Midnight(time.UTC).AddDate(0, 0, n), time.UTC)
}

func (d Date) Before(o Date) bool {
	return d.Midnight(time.UTC).Before(o.Midnight(time.UTC))
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Normalize maps any supported representation onto a calendar day.
// Date-only strings are taken literally; instants are converted to loc first so
// the same moment always lands on the same community-local day.
func Normalize(input any, loc *time.Location) (Date, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := input.(type) {
	case Date:
		return v, nil
	case *Date:
		if v == nil {
			return Date{}, ErrInvalidDate
		}
		return *v, nil
	case time.Time:
		if v.IsZero() {
			return Date{}, ErrInvalidDate
		}
		return Of(v, loc), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return Date{}, ErrInvalidDate
		}
		return Of(*v, loc), nil
	case Timestamp:
		return Of(time.Unix(v.Seconds, int64(v.Nanos)), loc), nil
	case *Timestamp:
		if v == nil {
			return Date{}, ErrInvalidDate
		}
		return Of(time.Unix(v.Seconds, int64(v.Nanos)), loc), nil
	case string:
		return parseString(v, loc)
	case Input:
		return normalizeJSON(v, loc)
	case json.RawMessage:
		return normalizeJSON(v, loc)
	case []byte:
		return normalizeJSON(v, loc)
	case map[string]any:
		return fromMap(v, loc)
	default:
		return Date{}, fmt.Errorf("%w: %T", ErrUnsupportedDateFormat, input)
	}
}

func parseString(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	if len(s) == len(layout) {
		return Parse(s)
	}
	for _, l := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(l, s); err == nil {
			return Of(t, loc), nil
		}
	}
	// Zone-less timestamps are wall-clock values in the community zone.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return Of(t, loc), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func normalizeJSON(raw []byte, loc *time.Location) (Date, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Date{}, ErrInvalidDate
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Date{}, ErrInvalidDate
		}
		return parseString(s, loc)
	case '{':
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return Date{}, ErrInvalidDate
		}
		return fromMap(m, loc)
	default:
		return Date{}, fmt.Errorf("%w: %s", ErrUnsupportedDateFormat, string(raw))
	}
}

func fromMap(m map[string]any, loc *time.Location) (Date, error) {
	secRaw, ok := firstKey(m, "seconds", "_seconds")
	if !ok {
		return Date{}, fmt.Errorf("%w: missing seconds", ErrUnsupportedDateFormat)
	}
	sec, err := toInt64(secRaw)
	if err != nil {
		return Date{}, err
	}

	var nanos int64
	if nRaw, ok := firstKey(m, "nanoseconds", "_nanoseconds", "nanos"); ok {
		if nanos, err = toInt64(nRaw); err != nil {
			return Date{}, err
		}
	}
	return Of(time.Unix(sec, nanos), loc), nil
}

func firstKey(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, ErrInvalidDate
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedDateFormat, v)
	}
}

// Input defers interpretation of a JSON date until the community location is known.
type Input json.RawMessage

func (in *Input) UnmarshalJSON(b []byte) error {
	*in = append((*in)[:0], b...)
	return nil
}

func (in Input) MarshalJSON() ([]byte, error) {
	if len(in) == 0 {
		return []byte("null"), nil
	}
	return []byte(in), nil
}

func (in Input) Resolve(loc *time.Location) (Date, error) {
	return normalizeJSON(in, loc)
}
