package slot

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWindow = errors.New("start time must be before end time")

// Window is a half-open time range [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

// MustWindow is for tests and slot generation where bounds are known to be ordered.
func MustWindow(start, end time.Time) Window {
	w, err := NewWindow(start, end)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w Window) IsZero() bool {
	return w.start.IsZero() && w.end.IsZero()
}

func (w Window) Overlaps(o Window) bool {
	return w.start.Before(o.end) && o.start.Before(w.end)
}

func (w Window) Equal(o Window) bool {
	return w.start.Equal(o.start) && w.end.Equal(o.end)
}

// Key identifies the window independent of the zone its bounds were parsed in.
func (w Window) Key() string {
	return fmt.Sprintf("%d-%d", w.start.Unix(), w.end.Unix())
}

func (w Window) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
