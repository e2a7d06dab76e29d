package booking

import "time"

type Status string

const (
	StatusConfirmed           Status = "confirmed"
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusCancelled           Status = "cancelled"
	StatusCompleted           Status = "completed"
	StatusExpired             Status = "expired"
	StatusArchived            Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPendingConfirmation, StatusCancelled,
		StatusCompleted, StatusExpired, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusExpired, StatusArchived:
		return true
	default:
		return false
	}
}

// HoldsSlot reports whether the booking occupies its window.
func (s Status) HoldsSlot() bool {
	return s == StatusConfirmed || s == StatusPendingConfirmation
}

// SlotHoldingStatuses lists the statuses that block a window, for store queries.
func SlotHoldingStatuses() []Status {
	return []Status{StatusConfirmed, StatusPendingConfirmation}
}

type DisplayStatus string

const (
	DisplayUpcoming            DisplayStatus = "upcoming"
	DisplayActive              DisplayStatus = "active"
	DisplayPendingConfirmation DisplayStatus = "pending_confirmation"
	DisplayExpired             DisplayStatus = "expired"
	DisplayCancelled           DisplayStatus = "cancelled"
	DisplayCompleted           DisplayStatus = "completed"
	DisplayArchived            DisplayStatus = "archived"
)

func (s DisplayStatus) String() string {
	return string(s)
}

// DeriveStatus computes what a reader sees. A stored terminal status always
// wins; otherwise the status follows the clock. It never mutates anything.
func DeriveStatus(stored Status, start, end, now time.Time) DisplayStatus {
	switch stored {
	case StatusCancelled:
		return DisplayCancelled
	case StatusCompleted:
		return DisplayCompleted
	case StatusArchived:
		return DisplayArchived
	case StatusExpired:
		return DisplayExpired
	case StatusPendingConfirmation:
		// reads as pending_confirmation, never upcoming, until the slot starts
		if now.Before(start) {
			return DisplayPendingConfirmation
		}
		// An offer nobody confirmed before the slot began can no longer be used.
		return DisplayExpired
	}

	switch {
	case now.Before(start):
		return DisplayUpcoming
	case !now.After(end):
		return DisplayActive
	default:
		return DisplayExpired
	}
}
