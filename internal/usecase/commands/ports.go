package commands

import (
	"errors"

	"amenity-booking/internal/domain/amenity"
	"amenity-booking/internal/pkg/errs"
)

var (
	ErrInvalidTimeSlot       = errs.Mark(errors.New("invalid time slot"), errs.ErrValidation)
	ErrSlotInPast            = errs.Mark(errors.New("slot has already started"), errs.ErrValidation)
	ErrInvalidDate           = errs.Mark(errors.New("invalid date"), errs.ErrValidation)
	ErrSlotUnavailable       = errs.Mark(errors.New("slot unavailable"), errs.ErrConflict)
	ErrDuplicateBooking      = errs.Mark(errors.New("you already hold this slot"), errs.ErrConflict)
	ErrForbidden             = errs.Mark(errors.New("not allowed to act on this record"), errs.ErrAuthorization)
	ErrAdminRequired         = errs.Mark(errors.New("admin role required"), errs.ErrAuthorization)
	ErrBookingNotFound       = errs.Mark(errors.New("booking not found"), errs.ErrNotFound)
	ErrAmenityNotFound       = errs.Mark(errors.New("amenity not found"), errs.ErrNotFound)
	ErrWaitlistEntryNotFound = errs.Mark(errors.New("waitlist entry not found"), errs.ErrNotFound)
)

// UnavailableError carries the availability rule that rejected a request.
type UnavailableError struct {
	Kind   amenity.RejectionKind
	Reason string
}

func (e *UnavailableError) Error() string {
	return e.Reason
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable || target == errs.ErrConflict
}

// notFound replaces a store not-found error with the command's own sentinel.
func notFound(err error, sentinel error) error {
	if errs.Is(err, errs.ErrNotFound) {
		return sentinel
	}
	return err
}
