package errs

import "errors"

// Error categories shared by every layer. Specific sentinels are tagged with
// one of these through Mark so the HTTP layer only needs to know the category.
var (
	// Request cannot be satisfied as given; nothing was persisted
	ErrValidation = errors.New("validation error")

	// Actor is neither the owner nor an admin
	ErrAuthorization = errors.New("authorization error")

	ErrNotFound = errors.New("not found")

	// State conflicts: invalid transitions, duplicates, unavailable slots
	ErrConflict = errors.New("conflict")

	// Promotion offer deadline has passed
	ErrExpiredOffer = errors.New("offer expired")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
