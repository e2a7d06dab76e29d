package api

import (
	"context"

	"amenity-booking/internal/domain/booking"
	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type transitionFunc func(ctx context.Context, actor user.Actor, id uuid.UUID) (*booking.Booking, error)

type offerFunc func(ctx context.Context, userID, bookingID uuid.UUID) (*commands.OfferResult, error)
