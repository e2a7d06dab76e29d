//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T, duration time.Duration) *jwt.Service {
	t.Helper()
	if duration == 0 {
		d, err := time.ParseDuration(h.cfg.Duration)
		require.NoError(t, err)
		duration = d
	}
	return jwt.NewService(h.cfg.Secret, h.cfg.LinkSecret, duration)
}

func (h *JWTHelper) GenerateToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	token, err := h.service(t, 0).GenerateToken(actor)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	token, err := h.service(t, time.Millisecond).GenerateToken(actor)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

func (h *JWTHelper) GenerateLinkToken(t *testing.T, bookingID, userID uuid.UUID, deadline time.Time) string {
	t.Helper()
	token, err := h.service(t, 0).GenerateLinkToken(bookingID, userID, deadline)
	require.NoError(t, err)
	return token
}
