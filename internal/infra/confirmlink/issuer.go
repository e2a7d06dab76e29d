package confirmlink

import (
	"net/url"
	"strings"
	"time"

	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Issuer builds signed confirm and decline links for promotion offers.
type Issuer struct {
	jwt     *jwt.Service
	baseURL string
}

func NewIssuer(jwtService *jwt.Service, baseURL string) *Issuer {
	return &Issuer{jwt: jwtService, baseURL: strings.TrimRight(baseURL, "/")}
}

func (i *Issuer) OfferLinks(bookingID, userID uuid.UUID, deadline time.Time) (string, string, error) {
	token, err := i.jwt.GenerateLinkToken(bookingID, userID, deadline)
	if err != nil {
		return "", "", errs.Wrap(err, "failed to sign confirmation link")
	}
	return i.link(bookingID, "confirm", token), i.link(bookingID, "decline", token), nil
}

func (i *Issuer) link(bookingID uuid.UUID, action, token string) string {
	q := url.Values{}
	q.Set("action", action)
	q.Set("token", token)
	return i.baseURL + "/bookings/confirm/" + bookingID.String() + "?" + q.Encode()
}
