package api

import (
	"net/http"
	"time"

	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/handler/httperr"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/pkg/jwt"
	"amenity-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// LinkValidator verifies the signed token embedded in confirmation links.
type LinkValidator interface {
	ValidateLinkToken(token string) (*jwt.LinkClaims, error)
}

// ConfirmationHandler serves the links sent in waitlist_promoted emails.
// The link token is the only credential.
type ConfirmationHandler struct {
	cmds  commands.BookingCommands
	links LinkValidator
	clock clock.Clock
}

func NewConfirmationHandler(cmds commands.BookingCommands, links LinkValidator, clock clock.Clock) *ConfirmationHandler {
	return &ConfirmationHandler{cmds: cmds, links: links, clock: clock}
}

// @Summary Confirm or decline a promotion offer from an email link
// @Tags bookings
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param action query string true "confirm or decline"
// @Param token query string true "Signed link token"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /bookings/confirm/{bookingId} [get]
func (h *ConfirmationHandler) Handle(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}

	var fn offerFunc
	switch c.Query("action") {
	case "confirm":
		fn = h.cmds.ConfirmOffer
	case "decline":
		fn = h.cmds.DeclineOffer
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "action must be confirm or decline", nil)
		return
	}

	token := c.Query("token")
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Link token required", nil)
		return
	}
	claims, err := h.links.ValidateLinkToken(token)
	if err != nil || claims.BookingID != bookingID {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid confirmation link", nil)
		return
	}

	result, err := fn(c.Request.Context(), claims.UserID, bookingID)
	writeOfferResult(c, result, err, h.clock.Now())
}

// writeOfferResult keeps the warnings of a committed expiry cascade on the 410 body.
func writeOfferResult(c *gin.Context, result *commands.OfferResult, err error, now time.Time) {
	if err != nil {
		if errs.Is(err, errs.ErrExpiredOffer) && result != nil && len(result.Warnings) > 0 {
			httperr.AbortWithError(c, http.StatusGone, err, "offer expired", gin.H{"warnings": result.Warnings})
			return
		}
		respondError(c, err)
		return
	}
	body, err := resdto.FromOfferResult(result, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
