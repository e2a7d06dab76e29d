package api

import (
	"net/http"

	reqdto "amenity-booking/internal/handler/dto/request"
	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/handler/httperr"
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds  commands.BookingCommands
	q     queries.BookingQueries
	clock clock.Clock
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, clock clock.Clock) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, clock: clock}
}

// @Summary Create booking
// @Description Book a slot. A taken slot puts the caller on the waitlist instead.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse "confirmed"
// @Success 202 {object} resdto.CreateBookingResponse "waitlisted"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := resdto.FromCreateBookingResult(result, h.clock.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Status == commands.CreateWaitlisted {
		status = http.StatusAccepted
	} else if result.Booking != nil {
		c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
	}
	c.JSON(status, body)
}

// @Summary List my bookings
// @Description Bookings of the caller with their display status. Archived bookings are omitted.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Router /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.q.ListMyBookings(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromBookingViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromBookingView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Cancel booking
// @Description Cancels the booking and offers the slot to the head of the waitlist.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/cancel/{bookingId} [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}

	result, err := h.cmds.CancelBooking(c.Request.Context(), actor, id, req.GetReason())
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromCancelBookingResult(result, h.clock.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Check in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.cmds.CheckIn)
}

// @Summary Complete booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, h.cmds.CompleteBooking)
}

// @Summary Clear booking
// @Description Archives a finished booking so it no longer shows in lists.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/clear [post]
func (h *BookingHandler) Clear(c *gin.Context) {
	h.transition(c, h.cmds.ClearBooking)
}

// @Summary Confirm promotion offer
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 403 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.resolveOffer(c, h.cmds.ConfirmOffer)
}

// @Summary Decline promotion offer
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 403 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/bookings/{id}/decline [post]
func (h *BookingHandler) Decline(c *gin.Context) {
	h.resolveOffer(c, h.cmds.DeclineOffer)
}

func (h *BookingHandler) resolveOffer(c *gin.Context, fn offerFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := fn(c.Request.Context(), actor.UserID, id)
	writeOfferResult(c, result, err, h.clock.Now())
}

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromBookingView(queries.NewBookingView(b, "", nil, h.clock.Now()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
