package api

import (
	"net/http"
	"time"

	reqdto "amenity-booking/internal/handler/dto/request"
	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/handler/httperr"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AmenityHandler struct {
	cmds     commands.AmenityCommands
	q        queries.AmenityQueries
	bookings queries.BookingQueries
}

func NewAmenityHandler(cmds commands.AmenityCommands, q queries.AmenityQueries, bookings queries.BookingQueries) *AmenityHandler {
	return &AmenityHandler{cmds: cmds, q: q, bookings: bookings}
}

// @Summary List amenities
// @Description Defaults to the caller's community when communityId is omitted.
// @Tags amenities
// @Produce json
// @Security BearerAuth
// @Param communityId query string false "Community ID"
// @Success 200 {array} resdto.AmenityResponse
// @Router /api/amenities [get]
func (h *AmenityHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var communityID *uuid.UUID
	if v := c.Query("communityId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid communityId", nil)
			return
		}
		communityID = &id
	} else if actor.CommunityID != uuid.Nil {
		communityID = &actor.CommunityID
	}

	views, err := h.q.ListAmenities(c.Request.Context(), communityID)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Get amenity
// @Tags amenities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Success 200 {object} resdto.AmenityResponse
// @Failure 404 {object} httperr.Response
// @Router /api/amenities/{id} [get]
func (h *AmenityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetAmenity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary List slots for a day
// @Description Slot grid of the amenity with availability and waitlist length per slot.
// @Tags amenities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/amenities/{id}/slots [get]
func (h *AmenityHandler) Slots(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "date is required", nil)
		return
	}
	view, err := h.q.ListSlots(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromSlotsView(view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Amenity calendar
// @Description Bookings of the amenity overlapping [from, to). Admin only.
// @Tags amenities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param from query string true "RFC 3339 start"
// @Param to query string true "RFC 3339 end"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/amenities/{id}/bookings [get]
func (h *AmenityHandler) Bookings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from", nil)
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to", nil)
		return
	}
	views, err := h.bookings.ListAmenityBookings(c.Request.Context(), actor, id, from, to)
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

// @Summary Create amenity
// @Tags amenities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAmenityRequest true "Amenity"
// @Success 201 {object} resdto.AmenityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/amenities [post]
func (h *AmenityHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	a, err := h.cmds.CreateAmenity(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/api/amenities/"+a.ID().String())
	body, err := resdto.FromAmenityView(queries.NewAmenityView(a))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, body)
}

// @Summary Update amenity
// @Description Partial update of name, capacity and schedule.
// @Tags amenities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param request body reqdto.UpdateAmenityRequest true "Fields to change"
// @Success 200 {object} resdto.AmenityResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/amenities/{id} [put]
func (h *AmenityHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	a, err := h.cmds.UpdateAmenity(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityView(queries.NewAmenityView(a))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Block or unblock amenity
// @Tags amenities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param request body reqdto.BlockAmenityRequest true "Block state"
// @Success 200 {object} resdto.AmenityResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/amenities/{id}/block [put]
func (h *AmenityHandler) Block(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.BlockAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	a, err := h.cmds.SetBlocked(c.Request.Context(), actor, id, *req.IsBlocked, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityView(queries.NewAmenityView(a))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Add blackout date
// @Tags amenities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param request body reqdto.AddBlackoutDateRequest true "Blackout date"
// @Success 200 {object} resdto.AmenityResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/amenities/{id}/blackout-dates [post]
func (h *AmenityHandler) AddBlackoutDate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddBlackoutDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	a, err := h.cmds.AddBlackoutDate(c.Request.Context(), actor, id, req.Date, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityView(queries.NewAmenityView(a))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Remove blackout date
// @Tags amenities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Amenity ID"
// @Param date path string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AmenityResponse
// @Failure 404 {object} httperr.Response
// @Router /api/amenities/{id}/blackout-dates/{date} [delete]
func (h *AmenityHandler) RemoveBlackoutDate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	a, err := h.cmds.RemoveBlackoutDate(c.Request.Context(), actor, id, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromAmenityView(queries.NewAmenityView(a))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
