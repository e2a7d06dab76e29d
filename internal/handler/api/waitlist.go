package api

import (
	"net/http"

	resdto "amenity-booking/internal/handler/dto/response"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WaitlistHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewWaitlistHandler(cmds commands.BookingCommands, q queries.BookingQueries) *WaitlistHandler {
	return &WaitlistHandler{cmds: cmds, q: q}
}

// @Summary List my waitlist entries
// @Tags waitlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.WaitlistEntryResponse
// @Router /api/waitlist [get]
func (h *WaitlistHandler) ListMine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.q.ListMyWaitlist(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := resdto.FromWaitlistEntryViews(views)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Leave waitlist
// @Tags waitlist
// @Security BearerAuth
// @Param id path string true "Waitlist entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/waitlist/{id} [delete]
func (h *WaitlistHandler) Leave(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.LeaveWaitlist(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
