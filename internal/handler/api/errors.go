package api

import (
	"errors"
	"net/http"

	"amenity-booking/internal/domain/user"
	"amenity-booking/internal/handler/httperr"
	"amenity-booking/internal/handler/middleware"
	"amenity-booking/internal/pkg/errs"
	"amenity-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps the error categories tagged in the usecase and domain
// layers onto HTTP statuses. Messages of internal failures are not exposed.
func respondError(c *gin.Context, err error) {
	var unavailable *commands.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, unavailable.Reason, gin.H{"kind": string(unavailable.Kind)})
	case errs.Is(err, errs.ErrExpiredOffer):
		httperr.AbortWithError(c, http.StatusGone, err, "offer expired", nil)
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.Is(err, errs.ErrAuthorization):
		httperr.AbortWithError(c, http.StatusForbidden, err, err.Error(), nil)
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}
