package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/identity"
	"github.com/shinyyama/podcast-backend/internal/service"
)

// writeError maps service errors onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrBetLocked):
		return c.JSON(http.StatusConflict, NewErrorResponse("bet_locked", err.Error()))
	case errors.Is(err, service.ErrNoActiveSeason):
		log.Printf("[handler] path=%s err=%v", c.Path(), err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("no_active_season", err.Error()))
	case errors.Is(err, service.ErrNoDefaultType):
		log.Printf("[handler] path=%s err=%v", c.Path(), err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("no_default_type", err.Error()))
	}
	log.Printf("[handler] path=%s err=%v", c.Path(), err)
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", msg))
}

func missingFields(c echo.Context, fields []string) error {
	return badRequest(c, "missing required field(s): "+strings.Join(fields, ", "))
}

// acting returns the user the request operates as.
func acting(c echo.Context) (identity.User, bool) {
	id, ok := identity.From(c.Request().Context())
	if !ok || id.Acting.ID == 0 {
		return identity.User{}, false
	}
	return id.Acting, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing identity"))
}
