package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/service"
)

type PointHandler struct {
	svc service.PointService
}

func NewPointHandler(svc service.PointService) *PointHandler {
	return &PointHandler{svc: svc}
}

func (h *PointHandler) Mine(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	seasonID, err := optionalUint(c, "seasonId")
	if err != nil {
		return badRequest(c, "invalid seasonId")
	}
	total, err := h.svc.CalculateUserPoints(c.Request().Context(), user.Email, seasonID)
	if err != nil {
		return writeError(c, err)
	}
	resp := map[string]interface{}{
		"email":  user.Email,
		"points": total,
	}
	if seasonID != nil {
		resp["seasonId"] = *seasonID
	}
	return c.JSON(http.StatusOK, resp)
}
