package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/service"
)

// AdminHandler serves ledger corrections behind the admin key.
type AdminHandler struct {
	points   service.PointService
	gambling service.GamblingService
}

func NewAdminHandler(points service.PointService, gambling service.GamblingService) *AdminHandler {
	return &AdminHandler{points: points, gambling: gambling}
}

type adjustPointsRequest struct {
	Email    string  `json:"email"`
	Points   *int64  `json:"points"`
	Reason   string  `json:"reason"`
	SeasonID *uint64 `json:"seasonId"`
}

func (h *AdminHandler) AdjustPoints(c echo.Context) error {
	var req adjustPointsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	var missing []string
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Points == nil {
		missing = append(missing, "points")
	}
	if len(missing) > 0 {
		return missingFields(c, missing)
	}
	adj, err := h.points.Adjust(c.Request().Context(), req.Email, req.SeasonID, *req.Points, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"id":        adj.ID,
		"userId":    adj.UserID,
		"seasonId":  adj.SeasonID,
		"points":    adj.Points,
		"reason":    adj.Reason,
		"createdAt": adj.CreatedAt.Format(time.RFC3339),
	})
}

type resolveBetRequest struct {
	Won *bool `json:"won"`
}

func (h *AdminHandler) ResolveBet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid bet id")
	}
	var req resolveBetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.Won == nil {
		return missingFields(c, []string{"won"})
	}
	bet, err := h.gambling.Resolve(c.Request().Context(), id, *req.Won)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBetResponse(bet))
}
