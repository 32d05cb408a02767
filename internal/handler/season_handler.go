package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/service"
)

type SeasonHandler struct {
	svc service.SeasonService
}

func NewSeasonHandler(svc service.SeasonService) *SeasonHandler {
	return &SeasonHandler{svc: svc}
}

type SeasonResponse struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	StartAt string  `json:"startAt"`
	EndAt   *string `json:"endAt,omitempty"`
}

func toSeasonResponse(s *model.Season) SeasonResponse {
	var endAt *string
	if s.EndAt != nil {
		v := s.EndAt.Format(time.RFC3339)
		endAt = &v
	}
	return SeasonResponse{ID: s.ID, Name: s.Name, StartAt: s.StartAt.Format(time.RFC3339), EndAt: endAt}
}

// Current responds with {"season": null} when no season is open.
func (h *SeasonHandler) Current(c echo.Context) error {
	s, err := h.svc.Current(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if s == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"season": nil})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"season": toSeasonResponse(s)})
}

type startSeasonRequest struct {
	Name string `json:"name"`
}

func (h *SeasonHandler) Start(c echo.Context) error {
	var req startSeasonRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if strings.TrimSpace(req.Name) == "" {
		return missingFields(c, []string{"name"})
	}
	s, err := h.svc.Start(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toSeasonResponse(s))
}
