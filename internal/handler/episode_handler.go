package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/service"
)

type EpisodeHandler struct {
	svc service.EpisodeService
}

func NewEpisodeHandler(svc service.EpisodeService) *EpisodeHandler {
	return &EpisodeHandler{svc: svc}
}

type updateStatusRequest struct {
	EpisodeID *uint64 `json:"episodeId"`
	Status    *string `json:"status"`
}

// UpdateStatus responds with the reloaded episode and the event fired, if any.
func (h *EpisodeHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	var missing []string
	if req.EpisodeID == nil {
		missing = append(missing, "episodeId")
	}
	if req.Status == nil || strings.TrimSpace(*req.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return missingFields(c, missing)
	}
	ep, event, err := h.svc.UpdateStatus(c.Request().Context(), *req.EpisodeID, model.EpisodeStatus(strings.TrimSpace(*req.Status)))
	if err != nil {
		return writeError(c, err)
	}
	resp := map[string]interface{}{"episode": ep}
	if event != "" {
		resp["event"] = event
	}
	return c.JSON(http.StatusOK, resp)
}
