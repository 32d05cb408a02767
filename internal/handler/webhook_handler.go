package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/service"
)

type WebhookHandler struct {
	svc service.WebhookService
}

func NewWebhookHandler(svc service.WebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

type WebhookResponse struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
	Secret    string   `json:"secret"`
	CreatedAt string   `json:"createdAt"`
}

func toWebhookResponse(w *model.Webhook) WebhookResponse {
	return WebhookResponse{
		ID:        w.ID,
		URL:       w.URL,
		Events:    w.EventList(),
		Secret:    w.Secret,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

func (h *WebhookHandler) List(c echo.Context) error {
	hooks, err := h.svc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]WebhookResponse, 0, len(hooks))
	for i := range hooks {
		out = append(out, toWebhookResponse(&hooks[i]))
	}
	return c.JSON(http.StatusOK, out)
}

type createWebhookRequest struct {
	URL    string          `json:"url"`
	Events json.RawMessage `json:"events"`
}

// parseEvents accepts either a JSON array of names or a comma separated string.
func parseEvents(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, true
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return []string{joined}, true
	}
	return nil, false
}

func (h *WebhookHandler) Create(c echo.Context) error {
	var req createWebhookRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	events, ok := parseEvents(req.Events)
	if !ok {
		return badRequest(c, "events must be an array or a comma separated string")
	}
	var missing []string
	if strings.TrimSpace(req.URL) == "" {
		missing = append(missing, "url")
	}
	if len(service.NormalizeEvents(events)) == 0 {
		missing = append(missing, "events")
	}
	if len(missing) > 0 {
		return missingFields(c, missing)
	}
	w, err := h.svc.Create(c.Request().Context(), req.URL, events)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toWebhookResponse(w))
}

func (h *WebhookHandler) Delete(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return missingFields(c, []string{"id"})
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"ok": true})
}
