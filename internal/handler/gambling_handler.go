package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/service"
)

type GamblingHandler struct {
	svc service.GamblingService
}

func NewGamblingHandler(svc service.GamblingService) *GamblingHandler {
	return &GamblingHandler{svc: svc}
}

type BetResponse struct {
	ID             uint64  `json:"id"`
	UserID         uint64  `json:"userId"`
	GamblingTypeID uint64  `json:"gamblingTypeId"`
	SeasonID       uint64  `json:"seasonId"`
	Points         int64   `json:"points"`
	AssignmentID   *uint64 `json:"assignmentId"`
	TargetUserID   *uint64 `json:"targetUserId"`
	Status         string  `json:"status"`
	Successful     *bool   `json:"successful"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toBetResponse(g *model.GamblingPoints) BetResponse {
	return BetResponse{
		ID:             g.ID,
		UserID:         g.UserID,
		GamblingTypeID: g.GamblingTypeID,
		SeasonID:       g.SeasonID,
		Points:         g.Points,
		AssignmentID:   nonZero(g.AssignmentID),
		TargetUserID:   nonZero(g.TargetUserID),
		Status:         string(g.Status),
		Successful:     g.Successful,
		CreatedAt:      g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      g.UpdatedAt.Format(time.RFC3339),
	}
}

func toBetResponses(list []model.GamblingPoints) []BetResponse {
	out := make([]BetResponse, 0, len(list))
	for i := range list {
		out = append(out, toBetResponse(&list[i]))
	}
	return out
}

func nonZero(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	return &v
}

type placeBetRequest struct {
	GamblingTypeID *uint64 `json:"gamblingTypeId"`
	Points         *int64  `json:"points"`
	AssignmentID   *uint64 `json:"assignmentId"`
	TargetUserID   *uint64 `json:"targetUserId"`
}

func (h *GamblingHandler) PlaceBet(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	var req placeBetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.Points == nil {
		return missingFields(c, []string{"points"})
	}
	bet, err := h.svc.PlaceBet(c.Request().Context(), service.PlaceBetInput{
		UserID:         user.ID,
		GamblingTypeID: req.GamblingTypeID,
		Points:         *req.Points,
		AssignmentID:   req.AssignmentID,
		TargetUserID:   req.TargetUserID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBetResponse(bet))
}

func (h *GamblingHandler) ListForAssignment(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	assignmentID, err := optionalUint(c, "assignmentId")
	if err != nil {
		return badRequest(c, "invalid assignmentId")
	}
	if assignmentID == nil {
		return missingFields(c, []string{"assignmentId"})
	}
	bets, err := h.svc.ListForAssignment(c.Request().Context(), user.ID, *assignmentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBetResponses(bets))
}

func (h *GamblingHandler) ListActive(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	bets, err := h.svc.ListActive(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBetResponses(bets))
}

func (h *GamblingHandler) ListForType(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	typeID, err := optionalUint(c, "gamblingTypeId")
	if err != nil {
		return badRequest(c, "invalid gamblingTypeId")
	}
	bets, err := h.svc.ListForType(c.Request().Context(), user.ID, typeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBetResponses(bets))
}

// ListForAssignments responds with every requested id as a key, mapping to
// an empty list when the user has no bets on that assignment.
func (h *GamblingHandler) ListForAssignments(c echo.Context) error {
	user, ok := acting(c)
	if !ok {
		return unauthorized(c)
	}
	ids, err := uintList(c.QueryParam("ids"))
	if err != nil {
		return badRequest(c, "invalid ids")
	}
	grouped, err := h.svc.ListForAssignments(c.Request().Context(), user.ID, ids)
	if err != nil {
		return writeError(c, err)
	}
	resp := make(map[string][]BetResponse, len(ids))
	for _, id := range ids {
		resp[strconv.FormatUint(id, 10)] = toBetResponses(grouped[id])
	}
	return c.JSON(http.StatusOK, resp)
}

type GamblingTypeResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lookup      *string `json:"lookup,omitempty"`
	IsActive    bool    `json:"isActive"`
}

func (h *GamblingHandler) ListTypes(c echo.Context) error {
	all := c.QueryParam("all") == "true"
	types, err := h.svc.ListTypes(c.Request().Context(), !all)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]GamblingTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, GamblingTypeResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Lookup:      t.Lookup,
			IsActive:    t.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}
