package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"gorm.io/gorm"
)

type PointService interface {
	// CalculateUserPoints sums game point values and adjustments for the user
	// in the season. A nil seasonID means the current season.
	CalculateUserPoints(ctx context.Context, email string, seasonID *uint64) (int64, error)
	Adjust(ctx context.Context, email string, seasonID *uint64, points int64, reason string) (*model.PointAdjustment, error)
}

type pointService struct {
	users   repository.UserRepository
	points  repository.PointRepository
	seasons SeasonService
}

func NewPointService(users repository.UserRepository, points repository.PointRepository, seasons SeasonService) PointService {
	return &pointService{users: users, points: points, seasons: seasons}
}

func (s *pointService) CalculateUserPoints(ctx context.Context, email string, seasonID *uint64) (int64, error) {
	sid, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return 0, err
	}
	user, err := s.findUser(ctx, email)
	if err != nil {
		return 0, err
	}
	earned, err := s.points.SumGamePoints(ctx, user.ID, sid)
	if err != nil {
		return 0, fmt.Errorf("sum game points: %w", err)
	}
	adjusted, err := s.points.SumAdjustments(ctx, user.ID, sid)
	if err != nil {
		return 0, fmt.Errorf("sum adjustments: %w", err)
	}
	return earned + adjusted, nil
}

func (s *pointService) Adjust(ctx context.Context, email string, seasonID *uint64, points int64, reason string) (*model.PointAdjustment, error) {
	if points == 0 {
		return nil, fmt.Errorf("%w: points must be non-zero", ErrValidation)
	}
	sid, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if sid == 0 {
		return nil, ErrNoActiveSeason
	}
	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}
	adj := &model.PointAdjustment{
		UserID:   user.ID,
		SeasonID: sid,
		Points:   points,
		Reason:   strings.TrimSpace(reason),
	}
	if err := s.points.CreateAdjustment(ctx, adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// resolveSeason yields 0 when seasonID is nil and no season is open; the
// ledger queries then match nothing.
func (s *pointService) resolveSeason(ctx context.Context, seasonID *uint64) (uint64, error) {
	if seasonID != nil {
		return *seasonID, nil
	}
	return s.seasons.CurrentID(ctx)
}

func (s *pointService) findUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
