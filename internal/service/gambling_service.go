package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"gorm.io/gorm"
)

type PlaceBetInput struct {
	UserID         uint64
	GamblingTypeID *uint64 // nil selects the default type
	Points         int64
	AssignmentID   *uint64
	TargetUserID   *uint64
}

type GamblingService interface {
	PlaceBet(ctx context.Context, in PlaceBetInput) (*model.GamblingPoints, error)
	Resolve(ctx context.Context, betID uint64, won bool) (*model.GamblingPoints, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]model.GamblingType, error)
	ListForAssignment(ctx context.Context, userID, assignmentID uint64) ([]model.GamblingPoints, error)
	ListActive(ctx context.Context, userID uint64) ([]model.GamblingPoints, error)
	ListForType(ctx context.Context, userID uint64, gamblingTypeID *uint64) ([]model.GamblingPoints, error)
	// ListForAssignments groups the user's bets by assignment id, each group in placement order.
	ListForAssignments(ctx context.Context, userID uint64, assignmentIDs []uint64) (map[uint64][]model.GamblingPoints, error)
}

type gamblingService struct {
	repo          repository.GamblingRepository
	seasons       SeasonService
	defaultLookup string
}

func NewGamblingService(repo repository.GamblingRepository, seasons SeasonService, defaultLookup string) GamblingService {
	return &gamblingService{repo: repo, seasons: seasons, defaultLookup: defaultLookup}
}

func (s *gamblingService) PlaceBet(ctx context.Context, in PlaceBetInput) (*model.GamblingPoints, error) {
	if in.UserID == 0 {
		return nil, fmt.Errorf("%w: user is required", ErrValidation)
	}
	if in.Points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", ErrValidation)
	}
	seasonID, err := s.seasons.CurrentID(ctx)
	if err != nil {
		return nil, err
	}
	if seasonID == 0 {
		return nil, ErrNoActiveSeason
	}
	typeID, err := s.resolveType(ctx, in.GamblingTypeID)
	if err != nil {
		return nil, err
	}

	key := repository.BetKey{
		UserID:         in.UserID,
		GamblingTypeID: typeID,
		AssignmentID:   deref(in.AssignmentID),
		TargetUserID:   deref(in.TargetUserID),
	}
	bet, err := s.repo.UpsertPending(ctx, key, seasonID, in.Points)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBetLocked
		}
		return nil, err
	}
	log.Printf("[gambling] bet=%d user=%d type=%d assignment=%d target=%d points=%d season=%d",
		bet.ID, key.UserID, key.GamblingTypeID, key.AssignmentID, key.TargetUserID, bet.Points, seasonID)
	return bet, nil
}

func (s *gamblingService) Resolve(ctx context.Context, betID uint64, won bool) (*model.GamblingPoints, error) {
	if _, err := s.repo.FindByID(ctx, betID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	status := model.GamblingStatusLost
	if won {
		status = model.GamblingStatusWon
	}
	if err := s.repo.Resolve(ctx, betID, status, won); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBetLocked
		}
		return nil, err
	}
	return s.repo.FindByID(ctx, betID)
}

func (s *gamblingService) ListTypes(ctx context.Context, activeOnly bool) ([]model.GamblingType, error) {
	return s.repo.ListTypes(ctx, activeOnly)
}

func (s *gamblingService) ListForAssignment(ctx context.Context, userID, assignmentID uint64) ([]model.GamblingPoints, error) {
	return s.repo.ListByAssignment(ctx, userID, assignmentID)
}

func (s *gamblingService) ListActive(ctx context.Context, userID uint64) ([]model.GamblingPoints, error) {
	return s.repo.ListForActiveTypes(ctx, userID)
}

func (s *gamblingService) ListForType(ctx context.Context, userID uint64, gamblingTypeID *uint64) ([]model.GamblingPoints, error) {
	typeID, err := s.resolveType(ctx, gamblingTypeID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByType(ctx, userID, typeID)
}

func (s *gamblingService) ListForAssignments(ctx context.Context, userID uint64, assignmentIDs []uint64) (map[uint64][]model.GamblingPoints, error) {
	list, err := s.repo.ListByAssignments(ctx, userID, assignmentIDs)
	if err != nil {
		return nil, err
	}
	grouped := make(map[uint64][]model.GamblingPoints, len(assignmentIDs))
	for _, bet := range list {
		grouped[bet.AssignmentID] = append(grouped[bet.AssignmentID], bet)
	}
	return grouped, nil
}

func (s *gamblingService) resolveType(ctx context.Context, gamblingTypeID *uint64) (uint64, error) {
	if gamblingTypeID != nil {
		t, err := s.repo.FindTypeByID(ctx, *gamblingTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrNotFound
			}
			return 0, err
		}
		return t.ID, nil
	}
	if s.defaultLookup == "" {
		return 0, ErrNoDefaultType
	}
	t, err := s.repo.FindTypeByLookup(ctx, s.defaultLookup)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoDefaultType
		}
		return 0, err
	}
	return t.ID, nil
}

func deref(p *uint64) uint64 {
	if p == nil {
		return 0
	}
	return *p
}
