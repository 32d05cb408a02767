package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"gorm.io/gorm"
)

type SeasonService interface {
	// Current returns the open season, or nil when no season is active.
	Current(ctx context.Context) (*model.Season, error)
	// CurrentID returns 0 when no season is active.
	CurrentID(ctx context.Context) (uint64, error)
	Start(ctx context.Context, name string) (*model.Season, error)
}

type seasonService struct {
	repo repository.SeasonRepository
	now  func() time.Time
}

func NewSeasonService(repo repository.SeasonRepository) SeasonService {
	return &seasonService{repo: repo, now: time.Now}
}

func (s *seasonService) Current(ctx context.Context) (*model.Season, error) {
	season, err := s.repo.FindCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return season, nil
}

func (s *seasonService) CurrentID(ctx context.Context) (uint64, error) {
	season, err := s.Current(ctx)
	if err != nil || season == nil {
		return 0, err
	}
	return season.ID, nil
}

func (s *seasonService) Start(ctx context.Context, name string) (*model.Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.repo.StartNew(ctx, name, s.now().UTC())
}
