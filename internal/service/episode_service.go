package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"github.com/shinyyama/podcast-backend/internal/webhook"
	"gorm.io/gorm"
)

// EventTrigger fans an event out to webhook subscribers.
type EventTrigger interface {
	Trigger(ctx context.Context, event string, payload interface{}) ([]webhook.Result, error)
}

type EpisodeService interface {
	Get(ctx context.Context, id uint64) (*model.Episode, error)
	// UpdateStatus stores the new status and fires the event for the
	// transition, if any. The returned event is empty when none fired.
	UpdateStatus(ctx context.Context, id uint64, status model.EpisodeStatus) (*model.Episode, string, error)
}

type episodeService struct {
	repo    repository.EpisodeRepository
	trigger EventTrigger
}

func NewEpisodeService(repo repository.EpisodeRepository, trigger EventTrigger) EpisodeService {
	return &episodeService{repo: repo, trigger: trigger}
}

// TransitionEvent maps a status change to the webhook event it fires.
func TransitionEvent(prev, next model.EpisodeStatus) (string, bool) {
	switch {
	case prev == model.EpisodeStatusPending && next == model.EpisodeStatusNext:
		return model.EventEpisodeScheduled, true
	case prev == model.EpisodeStatusNext && next == model.EpisodeStatusPublished:
		return model.EventEpisodePublished, true
	}
	return "", false
}

func (s *episodeService) Get(ctx context.Context, id uint64) (*model.Episode, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *episodeService) UpdateStatus(ctx context.Context, id uint64, status model.EpisodeStatus) (*model.Episode, string, error) {
	if !status.Valid() {
		return nil, "", fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	prev, err := s.repo.FindStatus(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	episode, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	event, ok := TransitionEvent(prev, status)
	if !ok || s.trigger == nil {
		return episode, "", nil
	}
	// Delivery is best-effort; the status change stands regardless.
	if _, err := s.trigger.Trigger(ctx, event, episode); err != nil {
		log.Printf("[episode] id=%d event=%s stage=trigger_fail err=%v", id, event, err)
	}
	log.Printf("[episode] id=%d status=%s->%s event=%s", id, prev, status, event)
	return episode, event, nil
}
