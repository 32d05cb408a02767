package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"github.com/shinyyama/podcast-backend/internal/webhook"
	"gorm.io/gorm"
)

type WebhookService interface {
	List(ctx context.Context) ([]model.Webhook, error)
	Create(ctx context.Context, rawURL string, events []string) (*model.Webhook, error)
	Delete(ctx context.Context, id string) error
}

type webhookService struct {
	repo repository.WebhookRepository
}

func NewWebhookService(repo repository.WebhookRepository) WebhookService {
	return &webhookService{repo: repo}
}

func (s *webhookService) List(ctx context.Context) ([]model.Webhook, error) {
	return s.repo.List(ctx)
}

func (s *webhookService) Create(ctx context.Context, rawURL string, events []string) (*model.Webhook, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: url must be an absolute http(s) URL", ErrValidation)
	}
	names := NormalizeEvents(events)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: events are required", ErrValidation)
	}
	secret, err := webhook.NewSecret()
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	w := &model.Webhook{
		ID:     uuid.NewString(),
		URL:    rawURL,
		Events: strings.Join(names, ","),
		Secret: secret,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *webhookService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// NormalizeEvents flattens comma-joined entries, trims them and drops
// empties and duplicates while keeping order.
func NormalizeEvents(events []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(events))
	for _, raw := range events {
		for _, e := range strings.Split(raw, ",") {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
