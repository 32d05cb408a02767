package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Publisher mirrors triggered events onto an event bus.
type Publisher interface {
	Publish(ctx context.Context, event string, body []byte) error
}

// Result describes one delivery attempt.
type Result struct {
	WebhookID  string
	URL        string
	DeliveryID string
	StatusCode int
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

type Dispatcher struct {
	repo   repository.WebhookRepository
	client *http.Client
	bus    Publisher
}

// NewDispatcher builds a dispatcher. bus may be nil.
func NewDispatcher(repo repository.WebhookRepository, client *http.Client, bus Publisher) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Dispatcher{repo: repo, client: client, bus: bus}
}

// Trigger delivers payload to every subscription interested in event and
// waits for all attempts to settle. Individual delivery failures are logged
// and reported in the results, never returned as the error.
func (d *Dispatcher) Trigger(ctx context.Context, event string, payload interface{}) ([]Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	subs, err := d.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	var targets []model.Webhook
	for _, sub := range subs {
		if sub.Subscribes(event) {
			targets = append(targets, sub)
		}
	}

	results := make([]Result, len(targets))
	var g errgroup.Group
	for i, sub := range targets {
		i, sub := i, sub
		g.Go(func() error {
			results[i] = d.deliver(ctx, sub, event, body)
			return nil
		})
	}
	if d.bus != nil {
		g.Go(func() error {
			if err := d.bus.Publish(ctx, event, body); err != nil {
				log.Printf("[webhook] stage=bus_publish event=%s err=%v", event, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("[webhook] stage=done event=%s subscribers=%d", event, len(targets))
	return results, nil
}

func (d *Dispatcher) deliver(ctx context.Context, sub model.Webhook, event string, body []byte) Result {
	res := Result{WebhookID: sub.ID, URL: sub.URL, DeliveryID: uuid.NewString()}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		res.Err = err
		log.Printf("[webhook] stage=build id=%s url=%s err=%v", sub.ID, sub.URL, err)
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSignature, Sign(sub.Secret, body))
	req.Header.Set(HeaderEvent, event)
	req.Header.Set(HeaderDelivery, res.DeliveryID)

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		res.Err = err
		log.Printf("[webhook] stage=send_fail id=%s url=%s event=%s err=%v", sub.ID, sub.URL, event, err)
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	if !res.OK() {
		log.Printf("[webhook] stage=send_status id=%s url=%s event=%s status=%d", sub.ID, sub.URL, event, resp.StatusCode)
		return res
	}
	log.Printf("[webhook] stage=sent id=%s event=%s status=%d ms=%d", sub.ID, event, resp.StatusCode, time.Since(start).Milliseconds())
	return res
}
