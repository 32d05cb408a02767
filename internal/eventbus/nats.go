// Package eventbus mirrors webhook events onto NATS JetStream.
package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

const SubjectPrefix = "podcast.events"

type JetStreamPublisher struct {
	js nats.JetStreamContext
}

func NewJetStreamPublisher(js nats.JetStreamContext) *JetStreamPublisher {
	return &JetStreamPublisher{js: js}
}

// Connect dials url and makes sure stream captures every event subject.
func Connect(url, stream string) (*nats.Conn, *JetStreamPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("podcast-backend"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	if err := ConfigureStream(js, stream); err != nil {
		nc.Close()
		return nil, nil, err
	}
	return nc, NewJetStreamPublisher(js), nil
}

func ConfigureStream(js nats.JetStreamManager, stream string) error {
	_, err := js.StreamInfo(stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}
	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{SubjectPrefix + ".>"},
	}); err != nil {
		return fmt.Errorf("failed to add stream: %w", err)
	}
	return nil
}

func Subject(event string) string {
	return SubjectPrefix + "." + event
}

func (p *JetStreamPublisher) Publish(ctx context.Context, event string, body []byte) error {
	_, err := p.js.Publish(Subject(event), body, nats.Context(ctx))
	return err
}
