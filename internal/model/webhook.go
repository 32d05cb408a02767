package model

import (
	"strings"
	"time"
)

const (
	EventEpisodeScheduled = "episode.scheduled"
	EventEpisodePublished = "episode.published"
)

type Webhook struct {
	ID        string    `gorm:"primaryKey;size:36"`
	URL       string    `gorm:"column:url;size:2048;not null"`
	Events    string    `gorm:"column:events;size:512;not null"` // comma-joined event names
	Secret    string    `gorm:"column:secret;size:64;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

func (w Webhook) EventList() []string {
	parts := strings.Split(w.Events, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Subscribes reports an exact match of event against the stored list.
func (w Webhook) Subscribes(event string) bool {
	for _, e := range w.EventList() {
		if e == event {
			return true
		}
	}
	return false
}
