package service

import (
	"context"
	"testing"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEvents(t *testing.T) {
	got := NormalizeEvents([]string{" episode.scheduled ,episode.published", "", "episode.scheduled"})
	assert.Equal(t, []string{model.EventEpisodeScheduled, model.EventEpisodePublished}, got)
	assert.Empty(t, NormalizeEvents([]string{" , "}))
}

func TestWebhookCreateListDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewWebhookService(f.webhooks)

	_, err := svc.Create(ctx, "ftp://example.com/hook", []string{model.EventEpisodeScheduled})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "/relative", []string{model.EventEpisodeScheduled})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "https://example.com/hook", nil)
	assert.ErrorIs(t, err, ErrValidation)

	w, err := svc.Create(ctx, "https://example.com/hook", []string{"episode.scheduled, episode.published"})
	require.NoError(t, err)
	assert.Len(t, w.ID, 36)
	assert.Len(t, w.Secret, 64)
	assert.Equal(t, "episode.scheduled,episode.published", w.Events)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, w.Secret, list[0].Secret)

	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrValidation)
	require.NoError(t, svc.Delete(ctx, w.ID))
	assert.ErrorIs(t, svc.Delete(ctx, w.ID), ErrNotFound)
}
