package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shinyyama/podcast-backend/internal/db/dbtest"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWebhookListNewestFirstAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewWebhookRepository(dbtest.Open(t))

	old := &model.Webhook{ID: "a", URL: "https://a.example", Events: model.EventEpisodeScheduled, Secret: "s1",
		CreatedAt: time.Now().Add(-time.Hour)}
	fresh := &model.Webhook{ID: "b", URL: "https://b.example", Events: model.EventEpisodePublished, Secret: "s2"}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, fresh))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), gorm.ErrRecordNotFound)
}
