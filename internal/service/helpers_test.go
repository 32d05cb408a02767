package service

import (
	"context"
	"testing"
	"time"

	"github.com/shinyyama/podcast-backend/internal/db/dbtest"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    repository.UserRepository
	seasons  repository.SeasonRepository
	points   repository.PointRepository
	gambling repository.GamblingRepository
	episodes repository.EpisodeRepository
	webhooks repository.WebhookRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	return &fixture{
		db:       conn,
		users:    repository.NewUserRepository(conn),
		seasons:  repository.NewSeasonRepository(conn),
		points:   repository.NewPointRepository(conn),
		gambling: repository.NewGamblingRepository(conn),
		episodes: repository.NewEpisodeRepository(conn),
		webhooks: repository.NewWebhookRepository(conn),
	}
}

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: email}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) openSeason(t *testing.T, name string) *model.Season {
	t.Helper()
	s := &model.Season{Name: name, StartAt: time.Now().UTC()}
	require.NoError(t, f.seasons.Create(context.Background(), s))
	return s
}

func (f *fixture) gamblingType(t *testing.T, name string, lookup *string) *model.GamblingType {
	t.Helper()
	gt := &model.GamblingType{Name: name, Lookup: lookup, IsActive: true}
	require.NoError(t, f.gambling.CreateType(context.Background(), gt))
	return gt
}

func ptr[T any](v T) *T { return &v }
