package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shinyyama/podcast-backend/internal/db/dbtest"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestUpsertPendingCreatesThenOverwrites(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewGamblingRepository(conn)

	spin := &model.GamblingType{Name: "Spin", Lookup: strPtr("spin"), IsActive: true}
	require.NoError(t, repo.CreateType(ctx, spin))
	key := BetKey{UserID: 1, GamblingTypeID: spin.ID}

	first, err := repo.UpsertPending(ctx, key, 7, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), first.Points)
	assert.Equal(t, model.GamblingStatusPending, first.Status)
	assert.Equal(t, uint64(7), first.SeasonID)

	second, err := repo.UpsertPending(ctx, key, 7, 30)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(30), second.Points)

	var count int64
	require.NoError(t, conn.Model(&model.GamblingPoints{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertPendingRejectsResolved(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewGamblingRepository(conn)

	key := BetKey{UserID: 1, GamblingTypeID: 3, AssignmentID: 9, TargetUserID: 2}
	bet, err := repo.UpsertPending(ctx, key, 1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Resolve(ctx, bet.ID, model.GamblingStatusLost, false))

	_, err = repo.UpsertPending(ctx, key, 1, 50)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	stored, err := repo.FindByID(ctx, bet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Points)
	assert.Equal(t, model.GamblingStatusLost, stored.Status)
	require.NotNil(t, stored.Successful)
	assert.False(t, *stored.Successful)
}

func TestUpsertPendingKeepsTuplesApart(t *testing.T) {
	ctx := context.Background()
	repo := NewGamblingRepository(dbtest.Open(t))

	a, err := repo.UpsertPending(ctx, BetKey{UserID: 1, GamblingTypeID: 1, AssignmentID: 5}, 1, 10)
	require.NoError(t, err)
	b, err := repo.UpsertPending(ctx, BetKey{UserID: 1, GamblingTypeID: 1, AssignmentID: 5, TargetUserID: 4}, 1, 15)
	require.NoError(t, err)
	c, err := repo.UpsertPending(ctx, BetKey{UserID: 2, GamblingTypeID: 1, AssignmentID: 5}, 1, 20)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)

	list, err := repo.ListByAssignment(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestResolveOnlyPending(t *testing.T) {
	ctx := context.Background()
	repo := NewGamblingRepository(dbtest.Open(t))

	bet, err := repo.UpsertPending(ctx, BetKey{UserID: 1, GamblingTypeID: 1}, 1, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Resolve(ctx, bet.ID, model.GamblingStatusWon, true))
	assert.ErrorIs(t, repo.Resolve(ctx, bet.ID, model.GamblingStatusLost, false), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Resolve(ctx, 999, model.GamblingStatusWon, true), gorm.ErrRecordNotFound)
}

func TestListForActiveTypes(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewGamblingRepository(conn)

	active := &model.GamblingType{Name: "Active", IsActive: true}
	retired := &model.GamblingType{Name: "Retired", IsActive: true}
	require.NoError(t, repo.CreateType(ctx, active))
	require.NoError(t, repo.CreateType(ctx, retired))
	require.NoError(t, conn.Model(retired).Update("is_active", false).Error)

	_, err := repo.UpsertPending(ctx, BetKey{UserID: 1, GamblingTypeID: active.ID}, 1, 10)
	require.NoError(t, err)
	_, err = repo.UpsertPending(ctx, BetKey{UserID: 1, GamblingTypeID: retired.ID}, 1, 10)
	require.NoError(t, err)

	list, err := repo.ListForActiveTypes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].GamblingTypeID)

	types, err := repo.ListTypes(ctx, true)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Active", types[0].Name)
}
