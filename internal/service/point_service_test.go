package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPointService(f *fixture) PointService {
	return NewPointService(f.users, f.points, NewSeasonService(f.seasons))
}

func TestCalculateUserPointsZeroWithoutRows(t *testing.T) {
	f := newFixture(t)
	f.user(t, "fan@example.com")
	f.openSeason(t, "S1")

	total, err := newPointService(f).CalculateUserPoints(context.Background(), "fan@example.com", nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCalculateUserPointsAdjustmentAndGamePoint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "fan@example.com")
	s := f.openSeason(t, "S1")

	gpt := &model.GamePointType{Name: "Correct guess", Lookup: "guess", Points: 10}
	require.NoError(t, f.points.CreateGamePointType(ctx, gpt))
	require.NoError(t, f.points.CreateGamePoint(ctx, &model.GamePoint{UserID: u.ID, SeasonID: s.ID, GamePointTypeID: gpt.ID}))
	require.NoError(t, f.points.CreateAdjustment(ctx, &model.PointAdjustment{UserID: u.ID, SeasonID: s.ID, Points: -5}))

	total, err := newPointService(f).CalculateUserPoints(ctx, "fan@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestCalculateUserPointsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	deltas := []int64{7, -3, 12, -20, 4, 1}
	var want int64
	for _, d := range deltas {
		want += d
	}

	for round := 0; round < 3; round++ {
		f := newFixture(t)
		u := f.user(t, "fan@example.com")
		s := f.openSeason(t, "S1")

		shuffled := append([]int64(nil), deltas...)
		rand.New(rand.NewSource(int64(round))).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, d := range shuffled {
			require.NoError(t, f.points.CreateAdjustment(ctx, &model.PointAdjustment{UserID: u.ID, SeasonID: s.ID, Points: d}))
		}

		total, err := newPointService(f).CalculateUserPoints(ctx, "fan@example.com", &s.ID)
		require.NoError(t, err)
		assert.Equal(t, want, total)
	}
}

func TestCalculateUserPointsExplicitSeason(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "fan@example.com")
	past := f.openSeason(t, "past")
	require.NoError(t, f.points.CreateAdjustment(ctx, &model.PointAdjustment{UserID: u.ID, SeasonID: past.ID, Points: 42}))

	total, err := newPointService(f).CalculateUserPoints(ctx, "fan@example.com", &past.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)

	other := past.ID + 1
	total, err = newPointService(f).CalculateUserPoints(ctx, "fan@example.com", &other)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCalculateUserPointsUnknownUser(t *testing.T) {
	f := newFixture(t)
	f.openSeason(t, "S1")

	_, err := newPointService(f).CalculateUserPoints(context.Background(), "ghost@example.com", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "fan@example.com")
	svc := newPointService(f)

	_, err := svc.Adjust(ctx, "fan@example.com", nil, 5, "bonus")
	assert.ErrorIs(t, err, ErrNoActiveSeason)

	f.openSeason(t, "S1")
	_, err = svc.Adjust(ctx, "fan@example.com", nil, 0, "noop")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Adjust(ctx, "ghost@example.com", nil, 5, "bonus")
	assert.ErrorIs(t, err, ErrNotFound)

	adj, err := svc.Adjust(ctx, "fan@example.com", nil, -8, " late entry ")
	require.NoError(t, err)
	assert.Equal(t, "late entry", adj.Reason)

	total, err := svc.CalculateUserPoints(ctx, "fan@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-8), total)
}
