package main

import (
	"context"
	"testing"
	"time"

	"github.com/shinyyama/podcast-backend/internal/db/dbtest"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, seed(ctx, gdb, false, "host@example.com", now))
	require.NoError(t, seed(ctx, gdb, false, "host@example.com", now))
	require.NoError(t, seed(ctx, gdb, true, "host@example.com", now))

	var seasons, types, pointTypes int64
	require.NoError(t, gdb.Model(&model.Season{}).Count(&seasons).Error)
	require.NoError(t, gdb.Model(&model.GamblingType{}).Count(&types).Error)
	require.NoError(t, gdb.Model(&model.GamePointType{}).Count(&pointTypes).Error)
	assert.EqualValues(t, 1, seasons)
	assert.EqualValues(t, len(gamblingTypes), types)
	assert.EqualValues(t, len(gamePointTypes), pointTypes)

	var def model.GamblingType
	require.NoError(t, gdb.Where("lookup = ?", "default").First(&def).Error)
	assert.True(t, def.IsActive)

	var admin model.User
	require.NoError(t, gdb.Where("email = ?", "host@example.com").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
}
