package matchRepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMatchRepoUpsertKeepsConfirmation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepo()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, "a_b", []string{"a", "b"}, 40, t0))
	m, err := repo.Get(ctx, "a_b")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.Confirmed)

	require.NoError(t, repo.Confirm(ctx, "a_b", t0.Add(time.Hour)))
	require.NoError(t, repo.Upsert(ctx, "a_b", []string{"a", "b"}, 60, t0.Add(2*time.Hour)))

	m, err = repo.Get(ctx, "a_b")
	require.NoError(t, err)
	assert.True(t, m.Confirmed)
	assert.Equal(t, 60, m.Score)
	require.NotNil(t, m.ConfirmedAt)
	assert.Equal(t, t0.Add(time.Hour), *m.ConfirmedAt)
}

func TestMemoryMatchRepoConfirmMissing(t *testing.T) {
	repo := NewMemoryMatchRepo()
	err := repo.Confirm(context.Background(), "x_y", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryMatchRepoListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryMatchRepo()
	now := time.Now()
	require.NoError(t, repo.Upsert(ctx, "a_c", []string{"a", "c"}, 10, now))
	require.NoError(t, repo.Upsert(ctx, "a_b", []string{"a", "b"}, 10, now))
	require.NoError(t, repo.Upsert(ctx, "b_c", []string{"b", "c"}, 10, now))

	got, err := repo.ListByUser(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a_b", got[0].MatchID)
	assert.Equal(t, "a_c", got[1].MatchID)
}
