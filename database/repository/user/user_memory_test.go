package userRepo

import (
	"context"
	"testing"
	"time"

	"studybuddy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	got, err := repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, &models.User{UID: "b", Name: "Bob", StudyPreferences: []string{"group"}}))
	require.NoError(t, repo.Save(ctx, &models.User{UID: "a", Name: "Alice"}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].UID)

	all[1].StudyPreferences[0] = "mutated"
	bob, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"group"}, bob.StudyPreferences)

	major := "CS"
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Update(ctx, "b", models.UserPatch{Major: &major}, at))
	bob, err = repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "CS", bob.Major)
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, at, bob.UpdatedAt)

	assert.ErrorIs(t, repo.Update(ctx, "nobody", models.UserPatch{Major: &major}, at), ErrNotFound)
}
