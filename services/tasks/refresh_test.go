package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTaskPayload(t *testing.T) {
	task, opts, err := NewRefreshTask("alice")
	require.NoError(t, err)
	assert.Equal(t, TypeRefreshRecommendations, task.Type())
	assert.NotEmpty(t, opts)

	p, err := ParseRefreshPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.UID)
}

func TestParseRefreshPayloadRejectsBadInput(t *testing.T) {
	_, err := ParseRefreshPayload(asynq.NewTask(TypeRefreshRecommendations, []byte("{")))
	assert.Error(t, err)

	_, err = ParseRefreshPayload(asynq.NewTask(TypeRefreshRecommendations, []byte(`{"uid":""}`)))
	assert.Error(t, err)
}
