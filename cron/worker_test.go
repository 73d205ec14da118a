package cron

import (
	"context"
	"errors"
	"testing"

	"studybuddy/services/matching"
	"studybuddy/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRecommender struct {
	calls []string
	err   error
}

func (s *stubRecommender) GenerateRecommendations(_ context.Context, uid string) ([]matching.Recommendation, error) {
	s.calls = append(s.calls, uid)
	return nil, s.err
}

func TestHandleRefreshTask(t *testing.T) {
	ctx := context.Background()
	task, _, err := tasks.NewRefreshTask("alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		recErr  error
		wantErr bool
	}{
		{"success", nil, false},
		{"profile deleted", matching.ErrProfileNotFound, false},
		{"store failure retried", matching.ErrStoreFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &stubRecommender{err: tt.recErr}
			err := HandleRefreshTask(rec, zap.NewNop(), nil)(ctx, task)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, errors.Is(err, asynq.SkipRetry))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, []string{"alice"}, rec.calls)
		})
	}
}

func TestHandleRefreshTaskBadPayload(t *testing.T) {
	rec := &stubRecommender{}
	err := HandleRefreshTask(rec, zap.NewNop(), nil)(context.Background(),
		asynq.NewTask(tasks.TypeRefreshRecommendations, []byte(`{"uid":""}`)))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, rec.calls)
}
