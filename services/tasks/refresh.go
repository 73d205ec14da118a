package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRefreshRecommendations = "recommendations:refresh"

// RefreshPayload names the user whose recommendations should be recomputed.
type RefreshPayload struct {
	UID string `json:"uid"`
}

// refreshWindow collapses bursts of profile edits into one recompute.
const refreshWindow = time.Minute

func NewRefreshTask(uid string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(RefreshPayload{UID: uid})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRefreshRecommendations, b)
	opts := []asynq.Option{
		asynq.Unique(refreshWindow),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseRefreshPayload decodes a refresh task payload.
func ParseRefreshPayload(task *asynq.Task) (RefreshPayload, error) {
	var p RefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid refresh payload: %w", err)
	}
	if p.UID == "" {
		return p, errors.New("invalid refresh payload: missing uid")
	}
	return p, nil
}

// Enqueuer schedules refresh tasks on the asynq queue.
type Enqueuer struct {
	Client *asynq.Client
}

// ScheduleRefresh enqueues a recompute; a refresh already pending for the
// same user is not an error.
func (e *Enqueuer) ScheduleRefresh(ctx context.Context, uid string) error {
	task, opts, err := NewRefreshTask(uid)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("failed to enqueue refresh for %s: %w", uid, err)
	}
	return nil
}
