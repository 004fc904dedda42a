package worker

import (
	"context"
	"encoding/json"
	"time"

	"posgate/internal/model"
	"posgate/internal/repository"

	"github.com/rs/zerolog/log"
)

// ActivityJob is the payload of an activity-log recording job. Sales created
// through the API are logged off the request path so a slow or failing insert
// never delays the client response.
type ActivityJob struct {
	Username string `json:"username"`
	Action   string `json:"action"`
	Details  string `json:"details"`
}

type ActivityWorker struct {
	repo repository.ActivityRepository
}

func NewActivityWorker(repo repository.ActivityRepository) *ActivityWorker {
	return &ActivityWorker{repo: repo}
}

func (w *ActivityWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var job ActivityJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return err
	}

	entry := &model.ActivityLogEntry{
		Username:  job.Username,
		Action:    job.Action,
		Details:   job.Details,
		Timestamp: time.Now(),
	}
	if err := w.repo.Append(ctx, entry); err != nil {
		return err
	}

	log.Debug().
		Str("username", job.Username).
		Str("action", job.Action).
		Msg("activity recorded")
	return nil
}
