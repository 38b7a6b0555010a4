package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"
)

type Storage interface {
	Insert(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, usernamePrefix string) ([]models.Activity, error)
}

type TaskExecutor interface {
	Add(task func())
}

// Recorder appends audit records off the request path. A lost record is
// logged and tolerated: the audit log is best-effort, not transactional
// with the write it describes.
type Recorder struct {
	log     *slog.Logger
	storage Storage
	tasks   TaskExecutor
}

func NewRecorder(log *slog.Logger, storage Storage, tasks TaskExecutor) *Recorder {
	return &Recorder{
		log:     log,
		storage: storage,
		tasks:   tasks,
	}
}

func (r *Recorder) Record(username string, activityType string) {
	recordedAt := time.Now()
	r.tasks.Add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := r.storage.Insert(ctx, &models.Activity{
			Username: username,
			Type:     activityType,
			Datetime: recordedAt,
		})
		if err != nil {
			r.log.Error("failed to record activity", "username", username, "type", activityType, "err", err.Error())
		}
	})
}

func (r *Recorder) List(ctx context.Context, usernamePrefix string) ([]models.Activity, error) {
	const op = "activity.Recorder.List"
	activities, err := r.storage.List(ctx, usernamePrefix)
	if err != nil {
		r.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return activities, nil
}
