package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskObituary is the task type stored in Redis.
const TaskObituary = "email:obituary"

// ObituaryPayload is the JSON body of an obituary task.
type ObituaryPayload struct {
	PersonID int64 `json:"person_id"`
	ZombieID int64 `json:"zombie_id"`
}

// NewObituaryTask builds a task announcing that personID was eaten.
func NewObituaryTask(personID, zombieID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ObituaryPayload{
		PersonID: personID,
		ZombieID: zombieID,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskObituary,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueObituary queues an obituary email.
func (j *JobService) EnqueueObituary(ctx context.Context, personID, zombieID int64) error {
	task, err := NewObituaryTask(personID, zombieID)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("person_id", personID).
		Msg("obituary enqueued")

	return nil
}
