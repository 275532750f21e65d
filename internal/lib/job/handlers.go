package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/deppfellow/zombies/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// obituarySender is the slice of email.Client the obituary handler uses.
type obituarySender interface {
	SendObituaryEmail(to []string, personID, zombieID int64) error
}

// InitHandlers builds the dependencies the task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emailClient = email.NewClient(cfg, logger)
	j.recipients = cfg.Integration.ObituaryRecipients
}

func (j *JobService) handleObituaryTask(ctx context.Context, t *asynq.Task) error {
	if j.emailClient == nil {
		return errors.New("job handlers not initialized")
	}
	return handleObituary(j.logger, j.emailClient, j.recipients, t)
}

// handleObituary decodes the payload and sends the email. A returned
// error makes Asynq retry the task.
func handleObituary(logger *zerolog.Logger, sender obituarySender, recipients []string, t *asynq.Task) error {
	var p ObituaryPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal obituary payload: %w: %w", err, asynq.SkipRetry)
	}

	logger.Info().
		Str("type", "obituary").
		Int64("person_id", p.PersonID).
		Int64("zombie_id", p.ZombieID).
		Msg("Processing obituary task")

	if err := sender.SendObituaryEmail(recipients, p.PersonID, p.ZombieID); err != nil {
		logger.Error().
			Str("type", "obituary").
			Int64("person_id", p.PersonID).
			Err(err).
			Msg("Failed to send obituary email")
		return err
	}

	logger.Info().
		Str("type", "obituary").
		Int64("person_id", p.PersonID).
		Msg("Successfully sent obituary email")

	return nil
}
