package service

import (
	"context"
	"time"

	"github.com/deppfellow/zombies/internal/errs"
	"github.com/deppfellow/zombies/internal/metrics"
	"github.com/deppfellow/zombies/internal/model"
	"github.com/deppfellow/zombies/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Operation names used in logs and metrics.
const (
	OpCreate = "create"
	OpEaten  = "eaten"
	OpDelete = "delete"
)

// Notifier announces eaten people.
type Notifier interface {
	EnqueueObituary(ctx context.Context, personID, zombieID int64) error
}

// PeopleService runs the people operations.
type PeopleService struct {
	people   repository.PeopleRepository
	zombies  repository.ZombieRepository
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zerolog.Logger
}

// NewPeopleService builds the service. m may be nil.
func NewPeopleService(people repository.PeopleRepository, zombies repository.ZombieRepository, m *metrics.Metrics, log *zerolog.Logger) *PeopleService {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &PeopleService{
		people:  people,
		zombies: zombies,
		metrics: m,
		log:     log,
	}
}

// WithNotifier enables obituaries.
func (s *PeopleService) WithNotifier(n Notifier) *PeopleService {
	s.notifier = n
	return s
}

// logger prefers the request-scoped logger carried by ctx.
func (s *PeopleService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.log
}

// ListPeople returns every person with the zombie that ate them. The
// slice is never nil.
func (s *PeopleService) ListPeople(ctx context.Context) ([]model.PersonRow, error) {
	start := time.Now()
	rows, err := s.people.ListPeople(ctx)
	s.metrics.ListDuration("people", time.Since(start))

	if err != nil {
		return nil, errs.Database("Could not retrieve people", err)
	}
	if rows == nil {
		rows = []model.PersonRow{}
	}
	return rows, nil
}

// ListZombies returns every zombie. The slice is never nil.
func (s *PeopleService) ListZombies(ctx context.Context) ([]model.Zombie, error) {
	start := time.Now()
	zombies, err := s.zombies.ListZombies(ctx)
	s.metrics.ListDuration("zombies", time.Since(start))

	if err != nil {
		return nil, errs.Database("Could not retrieve zombies", err)
	}
	if zombies == nil {
		zombies = []model.Zombie{}
	}
	return zombies, nil
}

// CreatePerson moves a living person into the garden.
func (s *PeopleService) CreatePerson(ctx context.Context, name string) (model.Person, error) {
	person, err := s.people.CreatePerson(ctx, name)
	if err != nil {
		s.metrics.Mutation(OpCreate, metrics.OutcomeError)
		return model.Person{}, errors.Wrap(err, "creating person")
	}

	s.metrics.Mutation(OpCreate, metrics.OutcomeSuccess)
	s.logger(ctx).Info().
		Int64("person_id", person.ID).
		Str("name", person.Name).
		Msg("person created")

	return person, nil
}

// MarkEaten records that zombieID ate personID. It reports false when no
// person has that id; nothing is changed then.
func (s *PeopleService) MarkEaten(ctx context.Context, personID, zombieID int64) (bool, error) {
	affected, err := s.people.MarkEaten(ctx, personID, zombieID)
	if err != nil {
		s.metrics.Mutation(OpEaten, metrics.OutcomeError)
		return false, errors.Wrapf(err, "marking person %d eaten", personID)
	}

	if affected == 0 {
		s.metrics.Mutation(OpEaten, metrics.OutcomeNotFound)
		s.logger(ctx).Warn().
			Int64("person_id", personID).
			Int64("zombie_id", zombieID).
			Msg("no person to be eaten")
		return false, nil
	}

	s.metrics.Mutation(OpEaten, metrics.OutcomeSuccess)
	s.logger(ctx).Info().
		Int64("person_id", personID).
		Int64("zombie_id", zombieID).
		Msg("person eaten")

	if s.notifier != nil {
		if err := s.notifier.EnqueueObituary(ctx, personID, zombieID); err != nil {
			s.logger(ctx).Error().Err(err).
				Int64("person_id", personID).
				Msg("failed to enqueue obituary")
		}
	}

	return true, nil
}

// DeletePerson removes the person. A missing id is not an error.
func (s *PeopleService) DeletePerson(ctx context.Context, id int64) error {
	affected, err := s.people.DeletePerson(ctx, id)
	if err != nil {
		s.metrics.Mutation(OpDelete, metrics.OutcomeError)
		return errors.Wrapf(err, "deleting person %d", id)
	}

	if affected == 0 {
		s.metrics.Mutation(OpDelete, metrics.OutcomeNotFound)
		s.logger(ctx).Warn().Int64("person_id", id).Msg("delete matched no person")
		return nil
	}

	s.metrics.Mutation(OpDelete, metrics.OutcomeSuccess)
	s.logger(ctx).Info().Int64("person_id", id).Msg("person deleted")
	return nil
}

// Rejected counts a request turned away before reaching the database.
func (s *PeopleService) Rejected(operation string) {
	s.metrics.Mutation(operation, metrics.OutcomeInvalid)
}
