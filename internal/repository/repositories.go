package repository

import (
	"context"
	"time"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/deppfellow/zombies/internal/server"
	"github.com/rs/zerolog"
)

// Repositories groups the stores handed to the service layer.
type Repositories struct {
	People  PeopleRepository
	Zombies ZombieRepository
}

// NewRepositories picks the implementation matching the open pool.
func NewRepositories(s *server.Server) *Repositories {
	q := queryLogger{
		log:       s.Logger,
		threshold: s.Config.Observability.Logging.SlowQueryThreshold,
	}

	if s.DB.Driver == config.DriverPostgres {
		store := &PostgresStore{pool: s.DB.Pool, q: q}
		return &Repositories{People: store, Zombies: store}
	}

	store := &SQLStore{db: s.DB.SQL, q: q}
	return &Repositories{People: store, Zombies: store}
}

// queryLogger reports statements that take longer than threshold.
// A zero threshold disables it.
type queryLogger struct {
	log       *zerolog.Logger
	threshold time.Duration
}

func (q queryLogger) observe(ctx context.Context, operation string, start time.Time) {
	elapsed := time.Since(start)
	if q.threshold == 0 || elapsed < q.threshold {
		return
	}

	// Prefer the request-scoped logger so the line carries the request id.
	log := q.log
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		log = l
	}
	if log == nil {
		return
	}

	log.Warn().
		Str("operation", operation).
		Dur("duration", elapsed).
		Dur("threshold", q.threshold).
		Msg("slow query")
}
