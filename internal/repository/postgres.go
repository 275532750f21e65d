package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/zombies/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the repositories on a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	q    queryLogger
}

// NewPostgresStore wraps an open pool whose schema is migrated.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var (
	_ PeopleRepository = (*PostgresStore)(nil)
	_ ZombieRepository = (*PostgresStore)(nil)
)

// ListPeople runs the person/zombie outer join.
func (s *PostgresStore) ListPeople(ctx context.Context) ([]model.PersonRow, error) {
	defer s.q.observe(ctx, "list_people", time.Now())

	rows, err := s.pool.Query(ctx, listPeopleSQL)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}

	people, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PersonRow, error) {
		var (
			r          model.PersonRow
			zombieID   *int64
			zombieName *string
		)

		err := row.Scan(&r.Person.ID, &r.Person.Name, &r.Person.Alive, &r.Person.EatenBy, &zombieID, &zombieName)
		if err != nil {
			return r, err
		}

		if zombieID != nil {
			r.Zombie = &model.Zombie{ID: *zombieID}
			if zombieName != nil {
				r.Zombie.Name = *zombieName
			}
		}
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting people: %w", err)
	}

	if people == nil {
		people = []model.PersonRow{}
	}
	return people, nil
}

// CreatePerson inserts a living person and reads back its id.
func (s *PostgresStore) CreatePerson(ctx context.Context, name string) (model.Person, error) {
	defer s.q.observe(ctx, "create_person", time.Now())

	person := model.NewPerson(name)

	err := s.pool.QueryRow(ctx,
		"INSERT INTO person (name, alive, eatenBy) VALUES ($1, TRUE, NULL) RETURNING id",
		name,
	).Scan(&person.ID)
	if err != nil {
		return model.Person{}, fmt.Errorf("inserting person: %w", err)
	}

	return person, nil
}

// MarkEaten updates alive and eatenBy in a single statement.
func (s *PostgresStore) MarkEaten(ctx context.Context, personID, zombieID int64) (int64, error) {
	defer s.q.observe(ctx, "mark_eaten", time.Now())

	tag, err := s.pool.Exec(ctx,
		"UPDATE person SET alive = FALSE, eatenBy = $1 WHERE id = $2",
		zombieID, personID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating person %d: %w", personID, err)
	}

	return tag.RowsAffected(), nil
}

// DeletePerson removes one person by id.
func (s *PostgresStore) DeletePerson(ctx context.Context, id int64) (int64, error) {
	defer s.q.observe(ctx, "delete_person", time.Now())

	tag, err := s.pool.Exec(ctx, "DELETE FROM person WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("deleting person %d: %w", id, err)
	}

	return tag.RowsAffected(), nil
}

// ListZombies returns every zombie ordered by id.
func (s *PostgresStore) ListZombies(ctx context.Context) ([]model.Zombie, error) {
	defer s.q.observe(ctx, "list_zombies", time.Now())

	rows, err := s.pool.Query(ctx, listZombiesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying zombies: %w", err)
	}

	zombies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Zombie, error) {
		var z model.Zombie
		err := row.Scan(&z.ID, &z.Name)
		return z, err
	})
	if err != nil {
		return nil, fmt.Errorf("collecting zombies: %w", err)
	}

	if zombies == nil {
		zombies = []model.Zombie{}
	}
	return zombies, nil
}
