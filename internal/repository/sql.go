package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/deppfellow/zombies/internal/model"
)

// SQLStore implements the repositories on database/sql for MySQL and
// SQLite.
type SQLStore struct {
	db *sql.DB
	q  queryLogger
}

// NewSQLStore wraps an open *sql.DB whose schema is already in place.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

var (
	_ PeopleRepository = (*SQLStore)(nil)
	_ ZombieRepository = (*SQLStore)(nil)
)

// ListPeople runs the person/zombie outer join.
func (s *SQLStore) ListPeople(ctx context.Context) ([]model.PersonRow, error) {
	defer s.q.observe(ctx, "list_people", time.Now())

	rows, err := s.db.QueryContext(ctx, listPeopleSQL)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := []model.PersonRow{}
	for rows.Next() {
		var (
			row        model.PersonRow
			zombieID   sql.NullInt64
			zombieName sql.NullString
		)

		if err := rows.Scan(
			&row.Person.ID,
			&row.Person.Name,
			&row.Person.Alive,
			&row.Person.EatenBy,
			&zombieID,
			&zombieName,
		); err != nil {
			return nil, fmt.Errorf("scanning person row: %w", err)
		}

		if zombieID.Valid {
			row.Zombie = &model.Zombie{ID: zombieID.Int64, Name: zombieName.String}
		}
		people = append(people, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}

	return people, nil
}

// CreatePerson inserts a living person.
func (s *SQLStore) CreatePerson(ctx context.Context, name string) (model.Person, error) {
	defer s.q.observe(ctx, "create_person", time.Now())

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO person (name, alive, eatenBy) VALUES (?, TRUE, NULL)",
		name,
	)
	if err != nil {
		return model.Person{}, fmt.Errorf("inserting person: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Person{}, fmt.Errorf("reading inserted person id: %w", err)
	}

	person := model.NewPerson(name)
	person.ID = id
	return person, nil
}

// MarkEaten updates alive and eatenBy in a single statement.
func (s *SQLStore) MarkEaten(ctx context.Context, personID, zombieID int64) (int64, error) {
	defer s.q.observe(ctx, "mark_eaten", time.Now())

	result, err := s.db.ExecContext(ctx,
		"UPDATE person SET alive = FALSE, eatenBy = ? WHERE id = ?",
		zombieID, personID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating person %d: %w", personID, err)
	}

	return result.RowsAffected()
}

// DeletePerson removes one person by id.
func (s *SQLStore) DeletePerson(ctx context.Context, id int64) (int64, error) {
	defer s.q.observe(ctx, "delete_person", time.Now())

	result, err := s.db.ExecContext(ctx, "DELETE FROM person WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting person %d: %w", id, err)
	}

	return result.RowsAffected()
}

// ListZombies returns every zombie ordered by id.
func (s *SQLStore) ListZombies(ctx context.Context) ([]model.Zombie, error) {
	defer s.q.observe(ctx, "list_zombies", time.Now())

	rows, err := s.db.QueryContext(ctx, listZombiesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying zombies: %w", err)
	}
	defer rows.Close()

	zombies := []model.Zombie{}
	for rows.Next() {
		var z model.Zombie
		if err := rows.Scan(&z.ID, &z.Name); err != nil {
			return nil, fmt.Errorf("scanning zombie row: %w", err)
		}
		zombies = append(zombies, z)
	}

	return zombies, rows.Err()
}
