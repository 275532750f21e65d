// Package repository handles the data access layer.
//
// Each method issues exactly one parameterized statement. Postgres is
// served by the pgx implementation; MySQL and SQLite share the
// database/sql implementation since both take "?" placeholders.
package repository

import (
	"context"

	"github.com/deppfellow/zombies/internal/model"
)

// PeopleRepository reads and mutates the person table.
type PeopleRepository interface {
	// ListPeople returns every person joined with the zombie that ate
	// them, ordered by id.
	ListPeople(ctx context.Context) ([]model.PersonRow, error)

	// CreatePerson inserts a living person and returns it with its id.
	CreatePerson(ctx context.Context, name string) (model.Person, error)

	// MarkEaten sets alive=false and eatenBy=zombieID on the person in
	// one UPDATE and returns the number of rows affected.
	MarkEaten(ctx context.Context, personID, zombieID int64) (int64, error)

	// DeletePerson removes the person and returns the rows affected.
	DeletePerson(ctx context.Context, id int64) (int64, error)
}

// ZombieRepository reads the zombie table.
type ZombieRepository interface {
	ListZombies(ctx context.Context) ([]model.Zombie, error)
}

// Statements shared by every dialect up to placeholder syntax.
const (
	listPeopleSQL = `SELECT person.id, person.name, person.alive, person.eatenBy, zombie.id, zombie.name
FROM person LEFT OUTER JOIN zombie ON person.eatenBy = zombie.id
ORDER BY person.id`

	listZombiesSQL = `SELECT id, name FROM zombie ORDER BY id`
)
