// Package model holds the garden's domain types.
package model

// Person lives in the garden until a zombie eats them.
//
// Alive is false exactly when EatenBy is set.
type Person struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Alive   bool   `json:"alive"`
	EatenBy *int64 `json:"eatenBy"`
}

// Zombie is read-only here; another module owns zombie mutations.
type Zombie struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PersonRow is one row of the people listing, shaped per source table so
// person and zombie columns with the same name never collide.
// Zombie is nil when the person has not been eaten.
type PersonRow struct {
	Person Person  `json:"person"`
	Zombie *Zombie `json:"zombie"`
}

// NewPerson returns a person that just moved into the garden.
func NewPerson(name string) Person {
	return Person{Name: name, Alive: true}
}
