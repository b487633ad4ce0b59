package model

import "time"

// Recipe represents a recipe entity persisted in the `recipes` table. Each
// recipe belongs to a single owning user; the owner reference is fixed at
// creation time and never changed by an update. CreatedAt and LastModified
// are equal when the row is first written, and LastModified advances only
// on a successful mutating update.
type Recipe struct {
	ID           uint64    // recipes.id
	UserID       uint64    // recipes.user_id (owner, immutable)
	Title        string    // recipes.title
	TimeNeeded   int       // recipes.time_needed, minutes
	Cost         float64   // recipes.cost, DECIMAL(5,2) in the DB
	Description  string    // recipes.description (optional free text)
	Link         string    // recipes.link (optional external reference)
	CreatedAt    time.Time // recipes.created_at
	LastModified time.Time // recipes.last_modified
}
