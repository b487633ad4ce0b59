// This file defines repository methods for recipe CRUD and lookup
// operations. A Recipe belongs to a single owning user; ownership checks
// live in the handler layer, which always loads the record before
// deciding whether the caller may mutate it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ehsanmz/recipe-box/internal/model"
)

// RecipeRepo encapsulates all database queries related to recipes.
type RecipeRepo struct{ DB *sql.DB }

func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{DB: db} }

const recipeColumns = "id,user_id,title,time_needed,cost,description,link,created_at,last_modified"

// Create inserts a new recipe. The creation and last-modified timestamps
// are assigned here, equal to each other, so a freshly created row never
// looks modified. On success the recipe's ID field is populated.
func (r *RecipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	now := time.Now().UTC().Truncate(time.Second)
	rec.CreatedAt = now
	rec.LastModified = now
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO recipes (user_id, title, time_needed, cost, description, link, created_at, last_modified) VALUES (?,?,?,?,?,?,?,?)",
		rec.UserID, rec.Title, rec.TimeNeeded, rec.Cost, rec.Description, rec.Link, rec.CreatedAt, rec.LastModified)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// GetByID fetches a recipe by its ID regardless of owner. It returns
// ErrRecipeNotFound if no row is found.
func (r *RecipeRepo) GetByID(ctx context.Context, id uint64) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE id=? LIMIT 1",
		id).Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeNeeded, &rec.Cost,
		&rec.Description, &rec.Link, &rec.CreatedAt, &rec.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll returns every recipe ordered by id ascending. Recipes are
// publicly readable, so no owner filter is applied here.
func (r *RecipeRepo) ListAll(ctx context.Context) ([]*model.Recipe, error) {
	return r.list(ctx,
		"SELECT "+recipeColumns+" FROM recipes ORDER BY id")
}

// ListByOwner returns all recipes of a specific owner ordered by id.
func (r *RecipeRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Recipe, error) {
	return r.list(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE user_id=? ORDER BY id",
		ownerID)
}

func (r *RecipeRepo) list(ctx context.Context, query string, args ...any) ([]*model.Recipe, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Recipe
	for rows.Next() {
		rec := new(model.Recipe)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeNeeded, &rec.Cost,
			&rec.Description, &rec.Link, &rec.CreatedAt, &rec.LastModified); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable columns of a recipe and advances its
// last-modified timestamp. The owner column is never part of the SET
// clause, so a stored owner reference cannot change after creation.
func (r *RecipeRepo) Update(ctx context.Context, rec *model.Recipe) error {
	rec.LastModified = time.Now().UTC().Truncate(time.Second)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE recipes SET title=?, time_needed=?, cost=?, description=?, link=?, last_modified=? WHERE id=?",
		rec.Title, rec.TimeNeeded, rec.Cost, rec.Description, rec.Link, rec.LastModified, rec.ID)
	return err
}

// Delete removes a recipe by id. It returns ErrRecipeNotFound when no row
// was deleted.
func (r *RecipeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM recipes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
