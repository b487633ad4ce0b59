package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsanmz/recipe-box/internal/model"
)

func TestRecipeCreateSetsEqualTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO recipes (user_id, title, time_needed, cost, description, link, created_at, last_modified) VALUES (?,?,?,?,?,?,?,?)")).
		WithArgs(uint64(5), "Pancakes", 20, 3.5, "flip carefully", "http://example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	repo := NewRecipeRepo(db)
	rec := &model.Recipe{
		UserID:      5,
		Title:       "Pancakes",
		TimeNeeded:  20,
		Cost:        3.5,
		Description: "flip carefully",
		Link:        "http://example.com",
	}
	require.NoError(t, repo.Create(context.Background(), rec))

	assert.Equal(t, uint64(11), rec.ID)
	assert.True(t, rec.CreatedAt.Equal(rec.LastModified), "created_at and last_modified must be equal at creation")
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, 2*time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeUpdateAdvancesLastModifiedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The SET clause carries no owner column, so a stored owner reference
	// cannot change through an update.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE recipes SET title=?, time_needed=?, cost=?, description=?, link=?, last_modified=? WHERE id=?")).
		WithArgs("New title", 45, 9.99, "", "", sqlmock.AnyArg(), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created := time.Now().UTC().Add(-time.Hour)
	rec := &model.Recipe{
		ID:           11,
		UserID:       5,
		Title:        "New title",
		TimeNeeded:   45,
		Cost:         9.99,
		CreatedAt:    created,
		LastModified: created,
	}
	repo := NewRecipeRepo(db)
	require.NoError(t, repo.Update(context.Background(), rec))

	assert.WithinDuration(t, time.Now().UTC(), rec.LastModified, 2*time.Second)
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, uint64(5), rec.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipes WHERE id=?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRecipeRepo(db)
	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeListAllOrdersByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "time_needed", "cost", "description", "link", "created_at", "last_modified",
	}).
		AddRow(1, 5, "First", 10, 1.50, "", "", now, now).
		AddRow(2, 6, "Second", 15, 2.25, "", "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id,user_id,title,time_needed,cost,description,link,created_at,last_modified FROM recipes ORDER BY id")).
		WillReturnRows(rows)

	repo := NewRecipeRepo(db)
	items, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].ID)
	assert.Equal(t, uint64(2), items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
