package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/entities"
)

const (
	insertRecipeSQL = `(?s)^\s*INSERT\s+INTO\s+recipes\s*\(id,\s*title,\s*instructions,\s*minutes_to_complete,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	listByUserSQL   = `(?s)^\s*SELECT\s+id,\s*title,\s*instructions,\s*minutes_to_complete,\s*user_id\s+FROM\s+recipes\s+WHERE\s+user_id\s*=\s*\$1\s*$`
)

var recipeColumns = []string{"id", "title", "instructions", "minutes_to_complete", "user_id"}

func TestRecipeRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	instructions := strings.Repeat("stir ", 10)
	minutes := 30
	mock.ExpectExec(insertRecipeSQL).
		WithArgs(sqlmock.AnyArg(), "Soup", instructions, int64(30), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	recipe := &entities.Recipe{Title: "Soup", Instructions: instructions, MinutesToComplete: &minutes, UserID: "u-1"}
	require.NoError(t, repo.Create(context.Background(), recipe))
	assert.NotEmpty(t, recipe.ID)
}

func TestRecipeRepository_Create_IntegrityViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(insertRecipeSQL).WillReturnError(&pq.Error{Code: "23514"})

	recipe := &entities.Recipe{Title: "Soup", Instructions: "short", UserID: "u-1"}
	err := repo.Create(context.Background(), recipe)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "invalid recipe data")
	assert.Empty(t, recipe.ID)
}

func TestRecipeRepository_Create_RejectedValue(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(insertRecipeSQL).WillReturnError(&pq.Error{Code: "22021"})

	err := repo.Create(context.Background(), &entities.Recipe{Title: "So\x00up", UserID: "u-1"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "invalid recipe data", apperrors.Message(err))
}

func TestRecipeRepository_Create_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectExec(insertRecipeSQL).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &entities.Recipe{Title: "Soup", UserID: "u-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
}

func TestRecipeRepository_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(listByUserSQL).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow("r-1", "Soup", "long instructions", int64(20), "u-1").
			AddRow("r-2", "Salad", "more instructions", nil, "u-1"))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r-1", got[0].ID)
	require.NotNil(t, got[0].MinutesToComplete)
	assert.Equal(t, 20, *got[0].MinutesToComplete)
	assert.Equal(t, "Salad", got[1].Title)
	assert.Nil(t, got[1].MinutesToComplete)
}

func TestRecipeRepository_ListByUser_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(listByUserSQL).WithArgs("u-2").WillReturnRows(sqlmock.NewRows(recipeColumns))

	got, err := repo.ListByUser(context.Background(), "u-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecipeRepository_ListByUser_Errors(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(listByUserSQL).WithArgs("u-1").WillReturnError(errors.New("db down"))
	mock.ExpectQuery(listByUserSQL).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(recipeColumns).
			AddRow("r-1", "Soup", "x", nil, "u-1").
			RowError(0, errors.New("row broke")))

	_, err := repo.ListByUser(context.Background(), "u-1")
	assert.Error(t, err)

	_, err = repo.ListByUser(context.Background(), "u-1")
	assert.Error(t, err)
}
