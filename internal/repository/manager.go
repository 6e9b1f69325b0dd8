package repository

import "recipes-be/internal/database"

// Manager vends repositories bound to a database handle or transaction.
type Manager interface {
	Users(db database.DBTX) UserRepository
	Recipes(db database.DBTX) RecipeRepository
}

type sqlManager struct{}

// NewManager returns the database/sql backed Manager.
func NewManager() Manager {
	return sqlManager{}
}

func (sqlManager) Users(db database.DBTX) UserRepository {
	return NewUserRepository(db)
}

func (sqlManager) Recipes(db database.DBTX) RecipeRepository {
	return NewRecipeRepository(db)
}
