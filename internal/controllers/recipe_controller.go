package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipes-be/internal/logging"
	"recipes-be/internal/middleware"
	"recipes-be/internal/models"
	"recipes-be/internal/service"
)

// RecipeController serves the caller's own recipes. Routes sit behind
// middleware.RequireSession.
type RecipeController struct {
	recipeService service.RecipeService
	log           logging.Logger
}

func NewRecipeController(recipeService service.RecipeService, log logging.Logger) *RecipeController {
	return &RecipeController{recipeService: recipeService, log: log}
}

// List handles GET /recipes
func (rc *RecipeController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipes, err := rc.recipeService.ListOwn(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusOK, models.NewRecipeListResponse(recipes))
}

// Create handles POST /recipes
func (rc *RecipeController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	recipe, err := rc.recipeService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewRecipeResponse(recipe))
}
