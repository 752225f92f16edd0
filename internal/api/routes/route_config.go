package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	CatalogHandler handlers.CatalogHandler
	RecipeHandler  handlers.RecipeHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	api := c.App.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", c.UserHandler.Register)
	authGroup.Post("/login", c.UserHandler.Login)
	authGroup.Post("/forgot-password", c.UserHandler.ForgotPassword)
	authGroup.Post("/reset-password", c.UserHandler.ResetPassword)

	// Static segments are registered before /:id so they are not captured
	// as ids.
	users := api.Group("/users")
	users.Get("/", optionalAuth, c.UserHandler.GetUsers)
	users.Get("/me", auth, c.UserHandler.Me)
	users.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
	users.Post("/set-password", auth, c.UserHandler.SetPassword)
	users.Get("/:id", optionalAuth, c.UserHandler.GetUserDetail)
	users.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
	users.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)

	tags := api.Group("/tags")
	tags.Get("/", c.CatalogHandler.GetTags)
	tags.Post("/", auth, c.CatalogHandler.CreateTag)
	tags.Get("/:id", c.CatalogHandler.GetTagDetail)

	ingredients := api.Group("/ingredients")
	ingredients.Get("/", c.CatalogHandler.GetIngredients)
	ingredients.Post("/", auth, c.CatalogHandler.CreateIngredient)
	ingredients.Get("/:id", c.CatalogHandler.GetIngredientDetail)

	recipes := api.Group("/recipes")
	recipes.Get("/", optionalAuth, c.RecipeHandler.GetRecipes)
	recipes.Post("/", auth, c.RecipeHandler.CreateRecipe)
	recipes.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)
	recipes.Get("/:id", optionalAuth, c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/favorite", auth, c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", auth, c.RecipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToCart)
	recipes.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromCart)
}
