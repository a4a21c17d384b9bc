package routes

import (
	"recipeshare/internal/api/handlers"
	"recipeshare/internal/middleware"
	"recipeshare/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CommentHandler handlers.CommentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.User()
	c.Recipes()
	c.Comments()
	c.GuestRoute()
}

func (c *Config) Auth() {
	v1 := c.App.Group("/v1")
	{
		v1.Post("/register", c.UserHandler.Register)
		v1.Post("/login", c.UserHandler.Login)
		v1.Post("/auth/google", c.UserHandler.GoogleLogin)
		v1.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		v1.Post("/auth/google/link", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.LinkGoogleAccount)
	}
}

func (c *Config) User() {
	user := c.App.Group("/v1/user", c.Middleware.AuthMiddleware(c.JWTService))
	{
		user.Get("/profile", c.UserHandler.GetProfile)
		user.Put("/profile", c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Recipes() {
	v1 := c.App.Group("/v1")

	// Static paths are registered before /recipes/:id so the router does not
	// swallow them as IDs.
	v1.Get("/recipes/my", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetMyRecipes)
	v1.Get("/recipes/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetFavoriteRecipes)

	v1.Get("/recipes", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
	v1.Get("/recipes/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)

	v1.Post("/recipes", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
	v1.Put("/recipes/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
	v1.Delete("/recipes/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)

	v1.Post("/recipes/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.ToggleFavorite)
	v1.Post("/recipes/:id/image", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UploadRecipeImage)
	v1.Post("/upload", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UploadTemporaryImage)

	v1.Get("/recipe-tags", c.RecipeHandler.GetTags)
}

func (c *Config) Comments() {
	v1 := c.App.Group("/v1")

	v1.Get("/recipes/:id/comments", c.CommentHandler.GetComments)
	v1.Post("/recipes/:id/comments", c.Middleware.AuthMiddleware(c.JWTService), c.CommentHandler.AddComment)
	v1.Put("/comments/:id", c.Middleware.AuthMiddleware(c.JWTService), c.CommentHandler.UpdateComment)
	v1.Delete("/comments/:id", c.Middleware.AuthMiddleware(c.JWTService), c.CommentHandler.DeleteComment)
	v1.Get("/my-comments", c.Middleware.AuthMiddleware(c.JWTService), c.CommentHandler.GetMyComments)
}

func (c *Config) GuestRoute() {
	c.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
