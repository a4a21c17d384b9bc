package config

import (
	"os"
	"time"

	"recipeshare/internal/api/handlers"
	"recipeshare/internal/api/routes"
	"recipeshare/internal/middleware"
	"recipeshare/internal/utils"
	"recipeshare/internal/utils/storage"
	"recipeshare/pkg/comment"
	"recipeshare/pkg/jwt"
	"recipeshare/pkg/recipe"
	"recipeshare/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	commentRepository := comment.NewCommentRepository(db)

	middlewares := middleware.NewMiddleware(userRepository)

	// Service
	jwtService := jwt.NewJWTService()
	googleVerifier := user.NewGoogleVerifier()
	userService := user.NewUserService(userRepository, jwtService, googleVerifier)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	commentService := comment.NewCommentService(commentRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	commentHandler := handlers.NewCommentHandler(commentService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		CommentHandler: commentHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
