package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/config"
	"github.com/ehsanmz/recipe-box/internal/database"
	"github.com/ehsanmz/recipe-box/internal/handler"
	"github.com/ehsanmz/recipe-box/internal/middleware"
	"github.com/ehsanmz/recipe-box/internal/queue"
	"github.com/ehsanmz/recipe-box/internal/repository"
	"github.com/ehsanmz/recipe-box/internal/router"
	queue_publisher "github.com/ehsanmz/recipe-box/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	recipes := repository.NewRecipeRepo(db)

	userHandler := handler.NewUserHandler(cfg, users, tokens)
	recipeHandler := handler.NewRecipeHandler(recipes, queue_publisher.PublishRecipeActivity)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())

	e := echo.New()
	e.Use(middleware.RequestID())
	router.RegisterRoutes(e)
	router.RegisterUser(e, userHandler, limiter, tokens, users)
	router.RegisterRecipe(e, recipeHandler, tokens, users)

	// Activity consumer runs for the life of the process and reconnects on
	// broker failures.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
