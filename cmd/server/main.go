package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pawhaven/shelter-api/internal/config"
	"github.com/pawhaven/shelter-api/internal/database"
	"github.com/pawhaven/shelter-api/internal/handler"
	"github.com/pawhaven/shelter-api/internal/middleware"
	"github.com/pawhaven/shelter-api/internal/queue"
	"github.com/pawhaven/shelter-api/internal/repository"
	"github.com/pawhaven/shelter-api/internal/router"
	queue_publisher "github.com/pawhaven/shelter-api/internal/service"
)

func main() {
	// .env is optional; a containerized deployment sets the environment
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	petRepo := repository.NewPetRepo(db)
	adoptionRepo := repository.NewAdoptionRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	petHandler := handler.NewPetHandler(petRepo)
	adoptionHandler := handler.NewAdoptionHandler(adoptionRepo, petRepo)
	// Event publishing is fire-and-forget: enrich with the pet's name for
	// the log line, then hand off to the broker without blocking the
	// request that triggered it.
	adoptionHandler.Notify = func(_ context.Context, ev queue.AdoptionSubmittedEvent) {
		go func() {
			ctx := context.Background()
			if pet, err := petRepo.GetByID(ctx, ev.PetID); err == nil {
				ev.PetName = pet.Name
			}
			_ = queue_publisher.PublishAdoptionSubmitted(ctx, ev)
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowCredentials: true,
	}))
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("10K"))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPets(e, petHandler, cfg.JWTSecret, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterAdoptions(e, adoptionHandler, cfg.JWTSecret)

	go func() {
		if err := queue.StartAdoptionConsumer(); err != nil {
			log.Printf("adoption consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
