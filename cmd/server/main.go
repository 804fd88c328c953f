package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/config"
	"github.com/iliyamo/notes-api/internal/database"
	"github.com/iliyamo/notes-api/internal/handler"
	"github.com/iliyamo/notes-api/internal/middleware"
	"github.com/iliyamo/notes-api/internal/repository"
	"github.com/iliyamo/notes-api/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Rate limiting is optional: with no Redis the limiter passes through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	e := echo.New()
	router.Register(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewNotesHandler(notes),
		cfg.JWTSecret,
		limiter,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
