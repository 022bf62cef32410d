package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/linstore/linstore-api/internal/config"
	"github.com/linstore/linstore-api/internal/database"
	"github.com/linstore/linstore-api/internal/handler"
	"github.com/linstore/linstore-api/internal/middleware"
	"github.com/linstore/linstore-api/internal/notification"
	"github.com/linstore/linstore-api/internal/queue"
	"github.com/linstore/linstore-api/internal/repository"
	"github.com/linstore/linstore-api/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the auth rate limiter and the catalog response cache.
	// A nil client disables both instead of failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The mail worker consumes password-reset events off RabbitMQ in the
	// background; with no SMTP config it logs recovery links instead.
	mailer := notification.NewMailer(notification.MailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	})
	go func() {
		if err := queue.StartResetMailConsumer(mailer); err != nil {
			log.Printf("reset mail consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	baskets := repository.NewBasketRepo(db)
	products := repository.NewProductRepo(db)
	catalog := repository.NewCatalogRepo(db)
	saveLists := repository.NewSaveListRepo(db)
	oldViews := repository.NewOldViewsRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterUsers(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewProfileHandler(users),
		handler.NewRecoveryHandler(cfg, users),
		cfg.JWTSecret, limiter)
	router.RegisterStore(e,
		handler.NewBasketHandler(baskets, products),
		handler.NewSaveListHandler(saveLists, products),
		handler.NewOldViewsHandler(oldViews, products),
		cfg.JWTSecret)
	router.RegisterCatalog(e,
		handler.NewCatalogHandler(catalog, products),
		cfg.JWTSecret, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
