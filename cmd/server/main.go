package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/booking"
	"github.com/Camilo-marin10/restaurante/internal/config"
	"github.com/Camilo-marin10/restaurante/internal/database"
	"github.com/Camilo-marin10/restaurante/internal/handler"
	"github.com/Camilo-marin10/restaurante/internal/middleware"
	"github.com/Camilo-marin10/restaurante/internal/queue"
	"github.com/Camilo-marin10/restaurante/internal/repository"
	"github.com/Camilo-marin10/restaurante/internal/router"
	"github.com/Camilo-marin10/restaurante/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repositories and the booking core.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	tables := repository.NewTableRepo(db)
	hours := repository.NewHoursRepo(db)
	reservations := repository.NewReservationRepo(db)
	store := repository.NewSQLStore(db)

	// Seed the weekly schedule so the hours resolver always has its
	// seven rows to work with.
	if err := hours.EnsureDefaults(ctx); err != nil {
		log.Fatalf("seed business hours: %v", err)
	}

	clock := booking.SystemClock{}
	admission := booking.NewAdmissionService(store, clock)
	sweeper := booking.NewSweeper(store, clock)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	staffH := handler.NewStaffHandler(tables, hours, reservations, users, admission, sweeper, clock, cfg.BcryptCost)
	customerH := handler.NewCustomerHandler(reservations, admission)
	availabilityH := handler.NewAvailabilityHandler(store)

	// Redis is optional; with no client both middlewares are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, availabilityH, config.LoadCacheConfig(), rdb)
	router.RegisterStaff(e, staffH, cfg.JWTSecret)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)

	// Background workers: the per-minute lifecycle sweep and the
	// confirmation consumer feeding the log and customer emails.
	if cfg.SweepEnabled {
		cr := booking.StartSweepScheduler(sweeper)
		defer cr.Stop()
	}
	mailer := utils.NewMailerFromEnv()
	if mailer == nil {
		log.Println("smtp not configured; confirmation emails disabled")
	}
	go func() {
		if err := queue.StartReservationConsumer(mailer); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
