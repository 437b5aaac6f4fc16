package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/amirulz/cinema-live/internal/config"
	"github.com/amirulz/cinema-live/internal/database"
	"github.com/amirulz/cinema-live/internal/handler"
	"github.com/amirulz/cinema-live/internal/middleware"
	"github.com/amirulz/cinema-live/internal/poller"
	"github.com/amirulz/cinema-live/internal/queue"
	"github.com/amirulz/cinema-live/internal/repository"
	"github.com/amirulz/cinema-live/internal/router"
	"github.com/amirulz/cinema-live/internal/service"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MySQL only holds accounts and refresh tokens; all live state goes
	// through the shared document store.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	database.SeedDemoAccounts(ctx, db, cfg.BcryptCost, log)

	// Redis backs the shared document store and the login limiter. When
	// it is unreachable the demo still works single-process: documents
	// live in memory and the limiter passes everything through.
	rdb := config.NewRedisClient()
	var docs repository.DocStore
	if rdb != nil {
		docs = repository.NewRedisDocStore(rdb, "cinema:")
		log.Info("document store: redis")
	} else {
		docs = repository.NewMemoryDocStore()
		log.Warn("document store: redis unavailable, using in-memory store")
	}

	orders := repository.NewOrderRepo(docs)
	bookings := repository.NewBookingRepo(docs)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	notifier := service.NewAMQPNotifier(log)
	go queue.StartOrderEventsConsumer(ctx, log)

	// The shared dashboard poller feeds the staff list, counts and
	// advance endpoints for the whole process lifetime.
	dashboard := poller.NewStaffPoller(orders, cfg.StaffPoll, notifier, log)
	go dashboard.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())

	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	orderH := handler.NewOrderHandler(orders, notifier, log, cfg.CustomerPoll)
	staffH := handler.NewStaffHandler(dashboard, orders, notifier, log, cfg.StaffPoll)
	bookingH := handler.NewBookingHandler(bookings)
	countdownH := handler.NewCountdownHandler(bookings)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, loginLimiter)
	router.RegisterCustomer(e, cfg.JWTSecret, orderH, bookingH, countdownH)
	router.RegisterStaff(e, cfg.JWTSecret, notifier, staffH)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger picks the log encoding by environment: human-readable in
// dev, JSON everywhere else.
func newLogger(env string) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if env == "dev" || env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
