package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"meetroom/internal/config"
	"meetroom/internal/db"
	"meetroom/internal/http/handler"
	"meetroom/internal/repo"
	"meetroom/internal/service"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()

	// --- Storage: Postgres, or in-memory when disabled/unreachable ---
	var (
		roomRepo    repo.RoomRepo
		bookingRepo repo.BookingRepo
	)
	if cfg.DBEnabled {
		d, err := db.Open(&cfg.Database)
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		defer d.Close()
		if err := db.EnsureSchema(ctx, d); err != nil {
			logger.Fatal("ensure schema", zap.Error(err))
		}
		roomRepo = repo.NewRoomRepoPostgres(d)
		bookingRepo = repo.NewBookingRepoPostgres(d)
	} else {
		logger.Info("DB disabled, using in-memory store")
		mem := repo.NewMemoryRoomRepo()
		roomRepo = mem
		bookingRepo = repo.NewMemoryBookingRepo(mem)
	}

	// --- Sessions: Redis, or in-memory for single-process dev ---
	var sessRepo repo.SessionRepo
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis ping", zap.Error(err))
		}
		defer rdb.Close()
		sessRepo = repo.NewSessionRepoRedis(rdb)
	} else {
		logger.Info("Redis disabled, using in-memory sessions")
		sessRepo = repo.NewMemorySessionRepo()
	}

	// --- Services ---
	authSvc, err := service.NewAuthService(sessRepo, cfg.DevLogin.Email, cfg.DevLogin.Password)
	if err != nil {
		logger.Fatal("init auth service", zap.Error(err))
	}
	roomSvc := service.NewRoomService(roomRepo, logger)
	bookingSvc := service.NewBookingService(bookingRepo)

	if err := roomSvc.Seed(ctx); err != nil {
		logger.Fatal("seed rooms", zap.Error(err))
	}

	// --- HTTP ---
	router := handler.NewRouter(authSvc, roomSvc, bookingSvc, logger)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		logger.Error("server", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
