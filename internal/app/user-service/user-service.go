package userservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/cache"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/config"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/events"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/migrations"
	services "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/services/user"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage/memory"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и внешние подключения для закрытия.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	events *events.Publisher
}

// New собирает приложение по конфигурации. Пустая строка подключения к базе
// включает in-memory хранилище, пустые адреса Redis и RabbitMQ отключают
// кеш и публикацию событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var repo services.UserRepository
	var db *repository.Storage

	if cfg.StorageConnectionString != "" {
		var err error
		db, err = repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		repo = db
		logger.Info("using postgresql storage")
	} else {
		repo = memory.New()
		logger.Info("using in-memory storage")
	}

	var cacheClient services.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		cacheClient = cacheRedis
		logger.Info("connected to redis", slog.String("addr", cfg.AddressRedis))
	}

	var publisher *events.Publisher
	var eventSink services.EventPublisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = events.New(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return nil, err
		}
		eventSink = publisher
		logger.Info("connected to rabbitmq", slog.String("exchange", cfg.RabbitExchange))
	}

	userService := services.NewUserService(repo, cacheClient, eventSink, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		events: publisher,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		if a.events != nil {
			a.events.Close()
		}
		return err
	}
}
