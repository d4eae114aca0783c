// Package userservice предоставляет маршруты для основного приложения.
package userservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/health"
	profileput "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/profile/put"
	profileread "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/profile/read"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/create"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/list"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/read"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/remove"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/replace"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/handlers/user/update"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/middlewarectx"
	services "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *services.UserService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/users", create.New(logger, userService).ServeHTTP)
		r.Get("/users", list.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}", read.New(logger, userService).ServeHTTP)
		r.Put("/users/{id}", replace.New(logger, userService).ServeHTTP)
		r.Patch("/users/{id}", update.New(logger, userService).ServeHTTP)
		r.Delete("/users/{id}", remove.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}/profile", profileread.New(logger, userService).ServeHTTP)
		r.Put("/users/{id}/profile", profileput.New(logger, userService).ServeHTTP)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"message": "Welcome to the TripSpark User Service"})
	})
	r.Get("/health", health.New(logger).ServeHTTP)
	r.Get("/health/{path_echo}", health.New(logger).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
