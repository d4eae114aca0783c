// Package read реализует HTTP-обработчик чтения туристического профиля пользователя.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/response"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/lib/sl"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage"
)

// Handler управляет HTTP-запросами на чтение профиля.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики чтения профиля
}

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить профиль пользователя
// @Description Возвращает туристический профиль, вложенный в пользователя.
// @Tags Profiles
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.Profile "Профиль пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь или профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid user id"))
		return
	}

	profile, err := h.service.ReadProfile(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			log.Error("user not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "user not found"))
		case errors.Is(err, storage.ErrProfileNotFound):
			log.Error("profile not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "profile not found"))
		default:
			log.Error("failed to read profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindInternal, "could not read profile"))
		}
		return
	}

	log.Info("success to read profile", slog.String("user_id", id.String()))
	render.JSON(w, r, profile)
}
