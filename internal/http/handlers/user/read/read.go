// Package read реализует HTTP-обработчик чтения пользователя по идентификатору.
//
// Обработчик поддерживает условные запросы: для каждого ответа вычисляется
// контентный отпечаток и выставляется заголовок ETag, а совпадение с
// If-None-Match приводит к ответу 304 без тела.
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

// Handler управляет HTTP-запросами на чтение пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики чтения пользователя
}

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	Read(ctx context.Context, id uuid.UUID) (*models.User, error)
	Fingerprint(user *models.User) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя по ID
// @Description Возвращает пользователя вместе с вложенным профилем. Поддерживает If-None-Match.
// @Tags Users
// @Produce  json
// @Param id path string true "ID пользователя"
// @Param If-None-Match header string false "Отпечаток для условного чтения"
// @Success 200 {object} models.User "Пользователь"
// @Success 304 "Содержимое не изменилось"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
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

	user, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Error("user not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "user not found"))
			return
		}
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindInternal, "could not read user"))
		return
	}

	etag, err := h.service.Fingerprint(user)
	if err != nil {
		log.Error("failed to compute fingerprint", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindInternal, "could not read user"))
		return
	}

	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		log.Info("fingerprint matched, content not modified", slog.String("id", id.String()))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	log.Info("success to read user", slog.String("id", id.String()))
	render.JSON(w, r, user)
}
