// Package put реализует HTTP-обработчик полной замены туристического профиля.
//
// Содержимое профиля перезаписывается целиком, но идентификатор профиля,
// привязка к пользователю и created_at остаются серверными.
package put

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/response"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/lib/sl"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage"
)

// Handler управляет HTTP-запросами на замену профиля.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики замены профиля
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики замены профиля.
type Service interface {
	PutProfile(ctx context.Context, id uuid.UUID, put models.ProfilePut) (*models.Profile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Полностью заменить профиль пользователя
// @Description Перезаписывает содержимое профиля, сохраняя его идентификатор и привязку к пользователю.
// @Tags Profiles
// @Accept  json
// @Produce  json
// @Param id path string true "ID пользователя"
// @Param request body models.ProfilePut true "Новое содержимое профиля"
// @Success 200 {object} models.Profile "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.put"
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

	var req models.ProfilePut
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, err := h.service.PutProfile(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Error("user not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "user not found"))
			return
		}
		log.Error("failed to replace profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindInternal, "could not replace profile"))
		return
	}

	log.Info("success to replace profile", slog.String("user_id", id.String()))
	render.JSON(w, r, profile)
}
