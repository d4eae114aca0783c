// Package update реализует HTTP-обработчик частичного обновления пользователя.
//
// Тело запроса несёт только изменяемые поля; непереданные сохраняют свои
// значения, а вложенный профиль сливается пополево. Заголовок If-Match
// с несовпадающим отпечатком отклоняется со статусом 412.
package update

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

// Handler управляет HTTP-запросами на частичное обновление пользователя.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики обновления пользователя
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики обновления пользователя.
type Service interface {
	Read(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
	Fingerprint(user *models.User) (string, error)
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
// @Summary Частично обновить пользователя
// @Description Меняет только переданные поля, профиль сливается пополево. Поддерживает If-Match.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param id path string true "ID пользователя"
// @Param If-Match header string false "Ожидаемый отпечаток текущей версии"
// @Param request body models.UserUpdate true "Изменяемые поля"
// @Success 200 {object} models.User "Обновленный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или занятый email"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 412 {object} response.ErrorResponse "Отпечаток не совпал"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"
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

	var upd models.UserUpdate
	if err := render.DecodeJSON(r.Body, &upd); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.KindValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(upd); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if match := r.Header.Get("If-Match"); match != "" {
		current, err := h.service.Read(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Error("user not found", slog.String("id", id.String()))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(response.KindNotFound, "user not found"))
				return
			}
			log.Error("failed to read user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindInternal, "could not update user"))
			return
		}
		etag, err := h.service.Fingerprint(current)
		if err != nil {
			log.Error("failed to compute fingerprint", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindInternal, "could not update user"))
			return
		}
		if match != etag {
			log.Error("fingerprint mismatch", slog.String("id", id.String()))
			w.WriteHeader(http.StatusPreconditionFailed)
			render.JSON(w, r, response.Error(response.KindPrecondition, "resource fingerprint does not match If-Match"))
			return
		}
	}

	user, err := h.service.Update(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			log.Error("user not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.KindNotFound, "user not found"))
		case errors.Is(err, storage.ErrEmailExists):
			log.Error("email already taken", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindConflict, storage.ErrEmailExists.Error()))
		default:
			log.Error("failed to update user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.KindInternal, "could not update user"))
		}
		return
	}

	log.Info("success to update user", slog.String("id", id.String()))
	render.JSON(w, r, user)
}
