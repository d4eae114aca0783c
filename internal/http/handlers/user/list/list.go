// Package list реализует HTTP-обработчик постраничного списка пользователей.
//
// Список фильтруется по точному совпадению имени и email и отдается в порядке
// создания. Некорректные значения limit/offset отклоняются до обращения
// к хранилищу.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/http/response"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/lib/sl"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	services "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/services/user"
)

// Handler управляет HTTP-запросами на получение списка пользователей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики списка пользователей
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей в порядке создания с фильтрами по имени и email.
// @Tags Users
// @Produce  json
// @Param full_name query string false "Точное совпадение имени"
// @Param email query string false "Точное совпадение email"
// @Param limit query int false "Размер страницы, 1..100" default(10)
// @Param offset query int false "Смещение от начала" default(0)
// @Success 200 {array} models.User "Страница пользователей"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры пагинации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := services.DefaultListLimit
	offset := 0
	var err error

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			log.Error("invalid limit", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindValidation, "limit must be an integer"))
			return
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			log.Error("invalid offset", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindValidation, "offset must be an integer"))
			return
		}
	}

	var filter models.ListFilter
	if name := r.URL.Query().Get("full_name"); name != "" {
		filter.FullName = &name
	}
	if email := r.URL.Query().Get("email"); email != "" {
		filter.Email = &email
	}

	users, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPagination) {
			log.Error("pagination out of bounds", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.KindValidation, err.Error()))
			return
		}
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.KindInternal, "could not list users"))
		return
	}

	log.Info("success to list users", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
