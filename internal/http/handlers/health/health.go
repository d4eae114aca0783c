// Package health реализует служебные HTTP-обработчики проверки живости.
//
// Базовый маршрут отвечает статусом сервиса, вариант с path-параметром
// возвращает его эхом вместе с необязательным query-параметром echo.
package health

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
)

// Handler управляет HTTP-запросами проверки живости сервиса.
type Handler struct {
	log *slog.Logger // Логгер для записи информации и ошибок
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка живости сервиса
// @Description Возвращает статус сервиса; path-параметр и query-параметр echo отражаются в ответе.
// @Tags Health
// @Produce  json
// @Param path_echo path string false "Произвольный сегмент для эха"
// @Param echo query string false "Произвольная строка для эха"
// @Success 200 {object} models.Health "Статус сервиса"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := models.Health{
		Status:        http.StatusOK,
		StatusMessage: "OK",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		IPAddress:     localAddr(),
	}
	if pathEcho := chi.URLParam(r, "path_echo"); pathEcho != "" {
		status.PathEcho = &pathEcho
	}
	if echo := r.URL.Query().Get("echo"); echo != "" {
		status.Echo = &echo
	}

	log.Info("health check", slog.String("ip", status.IPAddress))
	render.JSON(w, r, status)
}

func localAddr() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
