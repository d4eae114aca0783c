package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
)

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		url          string
		pathEcho     string
		wantPathEcho *string
		wantEcho     *string
	}{
		{
			name: "базовая проверка без эха",
			url:  "/health",
		},
		{
			name:         "эхо path-параметра",
			url:          "/health/ping",
			pathEcho:     "ping",
			wantPathEcho: strPtr("ping"),
		},
		{
			name:         "эхо path-параметра и query",
			url:          "/health/ping?echo=hello",
			pathEcho:     "ping",
			wantPathEcho: strPtr("ping"),
			wantEcho:     strPtr("hello"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rctx := chi.NewRouteContext()
			if tt.pathEcho != "" {
				rctx.URLParams.Add("path_echo", tt.pathEcho)
			}
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var got models.Health
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, http.StatusOK, got.Status)
			assert.Equal(t, "OK", got.StatusMessage)
			assert.NotEmpty(t, got.Timestamp)
			assert.NotEmpty(t, got.IPAddress)
			assert.Equal(t, tt.wantPathEcho, got.PathEcho)
			assert.Equal(t, tt.wantEcho, got.Echo)
		})
	}
}

func strPtr(s string) *string { return &s }
