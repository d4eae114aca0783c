package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadProfileHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	userID := uuid.New()
	profile := models.NewDefaultProfile(uuid.New(), userID, time.Now().UTC())
	profile.CitiesSaved = []string{"Lisbon"}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение",
			id:   userID.String(),
			setupMock: func(m *MockService) {
				m.On("ReadProfile", mock.Anything, userID).Return(profile, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"cities_saved":["Lisbon"]`,
		},
		{
			name:           "некорректный id",
			id:             "not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind":"validation_error"`,
		},
		{
			name: "пользователь не найден",
			id:   userID.String(),
			setupMock: func(m *MockService) {
				m.On("ReadProfile", mock.Anything, userID).
					Return(nil, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "user not found",
		},
		{
			name: "профиль не найден",
			id:   userID.String(),
			setupMock: func(m *MockService) {
				m.On("ReadProfile", mock.Anything, userID).
					Return(nil, storage.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "profile not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.id+"/profile", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
