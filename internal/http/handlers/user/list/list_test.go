package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	services "github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/services/user"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, filter, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный список с параметрами по умолчанию",
			url:  "/users",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ListFilter{}, services.DefaultListLimit, 0).
					Return([]*models.User{
						{FullName: "Ada", Email: "ada@example.com"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"ada@example.com"`,
		},
		{
			name: "фильтр по email",
			url:  "/users?email=ada@example.com&limit=5&offset=2",
			setupMock: func(m *MockService) {
				email := "ada@example.com"
				m.On("List", mock.Anything, models.ListFilter{Email: &email}, 5, 2).
					Return([]*models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "нечисловой limit",
			url:            "/users?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind":"validation_error"`,
		},
		{
			name: "limit за пределами границ",
			url:  "/users?limit=1000",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ListFilter{}, 1000, 0).
					Return(nil, services.ErrInvalidPagination)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"kind":"validation_error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
