// Package services содержит бизнес-логику управления пользователями:
// валидацию границ, назначение идентификаторов и временных меток,
// вычисление контентного отпечатка, кеширование и публикацию событий.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/events"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/lib/fingerprint"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
)

// Границы пагинации списка пользователей.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// ErrInvalidPagination возвращается при выходе limit/offset за допустимые границы.
var ErrInvalidPagination = errors.New("limit must be between 1 and 100, offset must not be negative")

// UserRepository определяет методы хранилища пользователей.
// Реализуется in-memory хранилищем и PostgreSQL-репозиторием.
type UserRepository interface {
	// CreateUser сохраняет пользователя, соблюдая уникальность email.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// ReadUser возвращает пользователя по ID.
	ReadUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ListUsers возвращает пользователей по фильтру с пагинацией в порядке вставки.
	ListUsers(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error)
	// ReplaceUser перезаписывает все поля, сохраняя существующий профиль при его отсутствии в замене.
	ReplaceUser(ctx context.Context, id uuid.UUID, user models.User) (*models.User, error)
	// UpdateUser накладывает частичное обновление с сохранением непереданных полей.
	UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
	// DeleteUser удаляет пользователя вместе с профилем.
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// ReadProfile возвращает вложенный профиль пользователя.
	ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// PutProfile целиком заменяет содержимое профиля.
	PutProfile(ctx context.Context, id uuid.UUID, put models.ProfilePut) (*models.Profile, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует доменные события пользователей.
type EventPublisher interface {
	Publish(event, userID string) error
}

// UserService реализует бизнес-логику работы с пользователями.
// Кеш и издатель событий опциональны: nil отключает соответствующий механизм.
type UserService struct {
	repo   UserRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, events EventPublisher, log *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// Create создаёт пользователя вместе с профилем по умолчанию.
// Сервер назначает оба идентификатора, связывает профиль через UserID
// и ставит created_at == updated_at.
func (s *UserService) Create(ctx context.Context, req models.UserCreate) (*models.User, error) {
	now := time.Now().UTC()
	userID := uuid.New()
	user := models.User{
		ID:              userID,
		FullName:        req.FullName,
		Email:           req.Email,
		HomeCity:        req.HomeCity,
		Country:         req.Country,
		ProfilePhotoURL: req.ProfilePhotoURL,
		CreatedAt:       now,
		UpdatedAt:       now,
		Profile:         models.NewDefaultProfile(uuid.New(), userID, now),
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new user", slog.String("id", created.ID.String()))

	s.cacheSet(created)
	s.publish(events.UserCreated, created.ID)
	return created, nil
}

// List возвращает страницу пользователей, предварительно проверяя границы
// пагинации: offset >= 0, 1 <= limit <= 100.
func (s *UserService) List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error) {
	if limit < 1 || limit > MaxListLimit || offset < 0 {
		return nil, ErrInvalidPagination
	}
	return s.repo.ListUsers(ctx, filter, limit, offset)
}

// Read возвращает пользователя по ID, используя кеш или репозиторий.
func (s *UserService) Read(ctx context.Context, id uuid.UUID) (*models.User, error) {
	cacheKey := userCacheKey(id)
	if s.cache != nil {
		var result *models.User
		found, err := s.cache.Get(cacheKey, &result)
		if err != nil {
			return nil, err
		}
		if found {
			return result, nil
		}
	}

	result, err := s.repo.ReadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(result)
	return result, nil
}

// Replace целиком заменяет пользователя данными запроса.
// Существующий профиль сохраняется — PUT без профиля его не стирает.
func (s *UserService) Replace(ctx context.Context, id uuid.UUID, req models.UserCreate) (*models.User, error) {
	user := models.User{
		FullName:        req.FullName,
		Email:           req.Email,
		HomeCity:        req.HomeCity,
		Country:         req.Country,
		ProfilePhotoURL: req.ProfilePhotoURL,
	}
	replaced, err := s.repo.ReplaceUser(ctx, id, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("replaced user", slog.String("id", id.String()))

	s.cacheSet(replaced)
	s.publish(events.UserUpdated, id)
	return replaced, nil
}

// Update накладывает частичное обновление: меняются только переданные поля,
// профиль сливается пополево.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	updated, err := s.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user", slog.String("id", id.String()))

	s.cacheSet(updated)
	s.publish(events.UserUpdated, id)
	if upd.Profile != nil {
		s.publish(events.UserProfileUpdated, id)
	}
	return updated, nil
}

// Remove удаляет пользователя вместе с профилем и инвалидирует кеш.
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	if s.cache != nil {
		cacheKey := userCacheKey(id)
		if err := s.cache.Invalidate(cacheKey); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("deleted user", slog.String("id", id.String()))

	s.publish(events.UserDeleted, id)
	return nil
}

// ReadProfile возвращает вложенный профиль пользователя.
func (s *UserService) ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.repo.ReadProfile(ctx, id)
}

// PutProfile целиком заменяет содержимое профиля и обновляет метку владельца.
func (s *UserService) PutProfile(ctx context.Context, id uuid.UUID, put models.ProfilePut) (*models.Profile, error) {
	profile, err := s.repo.PutProfile(ctx, id, put)
	if err != nil {
		return nil, err
	}
	s.log.Info("replaced user profile", slog.String("user_id", id.String()))

	if s.cache != nil {
		cacheKey := userCacheKey(id)
		if err := s.cache.Invalidate(cacheKey); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	s.publish(events.UserProfileUpdated, id)
	return profile, nil
}

// Fingerprint возвращает контентный отпечаток пользователя для заголовка ETag.
func (s *UserService) Fingerprint(user *models.User) (string, error) {
	return fingerprint.Compute(user)
}

func (s *UserService) cacheSet(user *models.User) {
	if s.cache == nil {
		return
	}
	cacheKey := userCacheKey(user.ID)
	if err := s.cache.Set(cacheKey, user, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
}

func (s *UserService) publish(event string, id uuid.UUID) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, id.String()); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", event), slog.Any("err", err))
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}
