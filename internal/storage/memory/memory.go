// Package memory реализует эталонное in-memory хранилище пользователей.
// Все операции сериализуются одним мьютексом на экземпляр, поэтому два
// одновременных создания с одинаковым email не могут пройти оба.
// Наружу всегда отдаются глубокие копии, не разделяемые ссылки.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage"
)

// Storage хранит пользователей в map с сохранением порядка вставки.
type Storage struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	order []uuid.UUID
}

// New создаёт пустое in-memory хранилище.
func New() *Storage {
	return &Storage{
		users: make(map[uuid.UUID]*models.User),
	}
}

// CreateUser сохраняет нового пользователя. Возвращает storage.ErrEmailExists,
// если email уже занят (точное, регистрозависимое совпадение).
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.memory.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		if s.users[id].Email == user.Email {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
	}

	stored := user.Clone()
	s.users[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.Clone(), nil
}

// ReadUser возвращает копию пользователя по ID.
func (s *Storage) ReadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.memory.ReadUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return user.Clone(), nil
}

// ListUsers возвращает пользователей в порядке вставки, отфильтрованных по
// точному совпадению и срезанных [offset, offset+limit). Срез за пределами
// длины даёт укороченный (возможно пустой) результат, не ошибку.
func (s *Storage) ListUsers(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error) {
	const op = "storage.memory.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*models.User, 0, len(s.order))
	for _, id := range s.order {
		u := s.users[id]
		if filter.FullName != nil && u.FullName != *filter.FullName {
			continue
		}
		if filter.Email != nil && u.Email != *filter.Email {
			continue
		}
		matched = append(matched, u)
	}

	if offset >= len(matched) {
		return []*models.User{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*models.User, 0, end-offset)
	for _, u := range matched[offset:end] {
		result = append(result, u.Clone())
	}
	return result, nil
}

// ReplaceUser перезаписывает все поля пользователя, кроме ID и CreatedAt.
// Существующий профиль сохраняется, если замена его не несёт
// (разрешённая спеком неоднозначность: профиль при PUT не теряется).
func (s *Storage) ReplaceUser(ctx context.Context, id uuid.UUID, user models.User) (*models.User, error) {
	const op = "storage.memory.ReplaceUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	replaced := user.Clone()
	replaced.ID = current.ID
	replaced.CreatedAt = current.CreatedAt
	if replaced.Profile == nil {
		replaced.Profile = current.Profile
	}
	replaced.UpdatedAt = time.Now().UTC()

	s.users[id] = replaced
	return replaced.Clone(), nil
}

// UpdateUser накладывает частичное обновление на пользователя.
// Чтение и запись выполняются под одним захватом мьютекса.
func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	const op = "storage.memory.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	updated := current.Clone()
	updated.ApplyUpdate(upd, time.Now().UTC())
	s.users[id] = updated
	return updated.Clone(), nil
}

// DeleteUser удаляет пользователя вместе с вложенным профилем.
func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "storage.memory.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReadProfile возвращает копию профиля пользователя.
func (s *Storage) ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const op = "storage.memory.ReadProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if user.Profile == nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrProfileNotFound)
	}
	return user.Profile.Clone(), nil
}

// PutProfile целиком заменяет содержимое профиля, сохраняя его ID, UserID и
// CreatedAt, и обновляет UpdatedAt владельца.
func (s *Storage) PutProfile(ctx context.Context, id uuid.UUID, put models.ProfilePut) (*models.Profile, error) {
	const op = "storage.memory.PutProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	now := time.Now().UTC()
	updated := current.Clone()
	if updated.Profile == nil {
		updated.Profile = models.NewDefaultProfile(uuid.New(), updated.ID, now)
	}
	updated.Profile.ApplyPut(put, now)
	updated.UpdatedAt = now

	s.users[id] = updated
	return updated.Profile.Clone(), nil
}
