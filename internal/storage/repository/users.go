package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/models"
	"github.com/COMSW4153-Cloud-Six/TripSpark-User/internal/storage"
)

const userColumns = `u.id, u.full_name, u.email, u.home_city, u.country,
		      u.profile_photo_url, u.created_at, u.updated_at, p.doc`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var homeCity, country, photoURL sql.NullString
	var doc []byte
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &homeCity, &country,
		&photoURL, &u.CreatedAt, &u.UpdatedAt, &doc); err != nil {
		return nil, err
	}
	if homeCity.Valid {
		u.HomeCity = &homeCity.String
	}
	if country.Valid {
		u.Country = &country.String
	}
	if photoURL.Valid {
		u.ProfilePhotoURL = &photoURL.String
	}
	if doc != nil {
		var p models.Profile
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, err
		}
		u.Profile = &p
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// CreateUser сохраняет пользователя вместе с jsonb-документом профиля.
// Нарушение уникального индекса по email транслируется в storage.ErrEmailExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.repository.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO users (id, full_name, email, home_city, country,
			      profile_photo_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(ctx, query,
		user.ID, user.FullName, user.Email, nullable(user.HomeCity), nullable(user.Country),
		nullable(user.ProfilePhotoURL), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = upsertProfile(ctx, tx, user.ID, user.Profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.Clone(), nil
}

// ReadUser возвращает пользователя вместе с профилем по его ID.
func (s *Storage) ReadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.repository.ReadUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users u
			  LEFT JOIN profiles p ON p.user_id = u.id
			  WHERE u.id = $1`
	user, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListUsers возвращает пользователей в порядке вставки с фильтрами точного
// совпадения и пагинацией.
func (s *Storage) ListUsers(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.User, error) {
	const op = "storage.repository.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users u
			  LEFT JOIN profiles p ON p.user_id = u.id
			  WHERE ($1::text IS NULL OR u.full_name = $1)
			    AND ($2::text IS NULL OR u.email = $2)
			  ORDER BY u.seq
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, nullable(filter.FullName), nullable(filter.Email), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplaceUser перезаписывает все поля пользователя, кроме ID и CreatedAt.
// Если замена не несёт профиля, сохраняется существующий jsonb-документ.
func (s *Storage) ReplaceUser(ctx context.Context, id uuid.UUID, user models.User) (*models.User, error) {
	const op = "storage.repository.ReplaceUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := lockUser(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	replaced := user.Clone()
	replaced.ID = current.ID
	replaced.CreatedAt = current.CreatedAt
	if replaced.Profile == nil {
		replaced.Profile = current.Profile
	}
	replaced.UpdatedAt = time.Now().UTC()

	if err = writeUser(ctx, tx, replaced); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return replaced, nil
}

// UpdateUser накладывает частичное обновление под блокировкой строки.
func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	const op = "storage.repository.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := lockUser(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current.ApplyUpdate(upd, time.Now().UTC())

	if err = writeUser(ctx, tx, current); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return current, nil
}

// DeleteUser удаляет пользователя; профиль уходит каскадом по внешнему ключу.
func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "storage.repository.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

// ReadProfile возвращает jsonb-документ профиля пользователя.
func (s *Storage) ReadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const op = "storage.repository.ReadProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	user, err := s.ReadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrProfileNotFound)
	}
	return user.Profile, nil
}

// PutProfile целиком заменяет содержимое профиля, сохраняя его ID, UserID и
// CreatedAt, и обновляет UpdatedAt владельца.
func (s *Storage) PutProfile(ctx context.Context, id uuid.UUID, put models.ProfilePut) (*models.Profile, error) {
	const op = "storage.repository.PutProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := lockUser(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	if current.Profile == nil {
		current.Profile = models.NewDefaultProfile(uuid.New(), current.ID, now)
	}
	current.Profile.ApplyPut(put, now)
	current.UpdatedAt = now

	if err = writeUser(ctx, tx, current); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return current.Profile, nil
}

// lockUser читает пользователя с профилем под FOR UPDATE строки users.
func lockUser(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.User, error) {
	query := `SELECT u.id, u.full_name, u.email, u.home_city, u.country,
			      u.profile_photo_url, u.created_at, u.updated_at,
			      (SELECT doc FROM profiles p WHERE p.user_id = u.id)
			  FROM users u
			  WHERE u.id = $1
			  FOR UPDATE OF u`
	user, err := scanUser(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// writeUser записывает изменённые поля пользователя и его профиль.
func writeUser(ctx context.Context, tx *sql.Tx, user *models.User) error {
	query := `UPDATE users
			  SET full_name = $1, email = $2, home_city = $3, country = $4,
			      profile_photo_url = $5, updated_at = $6
			  WHERE id = $7`
	_, err := tx.ExecContext(ctx, query,
		user.FullName, user.Email, nullable(user.HomeCity), nullable(user.Country),
		nullable(user.ProfilePhotoURL), user.UpdatedAt, user.ID)
	if err != nil {
		return err
	}
	return upsertProfile(ctx, tx, user.ID, user.Profile)
}

func upsertProfile(ctx context.Context, tx *sql.Tx, userID uuid.UUID, profile *models.Profile) error {
	if profile == nil {
		return nil
	}
	doc, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (user_id, doc)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc`
	_, err = tx.ExecContext(ctx, query, userID, doc)
	return err
}
