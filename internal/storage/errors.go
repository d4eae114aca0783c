// Package storage объявляет общие ошибки хранилища пользователей.
// Конкретные реализации (in-memory, PostgreSQL) оборачивают их через %w,
// HTTP-слой сопоставляет их со статус-кодами через errors.Is.
package storage

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь с данным ID не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound возвращается, когда пользователь существует, но профиль отсутствует.
	ErrProfileNotFound = errors.New("profile not found for this user")
	// ErrEmailExists возвращается при попытке создать пользователя с занятым email.
	ErrEmailExists = errors.New("user with this email already exists")
)
