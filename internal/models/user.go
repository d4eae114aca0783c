// Package models содержит доменные структуры пользователя и его туристического
// профиля, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет собой учётную запись пользователя TripSpark.
// Поле Profile всегда заполняется при создании — у активного пользователя
// ровно один профиль, Profile.UserID совпадает с User.ID.
// Все временные метки хранятся в UTC.
type User struct {
	ID              uuid.UUID `json:"id"`                // Идентификатор, генерируется сервером
	FullName        string    `json:"full_name"`         // Полное имя пользователя
	Email           string    `json:"email"`             // Email, уникален среди всех пользователей
	HomeCity        *string   `json:"home_city"`         // Домашний город (опционально)
	Country         *string   `json:"country"`           // Страна проживания (опционально)
	ProfilePhotoURL *string   `json:"profile_photo_url"` // Ссылка на аватар (опционально)
	CreatedAt       time.Time `json:"created_at"`        // Дата создания, неизменяема
	UpdatedAt       time.Time `json:"updated_at"`        // Обновляется при каждой успешной мутации
	Profile         *Profile  `json:"profile"`           // Вложенный туристический профиль
}

// UserCreate используется для приёма данных из JSON-запроса
// при создании (POST) и полной замене (PUT) пользователя.
type UserCreate struct {
	FullName        string  `json:"full_name" validate:"required"` // Полное имя (обязательно)
	Email           string  `json:"email" validate:"required"`     // Email (обязателен, уникален)
	HomeCity        *string `json:"home_city"`                     // Домашний город
	Country         *string `json:"country"`                       // Страна
	ProfilePhotoURL *string `json:"profile_photo_url"`             // Ссылка на аватар
}

// UserUpdate описывает частичное обновление (PATCH).
// Каждое поле — указатель: nil означает "поле не передано, не трогать",
// ненулевой указатель — "перезаписать", даже если значение пустое.
type UserUpdate struct {
	FullName        *string        `json:"full_name"`
	Email           *string        `json:"email"`
	HomeCity        *string        `json:"home_city"`
	Country         *string        `json:"country"`
	ProfilePhotoURL *string        `json:"profile_photo_url"`
	Profile         *ProfileUpdate `json:"profile"` // Сливается пополево, не заменяет профиль целиком
}

// ListFilter задаёт фильтры точного совпадения для выборки пользователей.
// nil-поле означает отсутствие фильтра.
type ListFilter struct {
	FullName *string
	Email    *string
}

// ApplyUpdate накладывает частичное обновление на пользователя.
// Перезаписываются только переданные поля; профиль сливается пополево,
// а если его ещё нет — создаётся с нуля. UpdatedAt получает значение now.
func (u *User) ApplyUpdate(upd UserUpdate, now time.Time) {
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.HomeCity != nil {
		u.HomeCity = upd.HomeCity
	}
	if upd.Country != nil {
		u.Country = upd.Country
	}
	if upd.ProfilePhotoURL != nil {
		u.ProfilePhotoURL = upd.ProfilePhotoURL
	}
	if upd.Profile != nil {
		if u.Profile == nil {
			u.Profile = NewDefaultProfile(uuid.New(), u.ID, now)
		}
		u.Profile.ApplyUpdate(*upd.Profile, now)
	}
	u.UpdatedAt = now
}

// Clone возвращает глубокую копию пользователя.
// Хранилище отдаёт наружу только копии, чтобы исключить совместное
// изменение одного экземпляра разными запросами.
func (u *User) Clone() *User {
	cp := *u
	cp.HomeCity = cloneStringPtr(u.HomeCity)
	cp.Country = cloneStringPtr(u.Country)
	cp.ProfilePhotoURL = cloneStringPtr(u.ProfilePhotoURL)
	if u.Profile != nil {
		cp.Profile = u.Profile.Clone()
	}
	return &cp
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
