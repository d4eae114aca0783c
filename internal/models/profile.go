package models

import (
	"time"

	"github.com/google/uuid"
)

// Допустимые значения перечислений профиля.
const (
	SpendingLow    = "low"
	SpendingMedium = "medium"
	SpendingHigh   = "high"

	PaceSlow     = "slow"
	PaceBalanced = "balanced"
	PacePacked   = "packed"
)

// CityVisit — посещённый город с необязательной оценкой в диапазоне [0,5].
type CityVisit struct {
	Name   string   `json:"name" validate:"required"`
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// PlaceVisit — посещённое место (POI) с необязательной оценкой в диапазоне [0,5].
type PlaceVisit struct {
	Name   string   `json:"name" validate:"required"`
	Rating *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// Profile хранит туристические предпочтения и историю поездок пользователя.
// Создаётся сервером вместе с пользователем; UserID никогда не переназначается
// клиентом. Сохранённые (saved) списки намеренно без оценок: сохранённое
// место ещё не посещено.
type Profile struct {
	ID     uuid.UUID `json:"id"`      // Идентификатор профиля, независим от ID пользователя
	UserID uuid.UUID `json:"user_id"` // Обратная ссылка на владельца

	SpendingPreference   *string  `json:"spending_preference"`   // low | medium | high
	DailyBudgetLimit     *float64 `json:"daily_budget_limit"`    // Примерный дневной бюджет, >= 0
	TripStyle            *string  `json:"trip_style"`            // Свободный текст (walkable, family, ...)
	TripPace             *string  `json:"trip_pace"`             // slow | balanced | packed
	PreferredVibes       []string `json:"preferred_vibes"`       // Дескрипторы атмосферы
	FavoriteFoods        []string `json:"favorite_foods"`        // Еда и напитки
	FavoriteActivities   []string `json:"favorite_activities"`   // Активности
	FavoriteSeasons      []string `json:"favorite_seasons"`      // spring | summer | fall | winter
	MinTripDays          *int     `json:"min_trip_days"`         // Минимальная длительность поездки, >= 1
	MaxTripDays          *int     `json:"max_trip_days"`         // Максимальная длительность поездки, >= 1
	HomeLocation         *string  `json:"home_location"`         // Домашняя локация
	NearestAirport       *string  `json:"nearest_airport"`       // Ближайший аэропорт (IATA)
	TransportPreferences []string `json:"transport_preferences"` // walk | public_transit | rideshare | car_rental
	AccessibilityNotes   *string  `json:"accessibility_notes"`   // Заметки о доступности

	CitiesVisited []CityVisit  `json:"cities_visited"` // История городов с оценками
	PlacesVisited []PlaceVisit `json:"places_visited"` // История мест с оценками
	CitiesSaved   []string     `json:"cities_saved"`   // Сохранённые города, без оценок
	PlacesSaved   []string     `json:"places_saved"`   // Сохранённые места, без оценок

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate описывает пополевое слияние профиля внутри PATCH /users/{id}.
// Семантика указателей та же, что и у UserUpdate: nil — не трогать,
// указатель на пустой список — явно очистить список.
type ProfileUpdate struct {
	SpendingPreference   *string       `json:"spending_preference" validate:"omitempty,oneof=low medium high"`
	DailyBudgetLimit     *float64      `json:"daily_budget_limit" validate:"omitempty,gte=0"`
	TripStyle            *string       `json:"trip_style"`
	TripPace             *string       `json:"trip_pace" validate:"omitempty,oneof=slow balanced packed"`
	PreferredVibes       *[]string     `json:"preferred_vibes"`
	FavoriteFoods        *[]string     `json:"favorite_foods"`
	FavoriteActivities   *[]string     `json:"favorite_activities"`
	FavoriteSeasons      *[]string     `json:"favorite_seasons" validate:"omitempty,dive,oneof=spring summer fall winter"`
	MinTripDays          *int          `json:"min_trip_days" validate:"omitempty,gte=1"`
	MaxTripDays          *int          `json:"max_trip_days" validate:"omitempty,gte=1"`
	HomeLocation         *string       `json:"home_location"`
	NearestAirport       *string       `json:"nearest_airport"`
	TransportPreferences *[]string     `json:"transport_preferences" validate:"omitempty,dive,oneof=walk public_transit rideshare car_rental"`
	AccessibilityNotes   *string       `json:"accessibility_notes"`
	CitiesVisited        *[]CityVisit  `json:"cities_visited" validate:"omitempty,dive"`
	PlacesVisited        *[]PlaceVisit `json:"places_visited" validate:"omitempty,dive"`
	CitiesSaved          *[]string     `json:"cities_saved"`
	PlacesSaved          *[]string     `json:"places_saved"`
}

// ProfilePut используется для цельной замены профиля (PUT /users/{id}/profile).
// Идентификаторы и CreatedAt профиля остаются серверными, всё остальное
// берётся из запроса.
type ProfilePut struct {
	SpendingPreference   *string      `json:"spending_preference" validate:"omitempty,oneof=low medium high"`
	DailyBudgetLimit     *float64     `json:"daily_budget_limit" validate:"omitempty,gte=0"`
	TripStyle            *string      `json:"trip_style"`
	TripPace             *string      `json:"trip_pace" validate:"omitempty,oneof=slow balanced packed"`
	PreferredVibes       []string     `json:"preferred_vibes"`
	FavoriteFoods        []string     `json:"favorite_foods"`
	FavoriteActivities   []string     `json:"favorite_activities"`
	FavoriteSeasons      []string     `json:"favorite_seasons" validate:"omitempty,dive,oneof=spring summer fall winter"`
	MinTripDays          *int         `json:"min_trip_days" validate:"omitempty,gte=1"`
	MaxTripDays          *int         `json:"max_trip_days" validate:"omitempty,gte=1"`
	HomeLocation         *string      `json:"home_location"`
	NearestAirport       *string      `json:"nearest_airport"`
	TransportPreferences []string     `json:"transport_preferences" validate:"omitempty,dive,oneof=walk public_transit rideshare car_rental"`
	AccessibilityNotes   *string      `json:"accessibility_notes"`
	CitiesVisited        []CityVisit  `json:"cities_visited" validate:"omitempty,dive"`
	PlacesVisited        []PlaceVisit `json:"places_visited" validate:"omitempty,dive"`
	CitiesSaved          []string     `json:"cities_saved"`
	PlacesSaved          []string     `json:"places_saved"`
}

// NewDefaultProfile возвращает профиль с значениями по умолчанию:
// пустые списки, незаполненные предпочтения.
func NewDefaultProfile(id, userID uuid.UUID, now time.Time) *Profile {
	return &Profile{
		ID:                   id,
		UserID:               userID,
		PreferredVibes:       []string{},
		FavoriteFoods:        []string{},
		FavoriteActivities:   []string{},
		FavoriteSeasons:      []string{},
		TransportPreferences: []string{},
		CitiesVisited:        []CityVisit{},
		PlacesVisited:        []PlaceVisit{},
		CitiesSaved:          []string{},
		PlacesSaved:          []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ApplyUpdate накладывает частичное обновление на профиль.
// Только переданные поля перезаписываются, остальные сохраняют значения.
func (p *Profile) ApplyUpdate(upd ProfileUpdate, now time.Time) {
	if upd.SpendingPreference != nil {
		p.SpendingPreference = upd.SpendingPreference
	}
	if upd.DailyBudgetLimit != nil {
		p.DailyBudgetLimit = upd.DailyBudgetLimit
	}
	if upd.TripStyle != nil {
		p.TripStyle = upd.TripStyle
	}
	if upd.TripPace != nil {
		p.TripPace = upd.TripPace
	}
	if upd.PreferredVibes != nil {
		p.PreferredVibes = append([]string{}, (*upd.PreferredVibes)...)
	}
	if upd.FavoriteFoods != nil {
		p.FavoriteFoods = append([]string{}, (*upd.FavoriteFoods)...)
	}
	if upd.FavoriteActivities != nil {
		p.FavoriteActivities = append([]string{}, (*upd.FavoriteActivities)...)
	}
	if upd.FavoriteSeasons != nil {
		p.FavoriteSeasons = append([]string{}, (*upd.FavoriteSeasons)...)
	}
	if upd.MinTripDays != nil {
		p.MinTripDays = upd.MinTripDays
	}
	if upd.MaxTripDays != nil {
		p.MaxTripDays = upd.MaxTripDays
	}
	if upd.HomeLocation != nil {
		p.HomeLocation = upd.HomeLocation
	}
	if upd.NearestAirport != nil {
		p.NearestAirport = upd.NearestAirport
	}
	if upd.TransportPreferences != nil {
		p.TransportPreferences = append([]string{}, (*upd.TransportPreferences)...)
	}
	if upd.AccessibilityNotes != nil {
		p.AccessibilityNotes = upd.AccessibilityNotes
	}
	if upd.CitiesVisited != nil {
		p.CitiesVisited = append([]CityVisit{}, (*upd.CitiesVisited)...)
	}
	if upd.PlacesVisited != nil {
		p.PlacesVisited = append([]PlaceVisit{}, (*upd.PlacesVisited)...)
	}
	if upd.CitiesSaved != nil {
		p.CitiesSaved = append([]string{}, (*upd.CitiesSaved)...)
	}
	if upd.PlacesSaved != nil {
		p.PlacesSaved = append([]string{}, (*upd.PlacesSaved)...)
	}
	p.UpdatedAt = now
}

// ApplyPut целиком заменяет содержимое профиля данными запроса,
// сохраняя ID, UserID и CreatedAt.
func (p *Profile) ApplyPut(put ProfilePut, now time.Time) {
	p.SpendingPreference = put.SpendingPreference
	p.DailyBudgetLimit = put.DailyBudgetLimit
	p.TripStyle = put.TripStyle
	p.TripPace = put.TripPace
	p.PreferredVibes = emptyIfNil(put.PreferredVibes)
	p.FavoriteFoods = emptyIfNil(put.FavoriteFoods)
	p.FavoriteActivities = emptyIfNil(put.FavoriteActivities)
	p.FavoriteSeasons = emptyIfNil(put.FavoriteSeasons)
	p.MinTripDays = put.MinTripDays
	p.MaxTripDays = put.MaxTripDays
	p.HomeLocation = put.HomeLocation
	p.NearestAirport = put.NearestAirport
	p.TransportPreferences = emptyIfNil(put.TransportPreferences)
	p.AccessibilityNotes = put.AccessibilityNotes
	if put.CitiesVisited != nil {
		p.CitiesVisited = append([]CityVisit{}, put.CitiesVisited...)
	} else {
		p.CitiesVisited = []CityVisit{}
	}
	if put.PlacesVisited != nil {
		p.PlacesVisited = append([]PlaceVisit{}, put.PlacesVisited...)
	} else {
		p.PlacesVisited = []PlaceVisit{}
	}
	p.CitiesSaved = emptyIfNil(put.CitiesSaved)
	p.PlacesSaved = emptyIfNil(put.PlacesSaved)
	p.UpdatedAt = now
}

// Clone возвращает глубокую копию профиля.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.SpendingPreference = cloneStringPtr(p.SpendingPreference)
	cp.TripStyle = cloneStringPtr(p.TripStyle)
	cp.TripPace = cloneStringPtr(p.TripPace)
	cp.HomeLocation = cloneStringPtr(p.HomeLocation)
	cp.NearestAirport = cloneStringPtr(p.NearestAirport)
	cp.AccessibilityNotes = cloneStringPtr(p.AccessibilityNotes)
	cp.DailyBudgetLimit = cloneFloatPtr(p.DailyBudgetLimit)
	cp.MinTripDays = cloneIntPtr(p.MinTripDays)
	cp.MaxTripDays = cloneIntPtr(p.MaxTripDays)
	cp.PreferredVibes = append([]string{}, p.PreferredVibes...)
	cp.FavoriteFoods = append([]string{}, p.FavoriteFoods...)
	cp.FavoriteActivities = append([]string{}, p.FavoriteActivities...)
	cp.FavoriteSeasons = append([]string{}, p.FavoriteSeasons...)
	cp.TransportPreferences = append([]string{}, p.TransportPreferences...)
	cp.CitiesVisited = cloneVisits(p.CitiesVisited)
	cp.PlacesVisited = clonePlaceVisits(p.PlacesVisited)
	cp.CitiesSaved = append([]string{}, p.CitiesSaved...)
	cp.PlacesSaved = append([]string{}, p.PlacesSaved...)
	return &cp
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}

func cloneFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneIntPtr(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneVisits(in []CityVisit) []CityVisit {
	out := make([]CityVisit, len(in))
	for i, v := range in {
		out[i] = CityVisit{Name: v.Name, Rating: cloneFloatPtr(v.Rating)}
	}
	return out
}

func clonePlaceVisits(in []PlaceVisit) []PlaceVisit {
	out := make([]PlaceVisit, len(in))
	for i, v := range in {
		out[i] = PlaceVisit{Name: v.Name, Rating: cloneFloatPtr(v.Rating)}
	}
	return out
}
