package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUser_ApplyUpdate(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		upd   UserUpdate
		check func(t *testing.T, u *User)
	}{
		{
			name: "обновляется только переданное поле",
			upd:  UserUpdate{FullName: strPtr("Ada Lovelace")},
			check: func(t *testing.T, u *User) {
				assert.Equal(t, "Ada Lovelace", u.FullName)
				assert.Equal(t, "ada@example.com", u.Email)
				assert.Equal(t, "London", *u.HomeCity)
			},
		},
		{
			name: "ненулевой указатель перезаписывает даже пустым значением",
			upd:  UserUpdate{HomeCity: strPtr("")},
			check: func(t *testing.T, u *User) {
				require.NotNil(t, u.HomeCity)
				assert.Equal(t, "", *u.HomeCity)
			},
		},
		{
			name: "вложенный профиль сливается пополево",
			upd: UserUpdate{
				Profile: &ProfileUpdate{TripPace: strPtr(PaceSlow)},
			},
			check: func(t *testing.T, u *User) {
				require.NotNil(t, u.Profile)
				assert.Equal(t, PaceSlow, *u.Profile.TripPace)
				assert.Equal(t, SpendingMedium, *u.Profile.SpendingPreference)
				assert.Equal(t, []string{"Lisbon"}, u.Profile.CitiesSaved)
			},
		},
		{
			name: "указатель на пустой список очищает список",
			upd: UserUpdate{
				Profile: &ProfileUpdate{CitiesSaved: &[]string{}},
			},
			check: func(t *testing.T, u *User) {
				assert.Empty(t, u.Profile.CitiesSaved)
				assert.NotNil(t, u.Profile.CitiesSaved)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			user := &User{
				ID:        userID,
				FullName:  "Ada",
				Email:     "ada@example.com",
				HomeCity:  strPtr("London"),
				CreatedAt: created,
				UpdatedAt: created,
				Profile:   NewDefaultProfile(uuid.New(), userID, created),
			}
			user.Profile.SpendingPreference = strPtr(SpendingMedium)
			user.Profile.CitiesSaved = []string{"Lisbon"}

			user.ApplyUpdate(tt.upd, now)

			tt.check(t, user)
			assert.Equal(t, created, user.CreatedAt)
			assert.Equal(t, now, user.UpdatedAt)
		})
	}
}

func TestUser_ApplyUpdate_CreatesProfileWhenMissing(t *testing.T) {
	now := time.Now().UTC()
	user := &User{ID: uuid.New(), FullName: "Ada", Email: "ada@example.com"}

	user.ApplyUpdate(UserUpdate{Profile: &ProfileUpdate{TripStyle: strPtr("walkable")}}, now)

	require.NotNil(t, user.Profile)
	assert.Equal(t, user.ID, user.Profile.UserID)
	assert.Equal(t, "walkable", *user.Profile.TripStyle)
}

func TestUser_Clone(t *testing.T) {
	now := time.Now().UTC()
	userID := uuid.New()
	user := &User{
		ID:       userID,
		FullName: "Ada",
		Email:    "ada@example.com",
		HomeCity: strPtr("London"),
		Profile:  NewDefaultProfile(uuid.New(), userID, now),
	}
	user.Profile.CitiesSaved = []string{"Lisbon"}

	cp := user.Clone()
	*cp.HomeCity = "Paris"
	cp.Profile.CitiesSaved[0] = "Porto"

	assert.Equal(t, "London", *user.HomeCity)
	assert.Equal(t, []string{"Lisbon"}, user.Profile.CitiesSaved)
}
