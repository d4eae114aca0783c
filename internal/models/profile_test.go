package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNewDefaultProfile(t *testing.T) {
	now := time.Now().UTC()
	userID := uuid.New()
	p := NewDefaultProfile(uuid.New(), userID, now)

	assert.Equal(t, userID, p.UserID)
	assert.Nil(t, p.SpendingPreference)
	assert.NotNil(t, p.PreferredVibes)
	assert.Empty(t, p.PreferredVibes)
	assert.NotNil(t, p.CitiesVisited)
	assert.Empty(t, p.CitiesVisited)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestProfile_ApplyUpdate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	base := func() *Profile {
		p := NewDefaultProfile(uuid.New(), uuid.New(), created)
		p.SpendingPreference = strPtr(SpendingLow)
		p.TripPace = strPtr(PaceBalanced)
		p.FavoriteFoods = []string{"ramen"}
		p.CitiesVisited = []CityVisit{{Name: "Kyoto", Rating: floatPtr(4.5)}}
		return p
	}

	t.Run("непереданные поля не меняются", func(t *testing.T) {
		p := base()
		p.ApplyUpdate(ProfileUpdate{TripPace: strPtr(PacePacked)}, now)

		assert.Equal(t, PacePacked, *p.TripPace)
		assert.Equal(t, SpendingLow, *p.SpendingPreference)
		assert.Equal(t, []string{"ramen"}, p.FavoriteFoods)
		assert.Len(t, p.CitiesVisited, 1)
		assert.Equal(t, created, p.CreatedAt)
		assert.Equal(t, now, p.UpdatedAt)
	})

	t.Run("списки заменяются целиком", func(t *testing.T) {
		p := base()
		p.ApplyUpdate(ProfileUpdate{
			FavoriteFoods: &[]string{"pastel de nata", "espresso"},
			CitiesVisited: &[]CityVisit{{Name: "Lisbon", Rating: floatPtr(5)}},
		}, now)

		assert.Equal(t, []string{"pastel de nata", "espresso"}, p.FavoriteFoods)
		require.Len(t, p.CitiesVisited, 1)
		assert.Equal(t, "Lisbon", p.CitiesVisited[0].Name)
	})

	t.Run("повторное применение идемпотентно", func(t *testing.T) {
		p := base()
		upd := ProfileUpdate{MinTripDays: intPtr(3), MaxTripDays: intPtr(10)}
		p.ApplyUpdate(upd, now)
		first := p.Clone()
		p.ApplyUpdate(upd, now)

		assert.Equal(t, first, p.Clone())
	})
}

func TestProfile_ApplyPut(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	profileID := uuid.New()
	userID := uuid.New()
	p := NewDefaultProfile(profileID, userID, created)
	p.SpendingPreference = strPtr(SpendingHigh)
	p.FavoriteFoods = []string{"ramen"}

	p.ApplyPut(ProfilePut{
		TripPace:    strPtr(PaceSlow),
		CitiesSaved: []string{"Lisbon"},
	}, now)

	// Серверные поля сохраняются
	assert.Equal(t, profileID, p.ID)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)

	// Непереданные поля сбрасываются, а не сохраняются
	assert.Nil(t, p.SpendingPreference)
	assert.NotNil(t, p.FavoriteFoods)
	assert.Empty(t, p.FavoriteFoods)
	assert.Equal(t, PaceSlow, *p.TripPace)
	assert.Equal(t, []string{"Lisbon"}, p.CitiesSaved)
}

func TestProfile_Clone(t *testing.T) {
	now := time.Now().UTC()
	p := NewDefaultProfile(uuid.New(), uuid.New(), now)
	p.DailyBudgetLimit = floatPtr(150)
	p.CitiesVisited = []CityVisit{{Name: "Kyoto", Rating: floatPtr(4.5)}}

	cp := p.Clone()
	*cp.DailyBudgetLimit = 999
	*cp.CitiesVisited[0].Rating = 1

	assert.Equal(t, 150.0, *p.DailyBudgetLimit)
	assert.Equal(t, 4.5, *p.CitiesVisited[0].Rating)
}
