package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	resp := Error(KindNotFound, "user not found")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, KindNotFound, resp.Kind)
	assert.Equal(t, "user not found", resp.Error)
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		TripPace string   `validate:"required,oneof=slow balanced packed"`
		Rating   *float64 `validate:"omitempty,gte=0,lte=5"`
	}

	rating := 6.5
	v := validator.New()
	ts := TestStruct{
		TripPace: "sprint",
		Rating:   &rating,
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, KindValidation, resp.Kind)
	assert.Contains(t, resp.Error, "field TripPace must be one of: slow balanced packed")
	assert.Contains(t, resp.Error, "field Rating must be less than or equal to 5")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Email string `validate:"required"`
	}

	v := validator.New()
	ts := TestStruct{}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email is a required field")
}
