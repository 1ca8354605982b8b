package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"products/internal/apperrors"
	"products/internal/validation"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var id validation.ID

	assert.NoError(t, json.Unmarshal([]byte(`7`), &id))
	assert.Equal(t, validation.ID(7), id)

	// Numeric strings are coerced, matching what message producers send.
	assert.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
	assert.Equal(t, validation.ID(42), id)

	err := json.Unmarshal([]byte(`"abc"`), &id)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	err = json.Unmarshal([]byte(`12.5`), &id)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestStruct_CreateProductInput(t *testing.T) {
	valid := validation.CreateProductInput{Name: "Dog Food", Price: 10.99, UserID: 1}
	assert.NoError(t, validation.Struct(valid))

	// Exactly four decimal places is the accepted maximum.
	fourPlaces := validation.CreateProductInput{Name: "Dog Food", Price: 24.9999, UserID: 1}
	assert.NoError(t, validation.Struct(fourPlaces))

	fivePlaces := validation.CreateProductInput{Name: "Dog Food", Price: 24.99999, UserID: 1}
	err := validation.Struct(fivePlaces)
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)

	noName := validation.CreateProductInput{Price: 10.99, UserID: 1}
	err = validation.Struct(noName)
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	negative := validation.CreateProductInput{Name: "Dog Food", Price: -0.01, UserID: 1}
	err = validation.Struct(negative)
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)
}

func TestStruct_UpdateProductInput(t *testing.T) {
	price := 12.50
	empty := ""

	// Absent optional fields are fine; the id is the only requirement.
	assert.NoError(t, validation.Struct(validation.UpdateProductInput{ID: 1}))
	assert.NoError(t, validation.Struct(validation.UpdateProductInput{ID: 1, Price: &price}))

	var vErr *apperrors.ValidationError

	err := validation.Struct(validation.UpdateProductInput{Price: &price})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "id", vErr.Field)

	// A present name must still be non-empty.
	err = validation.Struct(validation.UpdateProductInput{ID: 1, Name: &empty})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	badPrice := 9.123456
	err = validation.Struct(validation.UpdateProductInput{ID: 1, Price: &badPrice})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)
}
