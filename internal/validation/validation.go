package validation

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"products/internal/apperrors"
)

// ID decodes from either a JSON number or a numeric string, mirroring the
// coercion the message producers rely on. Non-numeric input fails decoding.
type ID int

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid numeric id", apperrors.ErrInvalidArgument, s)
	}
	*id = ID(n)
	return nil
}

// CreateProductInput is the validated payload for creating a product.
type CreateProductInput struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0,maxdecimals=4"`
	ImageURL *string `json:"imageUrl" validate:"omitempty"`
	UserID   ID      `json:"userId" validate:"required,gt=0"`
}

// UpdateProductInput is the validated payload for updating a product.
// All product fields are optional; only present fields are merged.
type UpdateProductInput struct {
	ID       ID       `json:"id" validate:"required,gt=0"`
	Name     *string  `json:"name" validate:"omitnil,min=1"`
	Price    *float64 `json:"price" validate:"omitnil,gt=0,maxdecimals=4"`
	ImageURL *string  `json:"imageUrl" validate:"omitnil"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json names so failures match the wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	// maxdecimals=N rejects numbers with more than N fractional digits.
	if err := v.RegisterValidation("maxdecimals", validateMaxDecimals); err != nil {
		panic(err)
	}

	return v
}

func validateMaxDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	s := strconv.FormatFloat(fl.Field().Float(), 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return true
	}
	return len(s)-dot-1 <= places
}

// Struct validates the given input and converts the first failure into a
// *apperrors.ValidationError. No side effect may precede this call.
func Struct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &apperrors.ValidationError{Field: "payload", Reason: err.Error()}
	}
	return &apperrors.ValidationError{
		Field:  errs[0].Field(),
		Reason: reasonFor(errs[0]),
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required and must not be empty"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "maxdecimals":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
