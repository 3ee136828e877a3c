//go:build unit
// +build unit

package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/pkg/apperrors"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Category string `json:"category" validate:"required,skdcategory"`
	Option   string `json:"option" validate:"omitempty,optionkey"`
	Code     string `json:"code" validate:"omitempty,vouchercode"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(&sample{Email: "a@b.co", Category: "TKP", Option: "E", Code: "HEMAT-50"})
	assert.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	err := Struct(&sample{Category: "XYZ", Option: "F", Code: "x"})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, errors.Is(err, apperrors.ErrInvalid))

	assert.Equal(t, "email is required", vErr.Fields["email"])
	assert.Equal(t, "category must be one of TWK, TIU or TKP", vErr.Fields["category"])
	assert.Contains(t, vErr.Fields["option"], "between A and E")
	assert.Contains(t, vErr.Fields["code"], "upper-case")
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}

func TestField(t *testing.T) {
	err := Field("new_password", "must differ from the current password")
	assert.True(t, errors.Is(err, apperrors.ErrInvalid))
	assert.Contains(t, err.Error(), "new_password")
}
