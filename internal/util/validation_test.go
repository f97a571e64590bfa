package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name  string  `json:"name" validate:"required"`
	Rate  float64 `json:"pay_rate_per_day" validate:"gt=0"`
	Group string  `json:"task_group" validate:"omitempty,oneof='Group A' 'Group B'"`
	Start string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStructKeysByJSONName(t *testing.T) {
	err := ValidateStruct(sampleForm{Group: "Group C", Start: "2024/01/01"})

	var fe *FormError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "validation failed", fe.Message)
	assert.Contains(t, fe.Errors, "name")
	assert.Contains(t, fe.Errors, "pay_rate_per_day")
	assert.Contains(t, fe.Errors, "task_group")
	assert.Equal(t, "start_date must be a date formatted YYYY-MM-DD", fe.Errors["start_date"])
}

func TestValidateStructAcceptsValid(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleForm{Name: "Asha", Rate: 100, Group: "Group A"}))
}

func TestAddFieldError(t *testing.T) {
	err := AddFieldError(nil, "completion_date", "required")
	var fe *FormError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, map[string]string{"completion_date": "required"}, fe.Errors)

	err = AddFieldError(err, "start_date", "bad")
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe.Errors, 2)

	plain := errors.New("boom")
	assert.Same(t, plain, AddFieldError(plain, "x", "y"))
}
