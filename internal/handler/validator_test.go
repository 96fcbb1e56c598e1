package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DecimalTags(t *testing.T) {
	v := GetValidator()

	ok := DepositRequest{Amount: decimal.RequireFromString("999.99")}
	assert.NoError(t, v.ValidateStruct(ok))

	err := v.ValidateStruct(DepositRequest{Amount: decimal.RequireFromString("-0.01")})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"amount": "Must be greater than 0"}, FormatValidationError(err))

	err = v.ValidateStruct(DepositRequest{})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"amount": "This field is required"}, FormatValidationError(err))
}

func TestValidator_UUIDVar(t *testing.T) {
	v := GetValidator()
	assert.NoError(t, v.ValidateVar(testCaseID, "required,uuid"))
	assert.Error(t, v.ValidateVar("../etc/passwd", "required,uuid"))
	assert.Error(t, v.ValidateVar("", "required,uuid"))
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
