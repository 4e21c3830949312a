package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("placement2025"))
	assert.False(t, IsStrongPassword("short1"))
	assert.False(t, IsStrongPassword("onlyletters"))
	assert.False(t, IsStrongPassword("1234567890"))
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type form struct {
		Roll   string `validate:"rollnumber"`
		Doc    string `validate:"documenttype"`
		Status string `validate:"applicationstatus"`
	}

	assert.NoError(t, v.Struct(form{Roll: "21CS1042", Doc: "RESUME", Status: "HR_INTERVIEW"}))

	err := v.Struct(form{Roll: "x", Doc: "SELFIE", Status: "HIRED"})
	require.Error(t, err)
	assert.Len(t, err.(validator.ValidationErrors), 3)
}
