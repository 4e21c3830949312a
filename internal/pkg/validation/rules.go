// Package validation registers the portal specific binding tags with the
// validator used by gin.
package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/workflow"
)

// Validation rule patterns
var (
	// Roll numbers are upper case alphanumerics, optionally with / or -
	RollNumberPattern = `^[A-Z0-9][A-Z0-9/\-]{3,19}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	RollNumber *regexp.Regexp
}{
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// IsStrongPassword requires at least one letter and one digit
func IsStrongPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

var rules = map[string]validator.Func{
	"strongpassword": func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	},
	"rollnumber": func(fl validator.FieldLevel) bool {
		return CompiledPatterns.RollNumber.MatchString(fl.Field().String())
	},
	"documenttype": func(fl validator.FieldLevel) bool {
		return workflow.IsDocumentType(fl.Field().String())
	},
	"applicationstatus": func(fl validator.FieldLevel) bool {
		return workflow.IsValidApplicationStatus(models.ApplicationStatus(fl.Field().String()))
	},
}

// Register adds the custom tags to v
func Register(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

// RegisterWithGin adds the custom tags to gin's default validator engine
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
