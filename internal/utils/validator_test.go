// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registrationInput struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStructAcceptsGoodInput(t *testing.T) {
	err := ValidateStruct(&registrationInput{
		Username: "good_user_1",
		Email:    "good@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
}

func TestUsernameRule(t *testing.T) {
	bad := []string{
		"ab",               // too short
		"has space",        // whitespace
		"dash-not-allowed", // punctuation
		"почта",            // non-ascii
	}
	for _, username := range bad {
		err := ValidateStruct(&registrationInput{
			Username: username,
			Email:    "ok@example.com",
			Password: "password123",
		})
		assert.Error(t, err, "username %q should be rejected", username)
	}

	assert.NoError(t, ValidateStruct(&registrationInput{
		Username: "under_score_42",
		Email:    "ok@example.com",
		Password: "password123",
	}))
}

func TestGetValidationErrorsMessages(t *testing.T) {
	err := ValidateStruct(&registrationInput{
		Username: "ok_user",
		Email:    "not-an-email",
		Password: "123",
	})
	assert.Error(t, err)

	fieldErrors := GetValidationErrors(err)
	assert.Len(t, fieldErrors, 2)

	fields := make(map[string]bool)
	for _, fe := range fieldErrors {
		fields[fe.Field] = true
		assert.NotEmpty(t, fe.Message)
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}
