package domain

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/credvault/internal/validation"
)

// Credentials is the credential bundle stored in a vault file: the account the browser tests
// sign in with.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present and the email is well formed.
// Failures wrap ErrInvalidCredentials.
func (c *Credentials) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Email,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Email,
		),
		validation.Field(&c.Password, validation.Required, customValidation.NotBlank),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return nil
}

// MaskedPassword returns the password with every character replaced by '*'.
func (c *Credentials) MaskedPassword() string {
	return strings.Repeat("*", len([]rune(c.Password)))
}
