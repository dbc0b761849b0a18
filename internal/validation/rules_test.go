package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	strict := PasswordStrength{
		MinLength:      12,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	tests := []struct {
		name     string
		rule     PasswordStrength
		password interface{}
		errMsg   string
	}{
		{name: "strong master password", rule: strict, password: "Vault-Master-2024"},
		{name: "too short", rule: strict, password: "Ab1!short", errMsg: "at least 12 characters"},
		{name: "no uppercase", rule: strict, password: "vault-master-2024", errMsg: "uppercase"},
		{name: "no lowercase", rule: strict, password: "VAULT-MASTER-2024", errMsg: "lowercase"},
		{name: "no number", rule: strict, password: "Vault-Master-Pass", errMsg: "number"},
		{name: "no special", rule: strict, password: "VaultMaster2024", errMsg: "special character"},
		{name: "symbol counts as special", rule: strict, password: "VaultMaster2024$"},
		{name: "length only", rule: PasswordStrength{MinLength: 4}, password: "aaaa"},
		{name: "zero value accepts anything", rule: PasswordStrength{}, password: ""},
		{name: "non string", rule: strict, password: 1234, errMsg: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPasswordStrength_CountsRunes(t *testing.T) {
	rule := PasswordStrength{MinLength: 6}

	assert.NoError(t, rule.Validate("пароль"))
	assert.Error(t, rule.Validate("пар"))
}

func TestStringRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  validation.Rule
		valid []string
		bad   []string
	}{
		{
			name:  "Email",
			rule:  Email,
			valid: []string{"a@b.com", "qa+bot@example.co.uk", "first.last@mail.example.com"},
			bad:   []string{"a@b", "@example.com", "user@", "user @example.com", "userexample.com"},
		},
		{
			name:  "NoWhitespace",
			rule:  NoWhitespace,
			valid: []string{"app-password", "two words"},
			bad:   []string{" leading", "trailing ", "\tpassword\n"},
		},
		{
			name:  "NotBlank",
			rule:  NotBlank,
			valid: []string{"x", " padded "},
			bad:   []string{" ", "\t\n"},
		},
		{
			name:  "Base64",
			rule:  Base64,
			valid: []string{"bWFzdGVycHc=", "d3JhcHBlZA=="},
			bad:   []string{"not base64!", "bWFzdGVycHc"},
		},
		{
			name:  "KeeperURI",
			rule:  KeeperURI,
			valid: []string{"base64key://abc", "hashivault://credvault", "gcpkms://projects/p/locations/global/keyRings/r/cryptoKeys/k"},
			bad:   []string{"vault://x", "awskms://", "base64key", "file:///tmp/key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.valid {
				assert.NoError(t, tt.rule.Validate(v), v)
			}
			for _, v := range tt.bad {
				assert.Error(t, tt.rule.Validate(v), v)
			}
			// Empty values are left to validation.Required.
			assert.NoError(t, tt.rule.Validate(""))
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Validate("nope", Email))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "must be a valid email address")
}
