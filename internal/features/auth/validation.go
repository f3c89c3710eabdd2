package auth

import (
	"context"
	"unicode"

	"catalog-api/internal/pipeline"
)

// RegisterValidation wires the password policy into the validation pipeline.
func RegisterValidation() {
	pipeline.RegisterRules(passwordPolicy)
}

// passwordPolicy enforces the minimum strength rules for new passwords.
// Each unmet rule is reported separately so the caller sees everything
// that needs fixing at once.
func passwordPolicy(_ context.Context, cmd RegisterCommand) (pipeline.Violations, error) {
	v := pipeline.Violations{}

	if len(cmd.Password) < 8 {
		v.Add("Password", "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range cmd.Password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		v.Add("Password", "password must contain an uppercase letter")
	}
	if !hasLower {
		v.Add("Password", "password must contain a lowercase letter")
	}
	if !hasDigit {
		v.Add("Password", "password must contain a digit")
	}

	return v, nil
}
