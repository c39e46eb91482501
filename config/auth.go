package config

import "time"

// AuthConfig contains token signing and password hashing configuration.
type AuthConfig struct {
	// TokenSecret signs access tokens (HS256). Required.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"30m"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 30 * time.Minute
	}
	// bcrypt rejects costs outside 4-31; clamp to a sane operational range
	if a.BcryptCost < 4 {
		a.BcryptCost = 4
	}
	if a.BcryptCost > 31 {
		a.BcryptCost = 31
	}
}
