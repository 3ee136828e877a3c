package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures bearer token issuing and password hashing
type AuthSettings struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	Issuer     string        `mapstructure:"issuer" validate:"required"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"required,gte=1m"`
	BcryptCost int           `mapstructure:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}
