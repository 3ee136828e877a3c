package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// TryoutSettings configures the exam engine and its background expiry scan
type TryoutSettings struct {
	ExpiryScanInterval time.Duration `mapstructure:"expiry_scan_interval" validate:"required,gte=1s"`
	ExpiryBatchSize    int           `mapstructure:"expiry_batch_size" validate:"required,min=1,max=1000"`
	DefaultPassingTWK  int           `mapstructure:"default_passing_twk" validate:"gte=0"`
	DefaultPassingTIU  int           `mapstructure:"default_passing_tiu" validate:"gte=0"`
	DefaultPassingTKP  int           `mapstructure:"default_passing_tkp" validate:"gte=0"`
}

// Validate checks that all fields in TryoutSettings are valid
func (s *TryoutSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for TryoutSettings: %w", err)
	}
	return nil
}
