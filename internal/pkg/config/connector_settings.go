package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MediaConnectorSettings selects and configures the object store for uploaded media
type MediaConnectorSettings struct {
	Provider         string `mapstructure:"provider" validate:"required,oneof=azure local"`
	ConnectionString string `mapstructure:"connection_string" validate:"required_if=Provider azure"`
	ContainerName    string `mapstructure:"container_name" validate:"required_if=Provider azure"`
	LocalDir         string `mapstructure:"local_dir" validate:"required_if=Provider local"`
	MaxUploadBytes   int64  `mapstructure:"max_upload_bytes" validate:"required,min=1"`
}

// Validate checks that all fields in MediaConnectorSettings are valid
func (s *MediaConnectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MediaConnectorSettings: %w", err)
	}
	return nil
}
