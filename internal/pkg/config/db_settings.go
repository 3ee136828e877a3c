package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Supported database backends
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings describes how to reach the relational store.
// Name is optional for postgres: when set the database is created on first connect.
type DatabaseSettings struct {
	Type         string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN          string `mapstructure:"dsn" validate:"required_if=Type postgres"`
	Name         string `mapstructure:"name" validate:"omitempty,alphanum"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
