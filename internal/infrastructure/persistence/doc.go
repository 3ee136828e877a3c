// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer against PostgreSQL in production and SQLite
// for local runs and integration tests. Repositories validate domain entities
// before writing, translate driver errors into domain errors and resolve
// concurrent state transitions with conditional updates inside transactions.
package persistence
