package models

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// UserModel is the GORM database model for accounts
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Email           string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	FullName        string    `gorm:"not null;type:varchar(100)"`
	Phone           string    `gorm:"type:varchar(20)"`
	Role            string    `gorm:"not null;index;type:varchar(20)"`
	PasswordHash    string    `gorm:"not null;type:varchar(255)"`
	IsActive        bool      `gorm:"not null;default:true"`
	DateTimeCreated time.Time `gorm:"not null"`
	LastLoginAt     *time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:              m.ID,
		Email:           m.Email,
		FullName:        m.FullName,
		Phone:           m.Phone,
		Role:            m.Role,
		PasswordHash:    m.PasswordHash,
		IsActive:        m.IsActive,
		DateTimeCreated: m.DateTimeCreated,
		LastLoginAt:     m.LastLoginAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.FullName = u.FullName
	m.Phone = u.Phone
	m.Role = u.Role
	m.PasswordHash = u.PasswordHash
	m.IsActive = u.IsActive
	m.DateTimeCreated = u.DateTimeCreated
	m.LastLoginAt = u.LastLoginAt
}
