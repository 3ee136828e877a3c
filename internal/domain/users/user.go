package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Roles
const (
	RoleUser   = "user"
	RoleMentor = "mentor"
	RoleAdmin  = "admin"
)

// MinPasswordLength is the shortest password accepted on register and change
const MinPasswordLength = 6

// Roles lists every assignable role
var Roles = []string{RoleUser, RoleMentor, RoleAdmin}

// User entity
type User struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	Email           string     `json:"email" validate:"required,email,max=255"`
	FullName        string     `json:"full_name" validate:"required,min=2,max=100"`
	Phone           string     `json:"phone" validate:"omitempty,numeric,min=8,max=20"`
	Role            string     `json:"role" validate:"required,oneof=user mentor admin"`
	PasswordHash    string     `json:"-" validate:"required"`
	IsActive        bool       `json:"is_active"`
	DateTimeCreated time.Time  `json:"date_time_created" validate:"required"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
}

// NewUser builds an active account with the default role and a fresh ID.
func NewUser(email, fullName, phone string) *User {
	return &User{
		ID:              uuid.NewString(),
		Email:           NormalizeEmail(email),
		FullName:        strings.TrimSpace(fullName),
		Phone:           strings.TrimSpace(phone),
		Role:            RoleUser,
		IsActive:        true,
		DateTimeCreated: time.Now().UTC(),
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are case insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes and stores password. cost <= 0 selects bcrypt.DefaultCost.
func (u *User) SetPassword(password string, cost int) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.Struct(u)
}

// Actor returns the caller identity carried through service calls
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// Actor identifies who performs an operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) IsMentor() bool { return a.Role == RoleMentor }

// CanManage reports whether the actor may modify a record created by ownerID.
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || (a.IsMentor() && a.UserID == ownerID)
}
