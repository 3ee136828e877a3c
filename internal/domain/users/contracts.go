package users

import (
	"context"
	"time"
)

// AuthToken is returned by a successful login
type AuthToken struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

// Claims are the identity fields carried in a bearer token
type Claims struct {
	UserID string
	Role   string
}

// TokenIssuer signs and verifies bearer tokens
type TokenIssuer interface {
	// Issue signs a token for user and returns it with its expiry.
	Issue(user *User) (string, time.Time, error)
	// Parse verifies token and returns its claims or ErrInvalidToken.
	Parse(token string) (*Claims, error)
}

// AuthService covers self service account operations.
type AuthService interface {
	// Register creates a user account with the default role.
	Register(ctx context.Context, email, password, fullName, phone string) (*User, error)
	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*AuthToken, error)
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID, fullName, phone string) (*User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// UserAdminService covers back-office account management.
type UserAdminService interface {
	List(ctx context.Context, query *UserQuery) ([]*User, error)
	SetRole(ctx context.Context, actor Actor, userID, role string) (*User, error)
	SetActive(ctx context.Context, actor Actor, userID string, active bool) (*User, error)
	DeleteByID(ctx context.Context, actor Actor, userID string) error
	// EnsureAdmin creates an admin account or promotes an existing one.
	EnsureAdmin(ctx context.Context, email, password, fullName string) (*User, error)
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, query *UserQuery) ([]*User, error)
	UpdateByID(ctx context.Context, user *User) error
	DeleteByID(ctx context.Context, userID string) error
}
