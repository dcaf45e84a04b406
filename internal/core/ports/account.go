package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// AccountRepository defines the persistence operations on accounts.
type AccountRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id uint, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Type      domain.Role
}

type UpdateProfileInput struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
}

// LoginResult is a successful login: the account (hash stripped) and its
// freshly issued session token.
type LoginResult struct {
	Account *domain.Account
	Token   string
}

// AccountService covers the account use cases.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Get(ctx context.Context, id uint) (*domain.Account, error)
	// UpdateProfile returns the re-read account and a re-issued token.
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*LoginResult, error)
	ChangePassword(ctx context.Context, id uint, password string) error
	// EmailAvailable reports whether email is free, ignoring the account
	// identified by exceptID (zero means none).
	EmailAvailable(ctx context.Context, email string, exceptID uint) (bool, error)
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(claims domain.Claims) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// LoginThrottle tracks failed login attempts per email.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
