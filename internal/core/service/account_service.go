package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// AccountService implements registration, login and account maintenance.
type AccountService struct {
	repo     ports.AccountRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger

	hash   func(string) (string, error)
	verify func(plaintext, hash string) bool
}

// NewAccountService wires the service. throttle may be nil, which disables
// login throttling.
func NewAccountService(repo ports.AccountRepository, tokens ports.TokenService, throttle ports.LoginThrottle, log zerolog.Logger) *AccountService {
	return &AccountService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		log:      log,
		hash:     HashPassword,
		verify:   VerifyPassword,
	}
}

func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	role := in.Type
	if role == "" {
		role = domain.RoleClient
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPasswordHash, err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Type:         role,
	})
	if err != nil {
		return nil, err
	}
	return stripHash(created), nil
}

// Login never distinguishes an unknown email from a wrong password: both
// return domain.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allowed(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.verify(password, decoyHash())
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verify(password, account.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	account = stripHash(account)
	token, err := s.tokens.Issue(domain.ClaimsFor(account))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.LoginResult{Account: account, Token: token}, nil
}

func (s *AccountService) Get(ctx context.Context, id uint) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return stripHash(account), nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*ports.LoginResult, error) {
	if err := s.repo.UpdateProfile(ctx, in.ID, in.FirstName, in.LastName, normalizeEmail(in.Email)); err != nil {
		return nil, err
	}

	account, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(account))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.LoginResult{Account: account, Token: token}, nil
}

// ChangePassword replaces only the stored hash. Outstanding tokens are left
// untouched since their claims do not change.
func (s *AccountService) ChangePassword(ctx context.Context, id uint, password string) error {
	hash, err := s.hash(password)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPasswordHash, err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *AccountService) EmailAvailable(ctx context.Context, email string, exceptID uint) (bool, error) {
	email = normalizeEmail(email)
	if exceptID != 0 {
		current, err := s.repo.FindByID(ctx, exceptID)
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return false, err
		}
		if current != nil && current.Email == email {
			return true, nil
		}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *AccountService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle update failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func stripHash(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	clone.PasswordHash = ""
	return &clone
}
