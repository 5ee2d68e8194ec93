package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/ticket-admin/internal/auth"
	"github.com/spec-kit/ticket-admin/internal/config"
	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/internal/events"
	"github.com/spec-kit/ticket-admin/internal/repository"
	"github.com/spec-kit/ticket-admin/internal/store"
	apperrors "github.com/spec-kit/ticket-admin/pkg/util"
)

// AuthService coordinates registration, login and token verification.
// Sessions are stateless: validity lives entirely inside the token, there is
// no server-side session record and no revocation. Logout is a client-side
// concern.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.TokenSecret),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
	}
}

// RegisterInput is the registration payload. Only Email and Password are
// required; absent profile fields default to the empty string.
type RegisterInput struct {
	Email             string
	Password          string
	FullName          string
	EstablishmentName string
	CpfCnpj           string
	CompanyName       string
	TradeName         string
	Phone             string
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	User      domain.PublicUser
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account and issues a session token. The email
// uniqueness check happens here, not in the store.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:                domain.NewUserID(now),
		Email:             input.Email,
		Password:          hash,
		FullName:          input.FullName,
		EstablishmentName: input.EstablishmentName,
		CpfCnpj:           input.CpfCnpj,
		CompanyName:       input.CompanyName,
		TradeName:         input.TradeName,
		Phone:             input.Phone,
		CreatedAt:         now.UTC().Format(time.RFC3339),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventUserRegistered,
			repository.UsersCollection, user.ID,
			events.UserRegisteredPayload{Email: user.Email}))
	}

	return s.issue(user)
}

// Login authenticates an operator. Unknown emails and wrong passwords fail
// with the same message so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.Password, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	return s.issue(user)
}

// Verify decodes a bearer token and re-fetches the stored profile. A token
// that decodes but references a deleted user is a 404, not a 401.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.PublicUser, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("token not provided")
	}

	claims, err := s.tokenMgr.Parse(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required", nil)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.Password, currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventUserPasswordChanged,
			repository.UsersCollection, user.ID, nil))
	}
	return nil
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FullName          string
	EstablishmentName string
	CpfCnpj           string
	CompanyName       string
	TradeName         string
	Phone             string
}

// UpdateProfile replaces the profile fields of the account. Email, password
// and creation metadata are untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.EstablishmentName = input.EstablishmentName
	user.CpfCnpj = input.CpfCnpj
	user.CompanyName = input.CompanyName
	user.TradeName = input.TradeName
	user.Phone = input.Phone
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventUserProfileUpdated,
			repository.UsersCollection, user.ID, nil))
	}

	public := user.Public()
	return &public, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokenMgr.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
