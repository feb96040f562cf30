// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

type UserInfo struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type TokenIssuer interface {
	CreateAccessToken(claims AccessTokenClaims) (string, time.Time, error)
}

type Service struct {
	tokens       TokenIssuer
	userProvider UserProvider
	passwords    *core.PasswordHasher
}

func NewService(
	tokens TokenIssuer,
	userProvider UserProvider,
	passwords *core.PasswordHasher,
) *Service {
	return &Service{
		tokens:       tokens,
		userProvider: userProvider,
		passwords:    passwords,
	}
}

// Register creates an account from the public sign-up form. The super
// admin role cannot be self-assigned; see CreateAccount and EnsureAdmin.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (_ *UserInfo, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Register",
		attribute.String("user.role", req.Role),
	)
	defer func() { core.EndSpan(span, err) }()

	if req.Role == core.RoleSuperAdmin {
		verr := &core.ValidationError{}
		verr.Add("role", "cannot be self-assigned")
		return nil, verr
	}

	return s.create(ctx, req)
}

// CreateAccount lets a super admin create an account with any role.
func (s *Service) CreateAccount(
	ctx context.Context,
	actor core.Actor,
	req RegisterRequest,
) (_ *UserInfo, err error) {
	ctx, span := core.StartSpan(ctx, "auth.CreateAccount",
		attribute.String("user.role", req.Role),
	)
	defer func() { core.EndSpan(span, err) }()

	if !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("create account: %w", core.ErrForbidden)
	}

	return s.create(ctx, req)
}

// EnsureAdmin creates the bootstrap super admin unless an account with
// the same username or email already exists. It reports whether a user
// was created.
func (s *Service) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	_, err := s.create(ctx, RegisterRequest{
		Username: seed.Username,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     core.RoleSuperAdmin,
	})
	switch {
	case errors.Is(err, ErrUserExists):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (s *Service) create(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userProvider.Exists(ctx, req.Username, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewUser{
		Username:     req.Username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (_ *TokenResponse, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Login")
	defer func() { core.EndSpan(span, err) }()

	user, err := s.userProvider.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			_, _ = s.passwords.VerifyAccount(req.Password, nil) //nolint:errcheck // timing only
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	match, err := s.passwords.VerifyAccount(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !match.OK {
		return nil, ErrInvalidCredentials
	}

	if match.Rehash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, match.Rehash); err != nil {
			slog.WarnContext(ctx, "password rehash not stored", "user_id", user.ID, "error", err)
		}
	}

	accessToken, expiresAt, err := s.tokens.CreateAccessToken(AccessTokenClaims{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Round(time.Second) / time.Second),
		ExpiresAt:   expiresAt,
	}, nil
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
