// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/auth"
	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Exists(
	ctx context.Context,
	username, email string,
) (bool, error) {
	return s.repo.Exists(ctx, username, strings.ToLower(email))
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (_ *auth.UserInfo, err error) {
	ctx, span := core.StartSpan(ctx, "user.Create",
		attribute.String("user.role", nu.Role),
	)
	defer func() { core.EndSpan(span, err) }()

	user := &User{
		Username:     nu.Username,
		Email:        strings.ToLower(nu.Email),
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// RoleOf returns the stored role of a user.
func (s *Service) RoleOf(ctx context.Context, id int64) (string, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID int64) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// DeleteUser hard deletes targetID on behalf of requesterID. Users may
// delete themselves; deleting anyone else takes a super admin, and super
// admins cannot delete each other.
func (s *Service) DeleteUser(
	ctx context.Context,
	requesterID, targetID int64,
) (err error) {
	ctx, span := core.StartSpan(ctx, "user.Delete",
		attribute.Int64("user.id", targetID),
	)
	defer func() { core.EndSpan(span, err) }()

	if err := s.canDelete(ctx, requesterID, targetID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *Service) canDelete(
	ctx context.Context,
	requesterID, targetID int64,
) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsSuperAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsSuperAdmin() {
		return fmt.Errorf("cannot delete super admin users: %w", core.ErrForbidden)
	}

	return nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
