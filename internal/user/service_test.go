// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/course-marketplace/internal/auth"
	"github.com/carterperez-dev/course-marketplace/internal/core"
)

func TestUserValidate(t *testing.T) {
	valid := func() User {
		return User{
			Username:     "ada",
			Email:        "ada@example.com",
			PasswordHash: "$argon2id$v=19$hash",
			Role:         core.RoleTutor,
		}
	}

	tests := []struct {
		name   string
		mutate func(u *User)
		field  string
	}{
		{"valid tutor", func(*User) {}, ""},
		{"valid super admin", func(u *User) { u.Role = core.RoleSuperAdmin }, ""},
		{"unknown role", func(u *User) { u.Role = "owner" }, "role"},
		{"email without at", func(u *User) { u.Email = "ada.example.com" }, "email"},
		{"email without dot in domain", func(u *User) { u.Email = "ada@example" }, "email"},
		{"short hash", func(u *User) { u.PasswordHash = "12345678" }, "password_hash"},
		{"missing username", func(u *User) { u.Username = "" }, "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid()
			tt.mutate(&u)

			err := u.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field), "expected %s in %v", tt.field, verr.Fields)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestServiceCreate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	info, err := svc.Create(ctx, auth.NewUser{
		Username:     "grace",
		Email:        "Grace@Example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         core.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", info.Email)
	assert.NotZero(t, info.ID)

	exists, err := svc.Exists(ctx, "someone-else", "GRACE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = svc.Create(ctx, auth.NewUser{
		Username:     "owner",
		Email:        "owner@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         "owner",
	})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("role"))

	_, err = svc.Create(ctx, auth.NewUser{
		Username:     "grace",
		Email:        "grace2@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:         core.RoleStudent,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestServiceDeleteUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admin := seedUser(repo, "root", core.RoleSuperAdmin)
	otherAdmin := seedUser(repo, "root2", core.RoleSuperAdmin)
	tutor := seedUser(repo, "tutor", core.RoleTutor)
	student := seedUser(repo, "student", core.RoleStudent)

	t.Run("non admin cannot delete others", func(t *testing.T) {
		err := svc.DeleteUser(ctx, tutor.ID, student.ID)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin cannot delete another admin", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin.ID, otherAdmin.ID)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("admin deletes student", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, admin.ID, student.ID))
		_, err := svc.GetUser(ctx, student.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("missing target", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin.ID, 999)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("self delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, tutor.ID, tutor.ID))
	})
}

func TestServiceRoleOf(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	tutor := seedUser(repo, "tutor", core.RoleTutor)

	role, err := svc.RoleOf(context.Background(), tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, core.RoleTutor, role)

	_, err = svc.RoleOf(context.Background(), 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListUsersParamsNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         ListUsersParams
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", ListUsersParams{}, 1, 20, 0},
		{"second page", ListUsersParams{Page: 2, PageSize: 10}, 2, 10, 10},
		{"negative page", ListUsersParams{Page: -5, PageSize: 10}, 1, 10, 0},
		{"oversized page size", ListUsersParams{Page: 1, PageSize: 5000}, 1, 100, 0},
		{"huge page", ListUsersParams{Page: math.MaxInt, PageSize: 100}, 1_000_000, 100, 99_999_900},
		{"page past int32 offset", ListUsersParams{Page: 50_000_000, PageSize: 100}, 1_000_000, 100, 99_999_900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSize, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.LessOrEqual(t, p.Offset(), math.MaxInt32)
		})
	}
}
