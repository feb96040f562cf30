// AngelaMos | 2026
// service_test.go

package course

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCourseValidate(t *testing.T) {
	valid := func() Course {
		return Course{
			Title:        "Go in Practice",
			Description:  "Concurrency and tooling",
			InstructorID: 1,
			CategoryID:   1,
			Price:        decimal.RequireFromString("9.99"),
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Course)
		field  string
	}{
		{"valid", func(*Course) {}, ""},
		{"free course", func(c *Course) { c.Price = decimal.Zero }, ""},
		{"negative price", func(c *Course) { c.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"column max price", func(c *Course) { c.Price = decimal.RequireFromString("9999999999.99") }, ""},
		{"price above column max", func(c *Course) { c.Price = decimal.RequireFromString("10000000000.00") }, "price"},
		{"sub cent price", func(c *Course) { c.Price = decimal.RequireFromString("1.005") }, "price"},
		{"missing title", func(c *Course) { c.Title = "" }, "title"},
		{"missing description", func(c *Course) { c.Description = "" }, "description"},
		{"missing category", func(c *Course) { c.CategoryID = 0 }, "category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field), "expected %s in %v", tt.field, verr.Fields)
		})
	}
}

func TestCanPublish(t *testing.T) {
	tests := []struct {
		name  string
		actor core.Actor
		want  bool
	}{
		{"owning tutor", core.Actor{UserID: 7, Role: core.RoleTutor}, true},
		{"other tutor", core.Actor{UserID: 8, Role: core.RoleTutor}, false},
		{"super admin", core.Actor{UserID: 1, Role: core.RoleSuperAdmin}, true},
		{"student", core.Actor{UserID: 7, Role: core.RoleStudent}, false},
		{"anonymous", core.Actor{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canPublish(tt.actor, 7))
		})
	}
}

func TestServiceCreate(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	tutor := core.Actor{UserID: 1, Role: core.RoleTutor}

	c, err := svc.Create(ctx, tutor, CreateCourseRequest{
		Title:        "X",
		Description:  "Y",
		InstructorID: 1,
		CategoryID:   1,
		Price:        price("9.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.True(t, c.Price.Equal(decimal.RequireFromString("9.99")))

	_, err = svc.Create(ctx, tutor, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 2, CategoryID: 1, Price: price("1"),
	})
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Create(ctx, core.Actor{UserID: 1, Role: core.RoleSuperAdmin}, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 1, CategoryID: 99, Price: price("1"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidReference)

	_, err = svc.Create(ctx, tutor, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 1, CategoryID: 1, Price: price("-5"),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestServiceUpdateIsPartial(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	tutor := core.Actor{UserID: 1, Role: core.RoleTutor}

	c, err := svc.Create(ctx, tutor, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 1, CategoryID: 1, Price: price("9.99"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, tutor, c.ID, UpdateCourseRequest{Price: price("19.99")})
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "Y", updated.Description)
	assert.Equal(t, int64(1), updated.CategoryID)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("19.99")))

	_, err = svc.Update(ctx, core.Actor{UserID: 2, Role: core.RoleTutor}, c.ID, UpdateCourseRequest{Price: price("1")})
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Update(ctx, tutor, 404, UpdateCourseRequest{Price: price("1")})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	tutor := core.Actor{UserID: 1, Role: core.RoleTutor}

	c, err := svc.Create(ctx, tutor, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 1, CategoryID: 1, Price: price("9.99"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, core.Actor{UserID: 3, Role: core.RoleStudent}, c.ID), core.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, tutor, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tutor, c.ID), core.ErrNotFound)
}

func TestServiceInstructorOf(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, core.Actor{UserID: 2, Role: core.RoleTutor}, CreateCourseRequest{
		Title: "X", Description: "Y", InstructorID: 2, CategoryID: 1, Price: price("0"),
	})
	require.NoError(t, err)

	instructor, err := svc.InstructorOf(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), instructor)

	_, err = svc.InstructorOf(ctx, 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
