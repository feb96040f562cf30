// AngelaMos | 2026
// category_test.go

package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/course-marketplace/internal/core"
	"github.com/carterperez-dev/course-marketplace/internal/middleware"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Category
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int64]Category{}}
}

func (m *memRepo) Create(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (m *memRepo) List(_ context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Category, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[c.ID]; !ok {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	c.UpdatedAt = time.Now()
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func withRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: 1,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestServiceCreateAndUpdate(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCategoryRequest{Name: "  Music ", Description: "Scales and chords"})
	require.NoError(t, err)
	assert.Equal(t, "Music", c.Name)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "   ", Description: "blank name"})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("name"))

	desc := "Theory and practice"
	updated, err := svc.Update(ctx, c.ID, UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Music", updated.Name)
	assert.Equal(t, desc, updated.Description)

	_, err = svc.Update(ctx, 404, UpdateCategoryRequest{Description: &desc})
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), core.ErrNotFound)
}

func TestHandlerCreateRequiresSuperAdmin(t *testing.T) {
	body := []byte(`{"name":"Programming","description":"Code"}`)

	tests := []struct {
		role   string
		status int
	}{
		{core.RoleSuperAdmin, http.StatusCreated},
		{core.RoleTutor, http.StatusForbidden},
		{core.RoleStudent, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			h := NewHandler(NewService(newMemRepo()))
			r := chi.NewRouter()
			h.RegisterRoutes(r, withRole(tt.role), middleware.RequireAdmin)

			req := httptest.NewRequest(http.MethodPost, "/category", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlerList(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Art", Description: "Drawing"})
	require.NoError(t, err)

	h := NewHandler(svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r, withRole(""), middleware.RequireAdmin)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []CategoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Art", body.Data[0].Name)
}
