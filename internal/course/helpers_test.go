// AngelaMos | 2026
// helpers_test.go

package course

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
	"github.com/carterperez-dev/course-marketplace/internal/middleware"
)

// memRepo mirrors the foreign keys of the courses table: instructors and
// categories must be registered before a course may point at them.
type memRepo struct {
	mu          sync.Mutex
	nextID      int64
	rows        map[int64]Course
	instructors map[int64]bool
	categories  map[int64]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		rows:        map[int64]Course{},
		instructors: map[int64]bool{1: true, 2: true},
		categories:  map[int64]bool{1: true, 2: true},
	}
}

func (m *memRepo) checkRefs(op string, c *Course) error {
	if !m.instructors[c.InstructorID] || !m.categories[c.CategoryID] {
		return fmt.Errorf("%s: %w", op, core.ErrInvalidReference)
	}
	return nil
}

func (m *memRepo) Create(_ context.Context, c *Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkRefs("create course", c); err != nil {
		return err
	}

	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (m *memRepo) List(_ context.Context) ([]Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Course, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, c *Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[c.ID]; !ok {
		return fmt.Errorf("update course: %w", core.ErrNotFound)
	}
	if err := m.checkRefs("update course", c); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete course: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

// headerAuth trusts X-Test-User / X-Test-Role headers in place of a token.
func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get("X-Test-User"), 10, 64)
		if err != nil {
			core.Unauthorized(w, "")
			return
		}
		ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
			UserID: id,
			Role:   r.Header.Get("X-Test-Role"),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
