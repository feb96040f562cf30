// AngelaMos | 2026
// helpers_test.go

package learning

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type memRepo struct {
	mu          sync.Mutex
	nextID      int64
	enrollments map[int64]Enrollment
	reviews     []Review
	content     map[int64]Content
}

func newMemRepo() *memRepo {
	return &memRepo{
		enrollments: map[int64]Enrollment{},
		content:     map[int64]Content{},
	}
}

func (m *memRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memRepo) CreateEnrollment(_ context.Context, e *Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = m.id()
	e.EnrolledAt = time.Now()
	m.enrollments[e.ID] = *e
	return nil
}

func (m *memRepo) GetEnrollment(_ context.Context, id int64) (*Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.enrollments[id]
	if !ok {
		return nil, fmt.Errorf("get enrollment: %w", core.ErrNotFound)
	}
	return &e, nil
}

func (m *memRepo) CompleteEnrollment(_ context.Context, e *Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enrollments[e.ID] = *e
	return nil
}

func (m *memRepo) listEnrollments(match func(Enrollment) bool) []Enrollment {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Enrollment{}
	for id := int64(1); id <= m.nextID; id++ {
		if e, ok := m.enrollments[id]; ok && match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memRepo) ListEnrollmentsByCourse(_ context.Context, courseID int64) ([]Enrollment, error) {
	return m.listEnrollments(func(e Enrollment) bool { return e.CourseID == courseID }), nil
}

func (m *memRepo) ListEnrollmentsByStudent(_ context.Context, studentID int64) ([]Enrollment, error) {
	return m.listEnrollments(func(e Enrollment) bool { return e.StudentID == studentID }), nil
}

func (m *memRepo) CreateReview(_ context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = m.id()
	r.CreatedAt = time.Now()
	m.reviews = append(m.reviews, *r)
	return nil
}

func (m *memRepo) ListReviews(_ context.Context, courseID int64) ([]Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Review{}
	for _, r := range m.reviews {
		if r.CourseID == courseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) CreateContent(_ context.Context, c *Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.id()
	c.CreatedAt = time.Now()
	m.content[c.ID] = *c
	return nil
}

func (m *memRepo) GetContent(_ context.Context, id int64) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.content[id]
	if !ok {
		return nil, fmt.Errorf("get content: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (m *memRepo) ListContent(_ context.Context, courseID int64) ([]Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Content{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.content[id]; ok && c.CourseID == courseID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteContent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.content[id]; !ok {
		return fmt.Errorf("delete content: %w", core.ErrNotFound)
	}
	delete(m.content, id)
	return nil
}

// courseOwners maps course id to instructor id.
type courseOwners map[int64]int64

func (c courseOwners) InstructorOf(_ context.Context, courseID int64) (int64, error) {
	id, ok := c[courseID]
	if !ok {
		return 0, fmt.Errorf("get course: %w", core.ErrNotFound)
	}
	return id, nil
}

var (
	tutor   = core.Actor{UserID: 10, Role: core.RoleTutor}
	student = core.Actor{UserID: 20, Role: core.RoleStudent}
	admin   = core.Actor{UserID: 1, Role: core.RoleSuperAdmin}
)

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, courseOwners{100: tutor.UserID}), repo
}

func strPtr(s string) *string { return &s }
