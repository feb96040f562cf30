// AngelaMos | 2026
// helpers_test.go

package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type memRepo struct {
	mu     sync.Mutex
	nextID int64
	subs   map[int64]Subscription
}

func newMemRepo() *memRepo {
	return &memRepo{subs: map[int64]Subscription{}}
}

func (m *memRepo) Create(_ context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = s.StartDate
	s.UpdatedAt = s.StartDate
	m.subs[s.ID] = *s
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.subs[id]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	return &s, nil
}

func (m *memRepo) End(_ context.Context, s *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[s.ID]; !ok {
		return fmt.Errorf("end subscription: %w", core.ErrNotFound)
	}
	s.UpdatedAt = *s.EndDate
	m.subs[s.ID] = *s
	return nil
}

func (m *memRepo) ListByStudent(_ context.Context, studentID int64) ([]Subscription, error) {
	return m.filter(func(s Subscription) bool { return s.StudentID == studentID }), nil
}

func (m *memRepo) ListByTutor(_ context.Context, tutorID int64) ([]Subscription, error) {
	return m.filter(func(s Subscription) bool { return s.TutorID == tutorID }), nil
}

func (m *memRepo) filter(keep func(Subscription) bool) []Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Subscription{}
	for id := int64(1); id <= m.nextID; id++ {
		if s, ok := m.subs[id]; ok && keep(s) {
			out = append(out, s)
		}
	}
	return out
}

type roleMap map[int64]string

func (r roleMap) RoleOf(_ context.Context, id int64) (string, error) {
	role, ok := r[id]
	if !ok {
		return "", fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return role, nil
}

var (
	tutor        = core.Actor{UserID: 10, Role: core.RoleTutor}
	otherTutor   = core.Actor{UserID: 11, Role: core.RoleTutor}
	student      = core.Actor{UserID: 20, Role: core.RoleStudent}
	otherStudent = core.Actor{UserID: 21, Role: core.RoleStudent}
	admin        = core.Actor{UserID: 1, Role: core.RoleSuperAdmin}
)

// clock is a fake time source that moves forward one minute per call.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(repo, roleMap{
		tutor.UserID:        tutor.Role,
		otherTutor.UserID:   otherTutor.Role,
		student.UserID:      student.Role,
		otherStudent.UserID: otherStudent.Role,
		admin.UserID:        admin.Role,
	})

	c := &clock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	svc.now = c.now
	return svc, repo
}
