// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

// RoleLookup resolves the role of a user.
type RoleLookup interface {
	RoleOf(ctx context.Context, id int64) (string, error)
}

type Service struct {
	repo  Repository
	roles RoleLookup
	now   func() time.Time
}

func NewService(repo Repository, roles RoleLookup) *Service {
	return &Service{
		repo:  repo,
		roles: roles,
		now:   time.Now,
	}
}

// Subscribe starts a subscription of studentID to tutorID. The two users
// must hold the student and tutor roles.
func (s *Service) Subscribe(
	ctx context.Context,
	actor core.Actor,
	studentID, tutorID int64,
) (_ *Subscription, err error) {
	ctx, span := core.StartSpan(ctx, "subscription.Subscribe",
		attribute.Int64("student.id", studentID),
		attribute.Int64("tutor.id", tutorID),
	)
	defer func() { core.EndSpan(span, err) }()

	if !actor.CanManage(studentID) {
		return nil, fmt.Errorf("subscribe: %w", core.ErrForbidden)
	}

	verr := &core.ValidationError{}
	if err := s.expectRole(ctx, studentID, core.RoleStudent, "student_id", verr); err != nil {
		return nil, err
	}
	if err := s.expectRole(ctx, tutorID, core.RoleTutor, "tutor_id", verr); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	sub := &Subscription{
		StudentID: studentID,
		TutorID:   tutorID,
		StartDate: s.now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) expectRole(
	ctx context.Context,
	id int64,
	role, field string,
	verr *core.ValidationError,
) error {
	got, err := s.roles.RoleOf(ctx, id)
	if err != nil {
		return err
	}
	if got != role {
		verr.Add(field, "must reference a user with role "+role)
	}
	return nil
}

// End closes an active subscription. Ending twice keeps the first end
// date.
func (s *Service) End(ctx context.Context, actor core.Actor, id int64) (_ *Subscription, err error) {
	ctx, span := core.StartSpan(ctx, "subscription.End",
		attribute.Int64("subscription.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanManage(sub.StudentID) && !actor.Owns(sub.TutorID) {
		return nil, fmt.Errorf("end subscription: %w", core.ErrForbidden)
	}

	if !sub.Active() {
		return sub, nil
	}

	end := s.now().UTC()
	sub.EndDate = &end
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.End(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID int64) ([]Subscription, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) ListForTutor(ctx context.Context, tutorID int64) ([]Subscription, error) {
	return s.repo.ListByTutor(ctx, tutorID)
}

// ListMine returns the subscriptions the actor takes part in, on the
// side that matches their role.
func (s *Service) ListMine(ctx context.Context, actor core.Actor) ([]Subscription, error) {
	if actor.IsTutor() {
		return s.ListForTutor(ctx, actor.UserID)
	}
	return s.ListForStudent(ctx, actor.UserID)
}
