// AngelaMos | 2026
// service.go

package learning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

// CourseLookup resolves the tutor who owns a course.
type CourseLookup interface {
	InstructorOf(ctx context.Context, courseID int64) (int64, error)
}

type Service struct {
	repo    Repository
	courses CourseLookup
	now     func() time.Time
}

func NewService(repo Repository, courses CourseLookup) *Service {
	return &Service{
		repo:    repo,
		courses: courses,
		now:     time.Now,
	}
}

// Enroll signs a student up for a course. Students enroll themselves;
// super admins may enroll anyone.
func (s *Service) Enroll(
	ctx context.Context,
	actor core.Actor,
	req EnrollRequest,
) (_ *Enrollment, err error) {
	ctx, span := core.StartSpan(ctx, "learning.Enroll",
		attribute.Int64("course.id", req.CourseID),
	)
	defer func() { core.EndSpan(span, err) }()

	if !actor.CanManage(req.StudentID) {
		return nil, fmt.Errorf("enroll: %w", core.ErrForbidden)
	}

	e := &Enrollment{StudentID: req.StudentID, CourseID: req.CourseID}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEnrollment(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CompleteEnrollment marks the enrollment finished. Completing an already
// completed enrollment keeps the original completion date.
func (s *Service) CompleteEnrollment(
	ctx context.Context,
	actor core.Actor,
	id int64,
) (_ *Enrollment, err error) {
	ctx, span := core.StartSpan(ctx, "learning.CompleteEnrollment",
		attribute.Int64("enrollment.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	e, err := s.repo.GetEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanManage(e.StudentID) {
		return nil, fmt.Errorf("complete enrollment: %w", core.ErrForbidden)
	}

	if e.Completed {
		return e, nil
	}

	done := s.now().UTC()
	e.Completed = true
	e.CompletionDate = &done

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CompleteEnrollment(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// ListEnrollments returns the roster of a course to its tutor.
func (s *Service) ListEnrollments(
	ctx context.Context,
	actor core.Actor,
	courseID int64,
) ([]Enrollment, error) {
	if err := s.authorizeCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollmentsByCourse(ctx, courseID)
}

func (s *Service) ListStudentEnrollments(ctx context.Context, studentID int64) ([]Enrollment, error) {
	return s.repo.ListEnrollmentsByStudent(ctx, studentID)
}

func (s *Service) AddReview(
	ctx context.Context,
	actor core.Actor,
	req ReviewRequest,
) (_ *Review, err error) {
	ctx, span := core.StartSpan(ctx, "learning.AddReview",
		attribute.Int64("course.id", req.CourseID),
		attribute.Int("review.rating", req.Rating),
	)
	defer func() { core.EndSpan(span, err) }()

	if !actor.CanManage(req.StudentID) {
		return nil, fmt.Errorf("add review: %w", core.ErrForbidden)
	}

	r := &Review{
		Content:   strings.TrimSpace(core.PlainText(req.Content)),
		Rating:    req.Rating,
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) ListReviews(ctx context.Context, courseID int64) ([]Review, error) {
	return s.repo.ListReviews(ctx, courseID)
}

// AddContent attaches a lesson item to a course the actor teaches.
func (s *Service) AddContent(
	ctx context.Context,
	actor core.Actor,
	req ContentRequest,
) (_ *Content, err error) {
	ctx, span := core.StartSpan(ctx, "learning.AddContent",
		attribute.Int64("course.id", req.CourseID),
		attribute.String("content.type", req.ContentType),
	)
	defer func() { core.EndSpan(span, err) }()

	if err := s.authorizeCourse(ctx, actor, req.CourseID); err != nil {
		return nil, err
	}

	c := &Content{
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		FilePath:    req.FilePath,
		CourseID:    req.CourseID,
	}
	if req.TextContent != nil {
		text := core.RichText(*req.TextContent)
		c.TextContent = &text
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateContent(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListContent(ctx context.Context, courseID int64) ([]Content, error) {
	return s.repo.ListContent(ctx, courseID)
}

func (s *Service) DeleteContent(ctx context.Context, actor core.Actor, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, "learning.DeleteContent",
		attribute.Int64("content.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	c, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeCourse(ctx, actor, c.CourseID); err != nil {
		return err
	}

	return s.repo.DeleteContent(ctx, id)
}

func (s *Service) authorizeCourse(ctx context.Context, actor core.Actor, courseID int64) error {
	if actor.IsSuperAdmin() {
		return nil
	}

	instructorID, err := s.courses.InstructorOf(ctx, courseID)
	if err != nil {
		return err
	}

	if !actor.Owns(instructorID) {
		return fmt.Errorf("course %d: %w", courseID, core.ErrForbidden)
	}

	return nil
}
