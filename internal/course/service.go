// AngelaMos | 2026
// service.go

package course

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Course, error) {
	return s.repo.GetByID(ctx, id)
}

// InstructorOf returns the id of the tutor teaching courseID.
func (s *Service) InstructorOf(ctx context.Context, courseID int64) (int64, error) {
	c, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return c.InstructorID, nil
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreateCourseRequest,
) (_ *Course, err error) {
	ctx, span := core.StartSpan(ctx, "course.Create",
		attribute.Int64("course.instructor_id", req.InstructorID),
		attribute.Int64("course.category_id", req.CategoryID),
	)
	defer func() { core.EndSpan(span, err) }()

	if !canPublish(actor, req.InstructorID) {
		return nil, fmt.Errorf("create course: %w", core.ErrForbidden)
	}

	c := &Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		CategoryID:   req.CategoryID,
	}
	if req.Price != nil {
		c.Price = *req.Price
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor core.Actor,
	id int64,
	req UpdateCourseRequest,
) (_ *Course, err error) {
	ctx, span := core.StartSpan(ctx, "course.Update",
		attribute.Int64("course.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canPublish(actor, c.InstructorID) {
		return nil, fmt.Errorf("update course: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.CategoryID != nil {
		c.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		c.Price = *req.Price
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, actor core.Actor, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, "course.Delete",
		attribute.Int64("course.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canPublish(actor, c.InstructorID) {
		return fmt.Errorf("delete course: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}
