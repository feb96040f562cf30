// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateCategoryRequest,
) (_ *Category, err error) {
	ctx, span := core.StartSpan(ctx, "category.Create")
	defer func() { core.EndSpan(span, err) }()

	c := &Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateCategoryRequest,
) (_ *Category, err error) {
	ctx, span := core.StartSpan(ctx, "category.Update",
		attribute.Int64("category.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := core.StartSpan(ctx, "category.Delete",
		attribute.Int64("category.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	return s.repo.Delete(ctx, id)
}
