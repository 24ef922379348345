package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

func (s *Service) Projects(ctx context.Context) ([]models.Project, error) {
	return cachedRead(s, "projects.list", cacheKey(ResourceProjects, "list"), func() ([]models.Project, error) {
		return s.store.Projects(ctx)
	})
}

func (s *Service) FeaturedProjects(ctx context.Context) ([]models.Project, error) {
	return cachedRead(s, "projects.listFeatured", cacheKey(ResourceProjects, "featured"), func() ([]models.Project, error) {
		return s.store.FeaturedProjects(ctx)
	})
}

func (s *Service) Project(ctx context.Context, in schema.IDInput) (*models.Project, error) {
	const op = "projects.get"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	return cachedRead(s, op, cacheKey(ResourceProjects, "get", in.ID), func() (*models.Project, error) {
		return s.store.Project(ctx, in.ID)
	})
}

func (s *Service) CreateProject(ctx context.Context, in schema.CreateProjectInput) (*models.Project, error) {
	const op = "projects.create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	p := in.Model()
	if err := s.store.CreateProject(ctx, &p); err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceProjects)
	return &p, nil
}

func (s *Service) UpdateProject(ctx context.Context, in schema.UpdateProjectInput) (*models.Project, error) {
	const op = "projects.update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	p, err := s.store.UpdateProject(ctx, in.ID, in.Changes())
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceProjects)
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, in schema.IDInput) (schema.DeleteResult, error) {
	const op = "projects.delete"
	if err := s.validate(op, in); err != nil {
		return schema.DeleteResult{}, err
	}
	ok, err := s.store.DeleteProject(ctx, in.ID)
	if err != nil {
		return schema.DeleteResult{}, s.fail(op, err)
	}
	if ok {
		s.changed(ResourceProjects)
	}
	return schema.DeleteResult{Success: ok}, nil
}
