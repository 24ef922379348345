package store

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceProject = "project"

var newestFirst = orderBy("created_at DESC", "id DESC")

func (s *Store) Projects(ctx context.Context) ([]models.Project, error) {
	return list[models.Project](ctx, s.db, resourceProject, newestFirst)
}

func (s *Store) FeaturedProjects(ctx context.Context) ([]models.Project, error) {
	return list[models.Project](ctx, s.db, resourceProject,
		where("is_featured = ?", true), newestFirst)
}

func (s *Store) Project(ctx context.Context, id uint) (*models.Project, error) {
	return get[models.Project](ctx, s.db, resourceProject, id)
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return create(ctx, s.db, resourceProject, p)
}

func (s *Store) UpdateProject(ctx context.Context, id uint, changes map[string]any) (*models.Project, error) {
	return update[models.Project](ctx, s.db, resourceProject, id, changes)
}

func (s *Store) DeleteProject(ctx context.Context, id uint) (bool, error) {
	return remove[models.Project](ctx, s.db, resourceProject, id)
}
