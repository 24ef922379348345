package store

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceEducation = "education"

// Education returns entries with the most recent start date first.
func (s *Store) Education(ctx context.Context) ([]models.Education, error) {
	return list[models.Education](ctx, s.db, resourceEducation,
		orderBy("start_date DESC", "id DESC"))
}

func (s *Store) EducationByID(ctx context.Context, id uint) (*models.Education, error) {
	return get[models.Education](ctx, s.db, resourceEducation, id)
}

func (s *Store) CreateEducation(ctx context.Context, edu *models.Education) error {
	return create(ctx, s.db, resourceEducation, edu)
}

func (s *Store) UpdateEducation(ctx context.Context, id uint, changes map[string]any) (*models.Education, error) {
	return update[models.Education](ctx, s.db, resourceEducation, id, changes)
}

func (s *Store) DeleteEducation(ctx context.Context, id uint) (bool, error) {
	return remove[models.Education](ctx, s.db, resourceEducation, id)
}
