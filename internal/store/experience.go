package store

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceExperience = "experience"

// Experience returns work history, latest start date first.
func (s *Store) Experience(ctx context.Context) ([]models.Experience, error) {
	return list[models.Experience](ctx, s.db, resourceExperience,
		orderBy("start_date DESC", "id DESC"))
}

func (s *Store) ExperienceByID(ctx context.Context, id uint) (*models.Experience, error) {
	return get[models.Experience](ctx, s.db, resourceExperience, id)
}

func (s *Store) CreateExperience(ctx context.Context, exp *models.Experience) error {
	return create(ctx, s.db, resourceExperience, exp)
}

func (s *Store) UpdateExperience(ctx context.Context, id uint, changes map[string]any) (*models.Experience, error) {
	return update[models.Experience](ctx, s.db, resourceExperience, id, changes)
}

func (s *Store) DeleteExperience(ctx context.Context, id uint) (bool, error) {
	return remove[models.Experience](ctx, s.db, resourceExperience, id)
}
