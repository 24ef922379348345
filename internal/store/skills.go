package store

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceSkill = "skill"

// Skills returns every skill grouped by category, strongest first.
func (s *Store) Skills(ctx context.Context) ([]models.Skill, error) {
	return list[models.Skill](ctx, s.db, resourceSkill,
		orderBy("category ASC", "proficiency_level DESC", "id ASC"))
}

// FeaturedSkills returns featured skills, strongest first.
func (s *Store) FeaturedSkills(ctx context.Context) ([]models.Skill, error) {
	return list[models.Skill](ctx, s.db, resourceSkill,
		where("is_featured = ?", true),
		orderBy("proficiency_level DESC", "category ASC", "id ASC"))
}

func (s *Store) Skill(ctx context.Context, id uint) (*models.Skill, error) {
	return get[models.Skill](ctx, s.db, resourceSkill, id)
}

func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return create(ctx, s.db, resourceSkill, skill)
}

func (s *Store) UpdateSkill(ctx context.Context, id uint, changes map[string]any) (*models.Skill, error) {
	return update[models.Skill](ctx, s.db, resourceSkill, id, changes)
}

func (s *Store) DeleteSkill(ctx context.Context, id uint) (bool, error) {
	return remove[models.Skill](ctx, s.db, resourceSkill, id)
}
