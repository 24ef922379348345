package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

func (s *Service) Skills(ctx context.Context) ([]models.Skill, error) {
	return cachedRead(s, "skills.list", cacheKey(ResourceSkills, "list"), func() ([]models.Skill, error) {
		return s.store.Skills(ctx)
	})
}

func (s *Service) FeaturedSkills(ctx context.Context) ([]models.Skill, error) {
	return cachedRead(s, "skills.listFeatured", cacheKey(ResourceSkills, "featured"), func() ([]models.Skill, error) {
		return s.store.FeaturedSkills(ctx)
	})
}

func (s *Service) Skill(ctx context.Context, in schema.IDInput) (*models.Skill, error) {
	const op = "skills.get"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	return cachedRead(s, op, cacheKey(ResourceSkills, "get", in.ID), func() (*models.Skill, error) {
		return s.store.Skill(ctx, in.ID)
	})
}

func (s *Service) CreateSkill(ctx context.Context, in schema.CreateSkillInput) (*models.Skill, error) {
	const op = "skills.create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	skill := in.Model()
	if err := s.store.CreateSkill(ctx, &skill); err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceSkills)
	return &skill, nil
}

func (s *Service) UpdateSkill(ctx context.Context, in schema.UpdateSkillInput) (*models.Skill, error) {
	const op = "skills.update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	skill, err := s.store.UpdateSkill(ctx, in.ID, in.Changes())
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceSkills)
	return skill, nil
}

func (s *Service) DeleteSkill(ctx context.Context, in schema.IDInput) (schema.DeleteResult, error) {
	const op = "skills.delete"
	if err := s.validate(op, in); err != nil {
		return schema.DeleteResult{}, err
	}
	ok, err := s.store.DeleteSkill(ctx, in.ID)
	if err != nil {
		return schema.DeleteResult{}, s.fail(op, err)
	}
	if ok {
		s.changed(ResourceSkills)
	}
	return schema.DeleteResult{Success: ok}, nil
}
