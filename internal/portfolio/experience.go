package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

func (s *Service) Experience(ctx context.Context) ([]models.Experience, error) {
	return cachedRead(s, "experience.list", cacheKey(ResourceExperience, "list"), func() ([]models.Experience, error) {
		return s.store.Experience(ctx)
	})
}

func (s *Service) ExperienceByID(ctx context.Context, in schema.IDInput) (*models.Experience, error) {
	const op = "experience.get"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	return cachedRead(s, op, cacheKey(ResourceExperience, "get", in.ID), func() (*models.Experience, error) {
		return s.store.ExperienceByID(ctx, in.ID)
	})
}

// CreateExperience does not check that a current position has no end date.
func (s *Service) CreateExperience(ctx context.Context, in schema.CreateExperienceInput) (*models.Experience, error) {
	const op = "experience.create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	exp := in.Model()
	if err := s.store.CreateExperience(ctx, &exp); err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceExperience)
	return &exp, nil
}

func (s *Service) UpdateExperience(ctx context.Context, in schema.UpdateExperienceInput) (*models.Experience, error) {
	const op = "experience.update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	exp, err := s.store.UpdateExperience(ctx, in.ID, in.Changes())
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceExperience)
	return exp, nil
}

func (s *Service) DeleteExperience(ctx context.Context, in schema.IDInput) (schema.DeleteResult, error) {
	const op = "experience.delete"
	if err := s.validate(op, in); err != nil {
		return schema.DeleteResult{}, err
	}
	ok, err := s.store.DeleteExperience(ctx, in.ID)
	if err != nil {
		return schema.DeleteResult{}, s.fail(op, err)
	}
	if ok {
		s.changed(ResourceExperience)
	}
	return schema.DeleteResult{Success: ok}, nil
}
