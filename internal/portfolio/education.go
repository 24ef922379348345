package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

func (s *Service) Education(ctx context.Context) ([]models.Education, error) {
	return cachedRead(s, "education.list", cacheKey(ResourceEducation, "list"), func() ([]models.Education, error) {
		return s.store.Education(ctx)
	})
}

func (s *Service) EducationByID(ctx context.Context, in schema.IDInput) (*models.Education, error) {
	const op = "education.get"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	return cachedRead(s, op, cacheKey(ResourceEducation, "get", in.ID), func() (*models.Education, error) {
		return s.store.EducationByID(ctx, in.ID)
	})
}

func (s *Service) CreateEducation(ctx context.Context, in schema.CreateEducationInput) (*models.Education, error) {
	const op = "education.create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	edu := in.Model()
	if err := s.store.CreateEducation(ctx, &edu); err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceEducation)
	return &edu, nil
}

func (s *Service) UpdateEducation(ctx context.Context, in schema.UpdateEducationInput) (*models.Education, error) {
	const op = "education.update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	edu, err := s.store.UpdateEducation(ctx, in.ID, in.Changes())
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceEducation)
	return edu, nil
}

func (s *Service) DeleteEducation(ctx context.Context, in schema.IDInput) (schema.DeleteResult, error) {
	const op = "education.delete"
	if err := s.validate(op, in); err != nil {
		return schema.DeleteResult{}, err
	}
	ok, err := s.store.DeleteEducation(ctx, in.ID)
	if err != nil {
		return schema.DeleteResult{}, s.fail(op, err)
	}
	if ok {
		s.changed(ResourceEducation)
	}
	return schema.DeleteResult{Success: ok}, nil
}
