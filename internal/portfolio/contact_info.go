package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

// ContactInfo returns the live contact info row, or nil before the first
// update.
func (s *Service) ContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	return cachedRead(s, "contactInfo.get", cacheKey(ResourceContactInfo, "get"), func() (*models.ContactInfo, error) {
		return s.store.ContactInfo(ctx)
	})
}

// UpdateContactInfo creates the contact info row on first use, filling gaps
// with defaults, and partially updates it afterwards.
func (s *Service) UpdateContactInfo(ctx context.Context, in schema.UpdateContactInfoInput) (*models.ContactInfo, error) {
	const op = "contactInfo.update"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	info, err := s.store.UpsertContactInfo(ctx, in.NewContactInfo(), in.Changes())
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceContactInfo)
	return info, nil
}
