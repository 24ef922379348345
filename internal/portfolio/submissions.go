package portfolio

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
	"github.com/aTrapDeer/portfolio-backend/internal/schema"
)

// Contact submission reads bypass the cache.

// CreateContactSubmission stores a message from the public contact form. The
// submission always starts unread.
func (s *Service) CreateContactSubmission(ctx context.Context, in schema.CreateContactSubmissionInput) (*models.ContactSubmission, error) {
	const op = "contactSubmissions.create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	sub := in.Model()
	if err := s.store.CreateContactSubmission(ctx, &sub); err != nil {
		return nil, s.fail(op, err)
	}
	s.logger.Info("contact submission received", "id", sub.ID)
	if s.submissions != nil {
		s.submissions.SubmissionReceived(sub)
	}
	s.changed(ResourceContactSubmissions)
	return &sub, nil
}

func (s *Service) ContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	subs, err := s.store.ContactSubmissions(ctx)
	if err != nil {
		return nil, s.fail("contactSubmissions.list", err)
	}
	return subs, nil
}

func (s *Service) UnreadContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	subs, err := s.store.UnreadContactSubmissions(ctx)
	if err != nil {
		return nil, s.fail("contactSubmissions.listUnread", err)
	}
	return subs, nil
}

func (s *Service) ContactSubmission(ctx context.Context, in schema.IDInput) (*models.ContactSubmission, error) {
	const op = "contactSubmissions.get"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	sub, err := s.store.ContactSubmission(ctx, in.ID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return sub, nil
}

// MarkContactSubmissionRead is idempotent.
func (s *Service) MarkContactSubmissionRead(ctx context.Context, in schema.IDInput) (*models.ContactSubmission, error) {
	const op = "contactSubmissions.markRead"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	sub, err := s.store.MarkContactSubmissionRead(ctx, in.ID)
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.changed(ResourceContactSubmissions)
	return sub, nil
}
