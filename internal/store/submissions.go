package store

import (
	"context"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceSubmission = "contact submission"

func (s *Store) ContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return list[models.ContactSubmission](ctx, s.db, resourceSubmission, newestFirst)
}

func (s *Store) UnreadContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	return list[models.ContactSubmission](ctx, s.db, resourceSubmission,
		where("is_read = ?", false), newestFirst)
}

func (s *Store) ContactSubmission(ctx context.Context, id uint) (*models.ContactSubmission, error) {
	return get[models.ContactSubmission](ctx, s.db, resourceSubmission, id)
}

func (s *Store) CreateContactSubmission(ctx context.Context, sub *models.ContactSubmission) error {
	return create(ctx, s.db, resourceSubmission, sub)
}

// MarkContactSubmissionRead flags the submission as read. Marking an already
// read submission succeeds without writing.
func (s *Store) MarkContactSubmissionRead(ctx context.Context, id uint) (*models.ContactSubmission, error) {
	sub, err := s.ContactSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.IsRead {
		return sub, nil
	}
	return update[models.ContactSubmission](ctx, s.db, resourceSubmission, id, map[string]any{"is_read": true})
}
