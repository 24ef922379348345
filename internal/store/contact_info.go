package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aTrapDeer/portfolio-backend/internal/models"
)

const resourceContactInfo = "contact info"

// ContactInfo returns the most recently created row, or nil when none exists.
func (s *Store) ContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	var row models.ContactInfo
	err := s.db.WithContext(ctx).Scopes(newestFirst).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", resourceContactInfo, err)
	}
	return &row, nil
}

// UpsertContactInfo inserts initial when the table is empty. Otherwise it
// applies changes to the live row and refreshes updated_at.
//
// Two concurrent calls against an empty table can both insert; there is no
// uniqueness constraint to stop them.
func (s *Store) UpsertContactInfo(ctx context.Context, initial models.ContactInfo, changes map[string]any) (*models.ContactInfo, error) {
	current, err := s.ContactInfo(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		if err := create(ctx, s.db, resourceContactInfo, &initial); err != nil {
			return nil, err
		}
		return &initial, nil
	}

	withTimestamp := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		withTimestamp[k] = v
	}
	withTimestamp["updated_at"] = s.db.NowFunc()
	return update[models.ContactInfo](ctx, s.db, resourceContactInfo, current.ID, withTimestamp)
}
