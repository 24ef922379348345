package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type scope = func(*gorm.DB) *gorm.DB

func list[T any](ctx context.Context, db *gorm.DB, resource string, scopes ...scope) ([]T, error) {
	rows := []T{}
	if err := db.WithContext(ctx).Scopes(scopes...).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}
	return rows, nil
}

func get[T any](ctx context.Context, db *gorm.DB, resource string, id uint) (*T, error) {
	var row T
	err := db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: resource, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", resource, id, err)
	}
	return &row, nil
}

func create[T any](ctx context.Context, db *gorm.DB, resource string, row *T) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", resource, err)
	}
	return nil
}

// update writes only the columns in changes. With no changes the current
// row is returned untouched.
func update[T any](ctx context.Context, db *gorm.DB, resource string, id uint, changes map[string]any) (*T, error) {
	row, err := get[T](ctx, db, resource, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return row, nil
	}
	if err := db.WithContext(ctx).Model(row).Updates(inUTC(changes)).Error; err != nil {
		return nil, fmt.Errorf("update %s %d: %w", resource, id, err)
	}
	return get[T](ctx, db, resource, id)
}

func inUTC(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		switch t := v.(type) {
		case time.Time:
			v = t.UTC()
		case *time.Time:
			if t != nil {
				v = t.UTC()
			}
		}
		out[k] = v
	}
	return out
}

// remove reports whether a row was actually deleted. A missing id is not an
// error.
func remove[T any](ctx context.Context, db *gorm.DB, resource string, id uint) (bool, error) {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, fmt.Errorf("delete %s %d: %w", resource, id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func orderBy(columns ...string) scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range columns {
			db = db.Order(c)
		}
		return db
	}
}

func where(query string, args ...any) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}
