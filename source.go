package gotable

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// Source loads the whole collection shown by a table.
type Source[T any] interface {
	Load(ctx context.Context) ([]T, error)
}

// SliceSource serves an in-memory collection.
type SliceSource[T any] []T

// Load - implements Source. Returns a copy of the slice.
func (s SliceSource[T]) Load(_ context.Context) ([]T, error) {
	return slices.Clone([]T(s)), nil
}

// GormSource loads a collection with gorm. Rows come in the natural order
// given by WithOrder; the table sorts them further in memory.
//
//	src := gotable.NewGormSource[Group](db.Where("organisation_id = ?", orgID)).
//		WithOrder(gotable.OrderBy{Column: "name", Direction: gotable.DirectionASC})
type GormSource[T any] struct {
	db     *gorm.DB
	order  Orderings
	scopes []func(*gorm.DB) *gorm.DB
}

// NewGormSource creates a source querying db. Use db.Table or db.Model to pick
// the table when T does not identify it, e.g. for Record rows.
func NewGormSource[T any](db *gorm.DB) *GormSource[T] {
	return &GormSource[T]{db: db}
}

// WithOrder appends natural orderings. A column ordered twice keeps only its
// latest direction, placed last.
func (s *GormSource[T]) WithOrder(orderBy ...OrderBy) *GormSource[T] {
	if s == nil {
		s = new(GormSource[T])
	}

	for _, o := range orderBy {
		s.order = slices.DeleteFunc(s.order, func(processed OrderBy) bool {
			return processed.Column == o.Column
		})
		s.order = append(s.order, o)
	}

	return s
}

// WithScopes adds gorm scopes applied on every Load.
func (s *GormSource[T]) WithScopes(scopes ...func(*gorm.DB) *gorm.DB) *GormSource[T] {
	if s == nil {
		s = new(GormSource[T])
	}

	s.scopes = append(s.scopes, scopes...)

	return s
}

// GetOrder returns orderings applied on Load.
func (s *GormSource[T]) GetOrder() Orderings {
	if s == nil {
		return nil
	}

	return s.order
}

// Load - implements Source.
func (s *GormSource[T]) Load(ctx context.Context) ([]T, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("cannot load entities: nil database")
	}

	if err := s.order.validate(); err != nil {
		return nil, fmt.Errorf("cannot load entities: %w", err)
	}

	db := s.order.Apply(s.db.WithContext(ctx).Scopes(s.scopes...))

	var records []T
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("cannot load entities: %w", err)
	}

	return records, nil
}

var (
	_ Source[Record] = SliceSource[Record](nil)
	_ Source[Record] = (*GormSource[Record])(nil)
)
