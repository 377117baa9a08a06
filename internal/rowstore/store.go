// Package rowstore provides the row-table discipline shared by every table in
// the storefront: append at the end, look rows up by the key column with a
// first-match scan, partially or fully overwrite a located row, and delete by
// key. Tables are created idempotently on first access. The store performs no
// uniqueness or validation checks; callers own those. Concurrent writers are
// not coordinated beyond per-statement database guarantees, so two updates to
// the same key race and the later write wins.
package rowstore

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

// ErrNotFound reports a key lookup miss. It is a normal outcome, not fatal.
var ErrNotFound = errors.New("rowstore: row not found")

// Sequenced is implemented by every row model; Seq preserves append order.
type Sequenced interface {
	RowSeq() int64
}

// Spec fixes the physical layout of one table.
type Spec struct {
	// KeyColumn is the TEXT column holding the record key (the first field of
	// the logical row). Keys compare as strings.
	KeyColumn string
}

// Table is a typed row table over the shared connection.
type Table[T Sequenced] struct {
	db   *gorm.DB
	spec Spec

	migrateOnce sync.Once
	migrateErr  error
}

// NewTable binds a table to the shared connection.
func NewTable[T Sequenced](db *gorm.DB, spec Spec) *Table[T] {
	return &Table[T]{db: db, spec: spec}
}

// ensure creates the table with its column layout on first access. Safe to
// call repeatedly.
func (t *Table[T]) ensure(ctx context.Context) error {
	t.migrateOnce.Do(func() {
		var model T
		t.migrateErr = t.db.WithContext(ctx).AutoMigrate(&model)
	})
	return t.migrateErr
}

// Append adds one row at the end of the table.
func (t *Table[T]) Append(ctx context.Context, row *T) error {
	if err := t.ensure(ctx); err != nil {
		return err
	}
	return t.db.WithContext(ctx).Create(row).Error
}

// FindByKey returns the first row whose key column matches, in append order.
func (t *Table[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}
	var row T
	err := t.db.WithContext(ctx).
		Where(t.spec.KeyColumn+" = ?", key).
		Order("seq ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Scan returns every row in append order.
func (t *Table[T]) Scan(ctx context.Context) ([]T, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}
	var rows []T
	if err := t.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFields overwrites only the given columns of the first row matching
// key, leaving the rest of the row untouched.
func (t *Table[T]) UpdateFields(ctx context.Context, key string, fields map[string]any) error {
	row, err := t.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	var model T
	return t.db.WithContext(ctx).
		Model(&model).
		Where("seq = ?", (*row).RowSeq()).
		Updates(fields).Error
}

// Replace overwrites the whole row located by key with the provided values,
// zero values included. Used where the wire contract replaces all fields as
// one row write.
func (t *Table[T]) Replace(ctx context.Context, key string, row *T) error {
	existing, err := t.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	return t.db.WithContext(ctx).
		Model(row).
		Select("*").
		Omit("seq").
		Where("seq = ?", (*existing).RowSeq()).
		Updates(row).Error
}

// DeleteByKey removes the first row matching key.
func (t *Table[T]) DeleteByKey(ctx context.Context, key string) error {
	row, err := t.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	var model T
	return t.db.WithContext(ctx).
		Where("seq = ?", (*row).RowSeq()).
		Delete(&model).Error
}

// DB exposes the bound connection for table-specific queries that go beyond
// the generic contract (filtered scans and the like). It still runs the
// first-access migration.
func (t *Table[T]) DB(ctx context.Context) (*gorm.DB, error) {
	if err := t.ensure(ctx); err != nil {
		return nil, err
	}
	return t.db.WithContext(ctx), nil
}
