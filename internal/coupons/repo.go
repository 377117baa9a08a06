package coupons

import (
	"context"
	"errors"
	"strings"

	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates Coupons table persistence.
type Repository struct {
	table *rowstore.Table[models.Coupon]
}

// NewRepository binds the repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		table: rowstore.NewTable[models.Coupon](db, rowstore.Spec{KeyColumn: "code"}),
	}
}

// Append adds one coupon row.
func (r *Repository) Append(ctx context.Context, row *models.Coupon) error {
	return r.table.Append(ctx, row)
}

// Delete removes the first row matching code.
func (r *Repository) Delete(ctx context.Context, code string) error {
	return r.table.DeleteByKey(ctx, code)
}

// FindByNormalizedCode matches codes upper-cased and trimmed on both sides.
func (r *Repository) FindByNormalizedCode(ctx context.Context, code string) (*models.Coupon, error) {
	conn, err := r.table.DB(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Coupon
	err = conn.
		Where("UPPER(TRIM(code)) = ?", strings.ToUpper(strings.TrimSpace(code))).
		Order("seq ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rowstore.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ListActive returns active coupon rows in append order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Coupon, error) {
	conn, err := r.table.DB(ctx)
	if err != nil {
		return nil, err
	}
	var rows []models.Coupon
	err = conn.
		Where("active = ?", true).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
