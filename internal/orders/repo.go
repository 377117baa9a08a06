package orders

import (
	"context"

	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates Orders table persistence.
type Repository struct {
	table *rowstore.Table[models.Order]
}

// NewRepository binds the repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		table: rowstore.NewTable[models.Order](db, rowstore.Spec{KeyColumn: "order_id"}),
	}
}

// Append adds one order row at the end of the table.
func (r *Repository) Append(ctx context.Context, row *models.Order) error {
	return r.table.Append(ctx, row)
}

// ListByUser returns a user's orders most-recently-appended first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	conn, err := r.table.DB(ctx)
	if err != nil {
		return nil, err
	}
	var rows []models.Order
	err = conn.
		Where("user_id = ?", userID).
		Order("seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
