package users

import (
	"context"
	"errors"
	"strings"

	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates Users table persistence.
type Repository struct {
	table *rowstore.Table[models.User]
}

// NewRepository binds the repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		table: rowstore.NewTable[models.User](db, rowstore.Spec{KeyColumn: "user_id"}),
	}
}

// Append adds one user row at the end of the table. No uniqueness check is
// performed here; the service pre-checks emails.
func (r *Repository) Append(ctx context.Context, row *models.User) error {
	return r.table.Append(ctx, row)
}

// Find returns the first row keyed by userID.
func (r *Repository) Find(ctx context.Context, userID string) (*models.User, error) {
	return r.table.FindByKey(ctx, userID)
}

// UpdateFields partially overwrites the row keyed by userID.
func (r *Repository) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	return r.table.UpdateFields(ctx, userID, fields)
}

// EmailExists reports whether any row holds the email, compared
// case-insensitively.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	conn, err := r.table.DB(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	err = conn.Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByCredentials returns the first row matching email (case-insensitive)
// and the exact password hash, or rowstore.ErrNotFound.
func (r *Repository) FindByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error) {
	conn, err := r.table.DB(ctx)
	if err != nil {
		return nil, err
	}
	var row models.User
	err = conn.
		Where("LOWER(email) = ? AND password_hash = ?", strings.ToLower(email), passwordHash).
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
