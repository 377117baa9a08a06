package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository spans the three catalog tables: Products, Categories, Banners.
type Repository struct {
	products   *rowstore.Table[models.Product]
	categories *rowstore.Table[models.Category]
	banners    *rowstore.Table[models.Banner]
}

// NewRepository binds the repository to the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		products:   rowstore.NewTable[models.Product](db, rowstore.Spec{KeyColumn: "id"}),
		categories: rowstore.NewTable[models.Category](db, rowstore.Spec{KeyColumn: "name"}),
		banners:    rowstore.NewTable[models.Banner](db, rowstore.Spec{KeyColumn: "id"}),
	}
}

// AppendProduct adds one product row. Product ids are never uniqueness-checked.
func (r *Repository) AppendProduct(ctx context.Context, row *models.Product) error {
	return r.products.Append(ctx, row)
}

// ReplaceProduct overwrites all fields of the first row matching id as one
// row write, in contrast with the partial updates used for user rows.
func (r *Repository) ReplaceProduct(ctx context.Context, id string, row *models.Product) error {
	return r.products.Replace(ctx, id, row)
}

// DeleteProduct removes the first row matching id.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return r.products.DeleteByKey(ctx, id)
}

// ListProducts returns all product rows in append order.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return r.products.Scan(ctx)
}

// AppendCategory adds one category row.
func (r *Repository) AppendCategory(ctx context.Context, row *models.Category) error {
	return r.categories.Append(ctx, row)
}

// DeleteCategory removes the first row whose trimmed name matches.
func (r *Repository) DeleteCategory(ctx context.Context, name string) error {
	conn, err := r.categories.DB(ctx)
	if err != nil {
		return err
	}
	var row models.Category
	err = conn.
		Where("TRIM(name) = ?", strings.TrimSpace(name)).
		Order("seq ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rowstore.ErrNotFound
		}
		return err
	}
	return conn.Where("seq = ?", row.Seq).Delete(&models.Category{}).Error
}

// ListCategories returns all category rows in append order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return r.categories.Scan(ctx)
}

// AppendBanner adds one banner row.
func (r *Repository) AppendBanner(ctx context.Context, row *models.Banner) error {
	return r.banners.Append(ctx, row)
}

// DeleteBanner removes the first row matching id.
func (r *Repository) DeleteBanner(ctx context.Context, id string) error {
	return r.banners.DeleteByKey(ctx, id)
}

// ListBanners returns all banner rows in append order, active or not.
func (r *Repository) ListBanners(ctx context.Context) ([]models.Banner, error) {
	return r.banners.Scan(ctx)
}
