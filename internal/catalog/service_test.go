package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swarnimjewels/storefront-backend/internal/coupons"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
)

func newTestCatalogService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Coupons: coupons.NewRepository(conn),
		Logger:  logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc, repo
}

func TestProductLifecycle(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, ProductInput{
		ID:          "P1",
		Name:        "Gold Ring",
		Description: "22k",
		Price:       decimal.NewFromInt(2500),
		Category:    "Rings",
	}))

	// Update replaces the whole row; omitted fields blank out.
	require.NoError(t, svc.UpdateProduct(ctx, ProductInput{
		ID:    "P1",
		Name:  "Gold Ring (new)",
		Price: decimal.NewFromInt(2600),
	}))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Products, 1)
	require.Equal(t, "Gold Ring (new)", snapshot.Products[0].Name)
	require.Equal(t, "", snapshot.Products[0].Description)

	require.NoError(t, svc.DeleteProduct(ctx, "P1"))

	err = svc.UpdateProduct(ctx, ProductInput{ID: "P1"})
	require.Equal(t, "Product not found.", pkgerrors.As(err).Message())
	err = svc.DeleteProduct(ctx, "P1")
	require.Equal(t, "Product not found.", pkgerrors.As(err).Message())
}

func TestCategoryDeleteMatchesTrimmed(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddCategory(ctx, "  Rings "))
	require.NoError(t, svc.DeleteCategory(ctx, "Rings"))

	err := svc.DeleteCategory(ctx, "Rings")
	require.Equal(t, "Category not found.", pkgerrors.As(err).Message())
}

func TestBannerDelete(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddBanner(ctx, BannerInput{ID: "B1", Active: true}))
	require.NoError(t, svc.DeleteBanner(ctx, "B1"))

	err := svc.DeleteBanner(ctx, "B1")
	require.Equal(t, "Banner not found.", pkgerrors.As(err).Message())
}

func TestSnapshotAssembly(t *testing.T) {
	svc, repo := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, repo.AppendProduct(ctx, &models.Product{ID: "", Name: "keyless row"}))
	require.NoError(t, repo.AppendProduct(ctx, &models.Product{ID: "P1", Name: "Ring"}))
	require.NoError(t, repo.AppendCategory(ctx, &models.Category{Name: " Rings  "}))
	require.NoError(t, repo.AppendCategory(ctx, &models.Category{Name: "   "}))
	require.NoError(t, repo.AppendBanner(ctx, &models.Banner{ID: "B1", Active: false}))

	require.NoError(t, svc.AddCoupon(ctx, CouponInput{
		Code:            " save10 ",
		DiscountPercent: decimal.NewFromInt(10),
		Active:          true,
	}))
	require.NoError(t, svc.AddCoupon(ctx, CouponInput{Code: "DEAD", Active: false}))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	require.Len(t, snapshot.Products, 1, "rows without a key are skipped")
	require.Equal(t, []string{"Rings"}, snapshot.Categories)

	// Banners are served inactive included; coupons are pre-filtered.
	require.Len(t, snapshot.Banners, 1)
	require.False(t, snapshot.Banners[0].Active)
	require.Len(t, snapshot.Coupons, 1)
	require.Equal(t, "SAVE10", snapshot.Coupons[0].Code)
}

func TestCouponDelete(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddCoupon(ctx, CouponInput{Code: "SAVE10", Active: true}))
	require.NoError(t, svc.DeleteCoupon(ctx, "save10"))

	err := svc.DeleteCoupon(ctx, "SAVE10")
	require.Equal(t, "Invalid coupon code.", pkgerrors.As(err).Message())
}
