package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/coupons"
	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/redis"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
	"go.uber.org/multierr"
)

// SnapshotCache is the optional read-through cache in front of Snapshot.
// The catalog works identically without one; cache failures are logged and
// swallowed, never surfaced.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ProductInput carries all eight product fields; updates replace the whole row.
type ProductInput struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CoverImage    string          `json:"coverImage"`
	GalleryImages string          `json:"galleryImages"`
	Category      string          `json:"category"`
	VideoURLs     string          `json:"videoURLs"`
}

// BannerInput carries a banner row; Active defaults to true at the dispatch
// boundary unless explicitly disabled.
type BannerInput struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sortOrder"`
	Title     string `json:"title"`
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo     *Repository
	Coupons  *coupons.Repository
	Logger   *logger.Logger
	Cache    SnapshotCache
	CacheTTL time.Duration
}

// Service exposes catalog CRUD and the read snapshot.
type Service interface {
	AddProduct(ctx context.Context, in ProductInput) error
	UpdateProduct(ctx context.Context, in ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	AddBanner(ctx context.Context, in BannerInput) error
	DeleteBanner(ctx context.Context, id string) error
	AddCoupon(ctx context.Context, in CouponInput) error
	DeleteCoupon(ctx context.Context, code string) error
	Snapshot(ctx context.Context) (types.Snapshot, error)
}

// CouponInput carries a coupon row for the admin CRUD surface.
type CouponInput struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount"`
	Active          bool            `json:"active"`
	ExpiryDate      string          `json:"expiryDate"`
	MinimumAmount   decimal.Decimal `json:"minimumAmount"`
}

type service struct {
	repo     *Repository
	coupons  *coupons.Repository
	logg     *logger.Logger
	cache    SnapshotCache
	cacheTTL time.Duration
}

// NewService builds the catalog service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.Coupons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupons repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &service{
		repo:     params.Repo,
		coupons:  params.Coupons,
		logg:     params.Logger,
		cache:    params.Cache,
		cacheTTL: ttl,
	}, nil
}

func (s *service) AddProduct(ctx context.Context, in ProductInput) error {
	err := s.repo.AppendProduct(ctx, productRow(in))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append product")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) UpdateProduct(ctx context.Context, in ProductInput) error {
	err := s.repo.ReplaceProduct(ctx, in.ID, productRow(in))
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace product")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) AddCategory(ctx context.Context, name string) error {
	err := s.repo.AppendCategory(ctx, &models.Category{Name: name})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append category")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, name string) error {
	err := s.repo.DeleteCategory(ctx, name)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Category not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) AddBanner(ctx context.Context, in BannerInput) error {
	err := s.repo.AppendBanner(ctx, &models.Banner{
		ID:        in.ID,
		ImageURL:  in.ImageURL,
		Active:    in.Active,
		SortOrder: in.SortOrder,
		Title:     in.Title,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append banner")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) DeleteBanner(ctx context.Context, id string) error {
	err := s.repo.DeleteBanner(ctx, id)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Banner not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banner")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) AddCoupon(ctx context.Context, in CouponInput) error {
	err := s.coupons.Append(ctx, &models.Coupon{
		Code:            strings.ToUpper(strings.TrimSpace(in.Code)),
		DiscountPercent: in.DiscountPercent,
		Active:          in.Active,
		ExpiryDate:      strings.TrimSpace(in.ExpiryDate),
		MinimumAmount:   in.MinimumAmount,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append coupon")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

func (s *service) DeleteCoupon(ctx context.Context, code string) error {
	err := s.coupons.Delete(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Invalid coupon code.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	s.invalidateSnapshot(ctx)
	return nil
}

// Snapshot assembles the read payload. Each section degrades to an empty list
// on failure rather than failing the whole read; coupons are pre-filtered to
// active rows while banners keep their active flag for the caller to filter.
func (s *service) Snapshot(ctx context.Context) (types.Snapshot, error) {
	if cached, ok := s.cachedSnapshot(ctx); ok {
		return cached, nil
	}

	var errs error
	snapshot := types.Snapshot{
		Products:   []types.ProductView{},
		Categories: []string{},
		Banners:    []types.BannerView{},
		Coupons:    []types.CouponView{},
	}

	if rows, err := s.repo.ListProducts(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for _, row := range rows {
			if row.ID == "" {
				continue
			}
			snapshot.Products = append(snapshot.Products, types.ProductView{
				ID:            row.ID,
				Name:          row.Name,
				Description:   row.Description,
				Price:         row.Price,
				CoverImage:    row.CoverImage,
				GalleryImages: row.GalleryImages,
				Category:      row.Category,
				VideoURLs:     row.VideoURLs,
			})
		}
	}

	if rows, err := s.repo.ListCategories(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			if name == "" {
				continue
			}
			snapshot.Categories = append(snapshot.Categories, name)
		}
	}

	if rows, err := s.repo.ListBanners(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for _, row := range rows {
			if row.ID == "" {
				continue
			}
			snapshot.Banners = append(snapshot.Banners, types.BannerView{
				ID:        row.ID,
				ImageURL:  row.ImageURL,
				Active:    row.Active,
				SortOrder: row.SortOrder,
				Title:     row.Title,
			})
		}
	}

	if rows, err := s.coupons.ListActive(ctx); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for _, row := range rows {
			if row.Code == "" {
				continue
			}
			snapshot.Coupons = append(snapshot.Coupons, types.CouponView{
				Code:          strings.ToUpper(strings.TrimSpace(row.Code)),
				Discount:      row.DiscountPercent,
				ExpiryDate:    strings.TrimSpace(row.ExpiryDate),
				MinimumAmount: row.MinimumAmount,
			})
		}
	}

	if errs != nil {
		s.logg.Error(ctx, "snapshot sections degraded", errs)
	}

	s.storeSnapshot(ctx, snapshot)
	return snapshot, nil
}

func (s *service) cachedSnapshot(ctx context.Context) (types.Snapshot, bool) {
	if s.cache == nil {
		return types.Snapshot{}, false
	}
	raw, err := s.cache.Get(ctx, redis.SnapshotKey("catalog"))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logg.Warn(s.logg.WithField(ctx, "cache_error", err.Error()), "snapshot cache read failed")
		}
		return types.Snapshot{}, false
	}
	var snapshot types.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return types.Snapshot{}, false
	}
	return snapshot, true
}

func (s *service) storeSnapshot(ctx context.Context, snapshot types.Snapshot) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, redis.SnapshotKey("catalog"), string(encoded), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache_error", err.Error()), "snapshot cache write failed")
	}
}

func (s *service) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, redis.SnapshotKey("catalog")); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache_error", err.Error()), "snapshot cache invalidation failed")
	}
}

func productRow(in ProductInput) *models.Product {
	return &models.Product{
		ID:            in.ID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		CoverImage:    in.CoverImage,
		GalleryImages: in.GalleryImages,
		Category:      in.Category,
		VideoURLs:     in.VideoURLs,
	}
}
