package coupons

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
)

var expiryPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Result is the payload of a successful validation.
type Result struct {
	Discount      decimal.Decimal `json:"discount"`
	ExpiryDate    string          `json:"expiryDate"`
	MinimumAmount decimal.Decimal `json:"minimumAmount"`
}

// ServiceParams groups dependencies for the coupons service.
type ServiceParams struct {
	Repo *Repository
	Now  func() time.Time
}

// Service validates coupon codes against the Coupons table.
type Service interface {
	Validate(ctx context.Context, code string) (Result, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds the coupons service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupons repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// Validate normalizes the code, checks the active flag, then checks expiry.
// The expiry date is a calendar date; a coupon stays valid through 23:59:59
// local time on that day.
func (s *service) Validate(ctx context.Context, code string) (Result, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "Coupon code is required.")
	}

	row, err := s.repo.FindByNormalizedCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return Result{}, pkgerrors.New(pkgerrors.CodeNotFound, "Invalid coupon code.")
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "coupon lookup")
	}

	if !row.Active {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "This coupon is inactive.")
	}

	expiry := strings.TrimSpace(row.ExpiryDate)
	if expiry != "" && expiryPattern.MatchString(expiry) {
		endOfDay, err := time.ParseInLocation("2006-01-02 15:04:05", expiry+" 23:59:59", time.Local)
		if err == nil && s.now().After(endOfDay) {
			return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "This coupon has expired.")
		}
	}

	return Result{
		Discount:      row.DiscountPercent,
		ExpiryDate:    expiry,
		MinimumAmount: row.MinimumAmount,
	}, nil
}
