package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
)

func newTestCouponsService(t *testing.T, now func() time.Time) (Service, *Repository) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	repo := NewRepository(conn)
	svc, err := NewService(ServiceParams{Repo: repo, Now: now})
	require.NoError(t, err)
	return svc, repo
}

func TestValidateRequiresCode(t *testing.T) {
	svc, _ := newTestCouponsService(t, nil)

	_, err := svc.Validate(context.Background(), "   ")
	require.Equal(t, "Coupon code is required.", pkgerrors.As(err).Message())
}

func TestValidateUnknownCode(t *testing.T) {
	svc, _ := newTestCouponsService(t, nil)

	_, err := svc.Validate(context.Background(), "NOPE")
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	require.Equal(t, "Invalid coupon code.", pkgerrors.As(err).Message())
}

func TestValidateNormalizesCode(t *testing.T) {
	svc, repo := newTestCouponsService(t, nil)
	require.NoError(t, repo.Append(context.Background(), &models.Coupon{
		Code:            "SAVE10",
		DiscountPercent: decimal.NewFromInt(10),
		Active:          true,
		MinimumAmount:   decimal.NewFromInt(1000),
	}))

	result, err := svc.Validate(context.Background(), "  save10 ")
	require.NoError(t, err)
	require.True(t, result.Discount.Equal(decimal.NewFromInt(10)))
	require.True(t, result.MinimumAmount.Equal(decimal.NewFromInt(1000)))
}

func TestValidateInactive(t *testing.T) {
	svc, repo := newTestCouponsService(t, nil)
	require.NoError(t, repo.Append(context.Background(), &models.Coupon{
		Code:   "OLD5",
		Active: false,
	}))

	_, err := svc.Validate(context.Background(), "OLD5")
	require.Equal(t, "This coupon is inactive.", pkgerrors.As(err).Message())
}

func TestValidateExpiryBoundary(t *testing.T) {
	endOfDay, err := time.ParseInLocation("2006-01-02 15:04:05", "2020-01-01 23:59:59", time.Local)
	require.NoError(t, err)

	seed := func(t *testing.T, repo *Repository) {
		require.NoError(t, repo.Append(context.Background(), &models.Coupon{
			Code:            "SAVE10",
			DiscountPercent: decimal.NewFromInt(10),
			Active:          true,
			ExpiryDate:      "2020-01-01",
		}))
	}

	t.Run("one second before end of day", func(t *testing.T) {
		svc, repo := newTestCouponsService(t, func() time.Time { return endOfDay.Add(-time.Second) })
		seed(t, repo)
		_, err := svc.Validate(context.Background(), "SAVE10")
		require.NoError(t, err)
	})

	t.Run("exactly end of day", func(t *testing.T) {
		svc, repo := newTestCouponsService(t, func() time.Time { return endOfDay })
		seed(t, repo)
		_, err := svc.Validate(context.Background(), "SAVE10")
		require.NoError(t, err, "coupon stays valid through 23:59:59")
	})

	t.Run("one second after end of day", func(t *testing.T) {
		svc, repo := newTestCouponsService(t, func() time.Time { return endOfDay.Add(time.Second) })
		seed(t, repo)
		_, err := svc.Validate(context.Background(), "SAVE10")
		require.Equal(t, "This coupon has expired.", pkgerrors.As(err).Message())
	})
}

func TestValidateUnparseableExpiryIgnored(t *testing.T) {
	svc, repo := newTestCouponsService(t, nil)
	require.NoError(t, repo.Append(context.Background(), &models.Coupon{
		Code:       "WEIRD",
		Active:     true,
		ExpiryDate: "someday",
	}))

	result, err := svc.Validate(context.Background(), "WEIRD")
	require.NoError(t, err)
	require.Equal(t, "someday", result.ExpiryDate)
}
