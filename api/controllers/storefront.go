package controllers

import (
	"io"
	"net/http"

	"github.com/swarnimjewels/storefront-backend/api/responses"
	"github.com/swarnimjewels/storefront-backend/internal/catalog"
	"github.com/swarnimjewels/storefront-backend/internal/dispatch"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

// Write bodies beyond this point are malformed or hostile; the cart payload
// limit alone is 45000 bytes, so 1 MiB leaves generous headroom.
const maxActionBodyBytes = 1 << 20

// StorefrontRead serves the catalog snapshot the storefront renders from.
func StorefrontRead(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.Snapshot(r.Context())
		if err != nil {
			logg.Error(r.Context(), "snapshot failed", err)
			responses.WriteJSON(w, http.StatusOK, types.Snapshot{
				Products:   []types.ProductView{},
				Categories: []string{},
				Banners:    []types.BannerView{},
				Coupons:    []types.CouponView{},
			})
			return
		}
		responses.WriteJSON(w, http.StatusOK, snapshot)
	}
}

// StorefrontAction routes {action, ...} bodies through the dispatcher.
func StorefrontAction(d *dispatch.Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBodyBytes))
		if err != nil {
			logg.Error(r.Context(), "read action body", err)
			responses.WriteAction(w, types.Fail("Invalid request body."))
			return
		}
		responses.WriteAction(w, d.Dispatch(r.Context(), body))
	}
}
