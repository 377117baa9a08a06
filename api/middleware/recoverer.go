package middleware

import (
	"net/http"

	"github.com/swarnimjewels/storefront-backend/api/responses"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", nil)
					}
					responses.WriteJSON(w, http.StatusInternalServerError,
						types.Fail("Something went wrong. Please try again."))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
