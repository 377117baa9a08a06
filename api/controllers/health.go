package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/swarnimjewels/storefront-backend/api/responses"
	"github.com/swarnimjewels/storefront-backend/pkg/config"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Swarnim-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database and, when configured, the snapshot cache.
// A nil pinger is skipped rather than reported as failing.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP Pinger, cacheP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Swarnim-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = "down"
				ready = false
				logg.Error(ctx, "health.db_ping_failed", err)
			} else {
				checks["db"] = "ok"
			}
		}
		if cacheP != nil {
			if err := cacheP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				ready = false
				logg.Error(ctx, "health.redis_ping_failed", err)
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		body := map[string]any{"status": "ready", "checks": checks}
		if !ready {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		responses.WriteJSON(w, status, body)
	}
}
