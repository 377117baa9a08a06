package cartsync

import (
	"context"
	"errors"
	"time"

	"github.com/swarnimjewels/storefront-backend/internal/apiclient"
	"github.com/swarnimjewels/storefront-backend/internal/localcart"
	"github.com/swarnimjewels/storefront-backend/internal/session"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/metrics"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const defaultInterval = 5 * time.Minute

// Merge combines the server cart with the local one: server lines keep their
// order, quantities are summed on shared string-coerced ids, and local-only
// lines append at the end. A missing quantity counts as one on both sides.
func Merge(server, local []types.CartItem) []types.CartItem {
	merged := make([]types.CartItem, len(server))
	copy(merged, server)

	for _, item := range local {
		found := false
		for i := range merged {
			if string(merged[i].ID) == string(item.ID) {
				merged[i].Quantity = merged[i].Qty() + item.Qty()
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, item)
		}
	}
	return merged
}

// SyncerParams groups dependencies for the sync engine.
type SyncerParams struct {
	API      *apiclient.Client
	Session  *session.Manager
	Cart     *localcart.Cart
	Logger   *logger.Logger
	Metrics  *metrics.SyncMetrics
	Interval time.Duration
}

// Syncer keeps the server cart mirror in step with the local cart. Pushes
// are fire-and-forget: a failed push is counted and logged, never retried.
type Syncer struct {
	api      *apiclient.Client
	session  *session.Manager
	cart     *localcart.Cart
	logg     *logger.Logger
	metrics  *metrics.SyncMetrics
	interval time.Duration
}

// NewSyncer builds the sync engine. Metrics may be nil.
func NewSyncer(params SyncerParams) (*Syncer, error) {
	if params.API == nil {
		return nil, errors.New("api client required")
	}
	if params.Session == nil {
		return nil, errors.New("session manager required")
	}
	if params.Cart == nil {
		return nil, errors.New("cart required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Syncer{
		api:      params.API,
		session:  params.Session,
		cart:     params.Cart,
		logg:     params.Logger,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// SyncOnLogin merges the two carts and makes both sides hold the result:
// fetch the server copy, merge local into it, persist locally, push back.
// A failed fetch merges against an empty server cart rather than aborting.
func (s *Syncer) SyncOnLogin(ctx context.Context, userID string) ([]types.CartItem, error) {
	res := s.api.Call(ctx, "getCart", map[string]any{"userId": userID})
	server := res.Cart
	if !res.Success || server == nil {
		server = []types.CartItem{}
	}

	merged := Merge(server, s.cart.Items())
	if err := s.cart.Replace(merged); err != nil {
		return nil, err
	}

	push := s.api.Call(ctx, "saveCart", map[string]any{"userId": userID, "cart": merged})
	if !push.Success {
		return merged, errors.New(push.Error)
	}
	return merged, nil
}

// Push mirrors the local cart to the server for the logged-in user. Without
// a session it does nothing.
func (s *Syncer) Push(ctx context.Context) error {
	user, ok := s.session.User()
	if !ok {
		return nil
	}
	s.metrics.IncPush()
	res := s.api.Call(ctx, "saveCart", map[string]any{"userId": user.UserID, "cart": s.cart.Items()})
	if !res.Success {
		s.metrics.IncFailure()
		return errors.New(res.Error)
	}
	return nil
}

// Run pushes on a fixed cadence until the context is canceled. Errors are
// logged and dropped; the next tick starts fresh.
func (s *Syncer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cart sync context canceled")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Push(ctx); err != nil {
				s.logg.Error(ctx, "background cart push failed", err)
			}
		}
	}
}

// Logout pushes the cart one last time, waits for it, then clears the
// session. The push happening before the clear is what makes the final cart
// state survive the logout.
func (s *Syncer) Logout(ctx context.Context) {
	if err := s.Push(ctx); err != nil {
		s.logg.Error(ctx, "final cart push failed", err)
	}
	s.session.Clear()
}
