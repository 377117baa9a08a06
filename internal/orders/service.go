package orders

import (
	"context"
	"time"

	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
)

const (
	orderIDPrefix = "SJ"
	guestUserID   = "GUEST"
	statusPending = "Pending"
	dateLayout    = "02/01/2006 15:04"
)

// Orders are stamped in the store's home timezone regardless of where the
// API runs.
var orderLocation = loadOrderLocation()

func loadOrderLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", int((5*time.Hour + 30*time.Minute).Seconds()))
	}
	return loc
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo *Repository
	IDs  *identifier.Generator
	Now  func() time.Time
}

// Service exposes checkout persistence and order history.
type Service interface {
	SaveOrder(ctx context.Context, userID string, order OrderInput) (string, error)
	GetOrders(ctx context.Context, userID string) ([]OrderView, error)
}

type service struct {
	repo *Repository
	ids  *identifier.Generator
	now  func() time.Time
}

// NewService builds the orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id generator is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, ids: params.IDs, now: now}, nil
}

// SaveOrder appends one order row and always succeeds for well-formed input:
// item contents are not validated, the status starts as Pending, and an empty
// userID records a guest checkout.
func (s *service) SaveOrder(ctx context.Context, userID string, order OrderInput) (string, error) {
	if userID == "" {
		userID = guestUserID
	}
	orderID := s.ids.Next(orderIDPrefix)
	row := &models.Order{
		OrderID: orderID,
		UserID:  userID,
		Date:    s.now().In(orderLocation).Format(dateLayout),
		Items:   order.Items.Summary(),
		Total:   order.Total,
		Name:    order.Name,
		Phone:   order.Phone,
		Address: order.Address,
		Status:  statusPending,
	}
	if err := s.repo.Append(ctx, row); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order")
	}
	return orderID, nil
}

// GetOrders returns the user's orders most-recently-appended first.
func (s *service) GetOrders(ctx context.Context, userID string) ([]OrderView, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		status := row.Status
		if status == "" {
			status = statusPending
		}
		views = append(views, OrderView{
			OrderID: row.OrderID,
			Date:    row.Date,
			Items:   row.Items,
			Total:   row.Total,
			Name:    row.Name,
			Phone:   row.Phone,
			Address: row.Address,
			Status:  status,
		})
	}
	return views, nil
}
