package orders

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
)

func newTestOrdersService(t *testing.T, now func() time.Time) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo: NewRepository(conn),
		IDs:  identifier.New(),
		Now:  now,
	})
	require.NoError(t, err)
	return svc
}

func itemsFrom(t *testing.T, raw string) ItemsField {
	t.Helper()
	var items ItemsField
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func TestSaveOrderStampsRow(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := newTestOrdersService(t, func() time.Time { return at })

	orderID, err := svc.SaveOrder(context.Background(), "U1", OrderInput{
		Items: itemsFrom(t, `[{"name":"Gold Ring","quantity":2},{"name":"Chain"}]`),
		Total: decimal.NewFromInt(5000),
		Name:  "Asha",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(orderID, "SJ"))

	views, err := svc.GetOrders(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, orderID, views[0].OrderID)
	require.Equal(t, "Gold Ring x2, Chain x1", views[0].Items)
	require.Equal(t, "Pending", views[0].Status)
	// 09:00 UTC is 14:30 in the store's timezone.
	require.Equal(t, "15/03/2026 14:30", views[0].Date)
}

func TestSaveOrderGuestDefault(t *testing.T) {
	svc := newTestOrdersService(t, nil)

	_, err := svc.SaveOrder(context.Background(), "", OrderInput{
		Items: itemsFrom(t, `"preformatted line"`),
	})
	require.NoError(t, err)

	views, err := svc.GetOrders(context.Background(), "GUEST")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "preformatted line", views[0].Items)
}

func TestGetOrdersNewestFirst(t *testing.T) {
	svc := newTestOrdersService(t, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		orderID, err := svc.SaveOrder(context.Background(), "U1", OrderInput{
			Items: itemsFrom(t, `[]`),
		})
		require.NoError(t, err)
		ids = append(ids, orderID)
	}

	views, err := svc.GetOrders(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	require.Equal(t, ids[2], views[0].OrderID)
	require.Equal(t, ids[1], views[1].OrderID)
	require.Equal(t, ids[0], views[2].OrderID)
}

func TestGetOrdersScopedToUser(t *testing.T) {
	svc := newTestOrdersService(t, nil)

	_, err := svc.SaveOrder(context.Background(), "U1", OrderInput{Items: itemsFrom(t, `[]`)})
	require.NoError(t, err)
	_, err = svc.SaveOrder(context.Background(), "U2", OrderInput{Items: itemsFrom(t, `[]`)})
	require.NoError(t, err)

	views, err := svc.GetOrders(context.Background(), "U2")
	require.NoError(t, err)
	require.Len(t, views, 1)

	views, err = svc.GetOrders(context.Background(), "U3")
	require.NoError(t, err)
	require.Empty(t, views)
}
