package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swarnimjewels/storefront-backend/internal/catalog"
	"github.com/swarnimjewels/storefront-backend/internal/coupons"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/internal/users"
	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	ids := identifier.New()

	usersService, err := users.NewService(users.ServiceParams{
		Repo:         users.NewRepository(conn),
		IDs:          ids,
		CartMaxBytes: 45000,
	})
	require.NoError(t, err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo: orders.NewRepository(conn),
		IDs:  ids,
	})
	require.NoError(t, err)

	couponsRepo := coupons.NewRepository(conn)
	couponsService, err := coupons.NewService(coupons.ServiceParams{Repo: couponsRepo})
	require.NoError(t, err)

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:    catalog.NewRepository(conn),
		Coupons: couponsRepo,
		Logger:  logg,
	})
	require.NoError(t, err)

	d, err := New(Params{
		Users:   usersService,
		Orders:  ordersService,
		Catalog: catalogService,
		Coupons: couponsService,
		Logger:  logg,
	})
	require.NoError(t, err)
	return d
}

func dispatchJSON(t *testing.T, d *Dispatcher, body string) map[string]any {
	t.Helper()
	result := d.Dispatch(context.Background(), []byte(body))
	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	return decoded
}

func TestDispatchMalformedBody(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":`)
	require.Equal(t, false, res["success"])
	require.Equal(t, "Invalid request body.", res["error"])

	res = dispatchJSON(t, d, `{"userId":"U1"}`)
	require.Equal(t, "Invalid request body.", res["error"], "missing action reads as malformed")
}

func TestDispatchUnknownAction(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"mineBitcoin"}`)
	require.Equal(t, false, res["success"])
	require.Equal(t, "Unknown action: mineBitcoin", res["error"])
}

func TestDispatchRegisterLoginFlow(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"registerUser","name":"Asha","email":"a@example.com","passwordHash":"h1"}`)
	require.Equal(t, true, res["success"])
	userID, _ := res["userId"].(string)
	require.NotEmpty(t, userID)

	res = dispatchJSON(t, d, `{"action":"registerUser","email":"a@example.com","passwordHash":"h1"}`)
	require.Equal(t, "Missing required fields.", res["error"])

	res = dispatchJSON(t, d, `{"action":"loginUser","email":"a@example.com","passwordHash":"h1"}`)
	require.Equal(t, true, res["success"])
	user, _ := res["user"].(map[string]any)
	require.Equal(t, userID, user["userId"])

	res = dispatchJSON(t, d, `{"action":"loginUser","email":"a@example.com","passwordHash":"bad"}`)
	require.Equal(t, "Incorrect email or password.", res["error"])
}

func TestDispatchCartFlatEnvelope(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"getCart","userId":"nobody"}`)
	require.Equal(t, true, res["success"], "unknown user still succeeds")
	cart, ok := res["cart"].([]any)
	require.True(t, ok, "cart must be present and flat in the envelope")
	require.Empty(t, cart)
	_, hasError := res["error"]
	require.False(t, hasError, "error field omitted on success")
}

func TestDispatchSaveOrderAndHistory(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"saveOrder","userId":"","order":{"items":[{"name":"Ring","quantity":2}],"total":5000}}`)
	require.Equal(t, true, res["success"])
	require.NotEmpty(t, res["orderId"])

	res = dispatchJSON(t, d, `{"action":"getOrders","userId":"GUEST"}`)
	require.Equal(t, true, res["success"])
	ordersList, _ := res["orders"].([]any)
	require.Len(t, ordersList, 1)
	first, _ := ordersList[0].(map[string]any)
	require.Equal(t, "Ring x2", first["items"])
}

func TestDispatchNumericProductID(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"registerUser","name":"A","email":"n@example.com","passwordHash":"h"}`)
	userID, _ := res["userId"].(string)
	require.NotEmpty(t, userID)

	// The id arrives as a JSON number; it must round-trip as a string.
	body := `{"action":"saveCart","userId":"` + userID + `","cart":[{"id":101,"name":"Ring","price":2500,"quantity":1}]}`
	res = dispatchJSON(t, d, body)
	require.Equal(t, true, res["success"])

	res = dispatchJSON(t, d, `{"action":"getCart","userId":"`+userID+`"}`)
	cart, _ := res["cart"].([]any)
	require.Len(t, cart, 1)
	item, _ := cart[0].(map[string]any)
	require.Equal(t, "101", item["id"])
}

func TestDispatchCouponValidation(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"addCoupon","code":"SAVE10","discount":10,"minimumAmount":1000}`)
	require.Equal(t, true, res["success"])

	res = dispatchJSON(t, d, `{"action":"addCoupon","discount":10}`)
	require.Equal(t, "Coupon code is required.", res["error"])

	// Either payload field name works.
	res = dispatchJSON(t, d, `{"action":"validateCoupon","couponCode":"save10"}`)
	require.Equal(t, true, res["success"])
	res = dispatchJSON(t, d, `{"action":"validateCoupon","code":"SAVE10"}`)
	require.Equal(t, true, res["success"])

	res = dispatchJSON(t, d, `{"action":"validateCoupon","code":"NOPE"}`)
	require.Equal(t, "Invalid coupon code.", res["error"])
}

func TestDispatchBannerActiveDefault(t *testing.T) {
	d := newTestDispatcher(t)

	res := dispatchJSON(t, d, `{"action":"addBanner","id":"B1","imageUrl":"https://x/y.jpg"}`)
	require.Equal(t, true, res["success"])

	res = dispatchJSON(t, d, `{"action":"addBanner","id":"B2","active":false}`)
	require.Equal(t, true, res["success"])
}
