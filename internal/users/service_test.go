package users

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

func newTestService(t *testing.T, cartMaxBytes int) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:         NewRepository(conn),
		IDs:          identifier.New(),
		CartMaxBytes: cartMaxBytes,
		Now:          func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func register(t *testing.T, svc Service, email string) string {
	t.Helper()
	userID, err := svc.Register(context.Background(), RegisterInput{
		Name:         "Asha",
		Email:        email,
		PasswordHash: "hash-1",
		Phone:        "111",
	})
	require.NoError(t, err)
	return userID
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, 45000)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", PasswordHash: "h"})
	require.EqualError(t, pkgErr(t, err), "VALIDATION_ERROR: Missing required fields.")

	_, err = svc.Register(context.Background(), RegisterInput{Name: "A", PasswordHash: "h"})
	require.Error(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c"})
	require.Error(t, err)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestService(t, 45000)
	register(t, svc, "shopper@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:         "Other",
		Email:        "  SHOPPER@Example.COM ",
		PasswordHash: "hash-2",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgErr(t, err).Code())
	require.Equal(t, "An account with this email already exists.", pkgErr(t, err).Message())
}

func TestLoginSingleFailureMessage(t *testing.T) {
	svc := newTestService(t, 45000)
	register(t, svc, "shopper@example.com")

	// Wrong password and unknown email must be indistinguishable.
	_, badPassword := svc.Login(context.Background(), "shopper@example.com", "wrong-hash")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "hash-1")
	require.Error(t, badPassword)
	require.Error(t, unknownEmail)
	require.Equal(t, pkgErr(t, badPassword).Message(), pkgErr(t, unknownEmail).Message())

	user, err := svc.Login(context.Background(), " SHOPPER@example.com ", "hash-1")
	require.NoError(t, err)
	require.Equal(t, "Asha", user.Name)
	require.Equal(t, "shopper@example.com", user.Email)
}

func TestUpdateProfileFieldSemantics(t *testing.T) {
	svc := newTestService(t, 45000)
	userID := register(t, svc, "shopper@example.com")

	// Blank name keeps the old one; provided phone overwrites even when empty.
	empty := ""
	require.NoError(t, svc.UpdateProfile(context.Background(), userID, "   ", &empty))

	user, err := svc.Login(context.Background(), "shopper@example.com", "hash-1")
	require.NoError(t, err)
	require.Equal(t, "Asha", user.Name)
	require.Equal(t, "", user.Phone)

	// Absent phone pointer leaves the phone alone.
	phone := "222"
	require.NoError(t, svc.UpdateProfile(context.Background(), userID, "Asha P", &phone))
	require.NoError(t, svc.UpdateProfile(context.Background(), userID, "", nil))

	user, err = svc.Login(context.Background(), "shopper@example.com", "hash-1")
	require.NoError(t, err)
	require.Equal(t, "Asha P", user.Name)
	require.Equal(t, "222", user.Phone)

	err = svc.UpdateProfile(context.Background(), "missing", "X", nil)
	require.Equal(t, "User not found.", pkgErr(t, err).Message())
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t, 45000)
	userID := register(t, svc, "shopper@example.com")

	err := svc.ChangePassword(context.Background(), userID, "wrong", "hash-2")
	require.Equal(t, "Current password is incorrect.", pkgErr(t, err).Message())

	require.NoError(t, svc.ChangePassword(context.Background(), userID, "hash-1", "hash-2"))

	_, err = svc.Login(context.Background(), "shopper@example.com", "hash-1")
	require.Error(t, err)
	_, err = svc.Login(context.Background(), "shopper@example.com", "hash-2")
	require.NoError(t, err)
}

func TestCartRoundTripAndUnknownUser(t *testing.T) {
	svc := newTestService(t, 45000)
	userID := register(t, svc, "shopper@example.com")

	cart, err := svc.GetCart(context.Background(), "missing")
	require.NoError(t, err, "unknown user reads as empty cart, not an error")
	require.Empty(t, cart)

	items := []types.CartItem{{ID: "P1", Name: "Ring", Price: decimal.NewFromInt(2500), Quantity: 2}}
	require.NoError(t, svc.SaveCart(context.Background(), userID, items))

	cart, err = svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.Equal(t, "P1", string(cart[0].ID))
	require.Equal(t, 2, cart[0].Quantity)

	err = svc.SaveCart(context.Background(), "missing", items)
	require.Equal(t, "User not found.", pkgErr(t, err).Message())
}

func TestSaveCartSizeBoundary(t *testing.T) {
	items := []types.CartItem{{ID: "P1", Name: "Ring", Price: decimal.NewFromInt(2500), Quantity: 1}}
	encoded, err := json.Marshal(items)
	require.NoError(t, err)

	t.Run("at the limit", func(t *testing.T) {
		svc := newTestService(t, len(encoded))
		userID := register(t, svc, "a@example.com")
		require.NoError(t, svc.SaveCart(context.Background(), userID, items))
	})

	t.Run("one byte over", func(t *testing.T) {
		svc := newTestService(t, len(encoded)-1)
		userID := register(t, svc, "b@example.com")
		err := svc.SaveCart(context.Background(), userID, items)
		require.Error(t, err)
		require.Equal(t, pkgerrors.CodeTooLarge, pkgErr(t, err).Code())
		require.Equal(t, "Cart is too large. Please remove some items.", pkgErr(t, err).Message())
	})
}

func TestAddresses(t *testing.T) {
	svc := newTestService(t, 45000)
	userID := register(t, svc, "shopper@example.com")

	addresses, err := svc.GetAddresses(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, addresses)

	first := json.RawMessage(`{"label":"home","city":"Pune"}`)
	updated, err := svc.SaveAddress(context.Background(), userID, first)
	require.NoError(t, err)
	require.Len(t, updated, 1)

	second := json.RawMessage(`{"label":"office"}`)
	updated, err = svc.SaveAddress(context.Background(), userID, second)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	replaced, err := svc.ReplaceAddresses(context.Background(), userID, []json.RawMessage{second})
	require.NoError(t, err)
	require.Len(t, replaced, 1)

	stored, err := svc.GetAddresses(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.JSONEq(t, string(second), string(stored[0]))
}

func pkgErr(t *testing.T, err error) *pkgerrors.Error {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	return typed
}
