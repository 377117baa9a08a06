package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	durable, err := clientstate.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(durable, clientstate.NewMemoryStore(), func() time.Time {
		return time.UnixMilli(1700000000000)
	})
}

func TestNewTokenShape(t *testing.T) {
	m := newTestManager(t)

	token := m.NewToken("U123")
	parts := strings.Split(token, "_")
	require.Len(t, parts, 3)
	require.Equal(t, "U123", parts[0])
	require.Equal(t, "1700000000000", parts[1])
	require.Len(t, parts[2], 10)

	require.NotEqual(t, token, m.NewToken("U123"))
}

func TestEstablishRememberUsesDurableTier(t *testing.T) {
	m := newTestManager(t)
	user := types.UserSummary{UserID: "U1", Name: "Asha"}

	require.NoError(t, m.Establish(user, "tok", true))
	require.True(t, m.LoggedIn())

	got, ok := m.User()
	require.True(t, ok)
	require.Equal(t, "Asha", got.Name)

	token, ok := m.Token()
	require.True(t, ok)
	require.Equal(t, "tok", token)
}

func TestEstablishEphemeralTier(t *testing.T) {
	durableDir := t.TempDir()
	durable, err := clientstate.NewFileStore(durableDir)
	require.NoError(t, err)
	m := NewManager(durable, clientstate.NewMemoryStore(), nil)

	require.NoError(t, m.Establish(types.UserSummary{UserID: "U1"}, "tok", false))
	require.True(t, m.LoggedIn())

	// A fresh manager over the same durable dir has no session: the
	// ephemeral tier died with the old process.
	durable2, err := clientstate.NewFileStore(durableDir)
	require.NoError(t, err)
	m2 := NewManager(durable2, clientstate.NewMemoryStore(), nil)
	require.False(t, m2.LoggedIn())
}

func TestDurableReadWins(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Establish(types.UserSummary{UserID: "EPH"}, "eph-tok", false))
	require.NoError(t, m.Establish(types.UserSummary{UserID: "DUR"}, "dur-tok", true))

	user, ok := m.User()
	require.True(t, ok)
	require.Equal(t, "DUR", user.UserID)
}

func TestClearWipesBothTiers(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Establish(types.UserSummary{UserID: "U1"}, "t1", true))
	require.NoError(t, m.Establish(types.UserSummary{UserID: "U2"}, "t2", false))

	m.Clear()
	require.False(t, m.LoggedIn())
	_, ok := m.User()
	require.False(t, ok)
	_, ok = m.Token()
	require.False(t, ok)
}
