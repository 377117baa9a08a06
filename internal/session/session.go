package session

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const (
	keyUser  = "sj_user"
	keyToken = "sj_token"

	tokenRandomLength = 10
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Manager holds the logged-in identity across the durable and ephemeral
// tiers. Remember-me picks the tier; reads always prefer the durable one.
//
// The token is an opaque client-side marker only. The API trusts the bare
// userId on every request and never verifies tokens, so possession of a
// token grants nothing by itself.
type Manager struct {
	durable   clientstate.Store
	ephemeral clientstate.Store
	now       func() time.Time
}

// NewManager wires the two tiers. Now defaults to time.Now.
func NewManager(durable, ephemeral clientstate.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{durable: durable, ephemeral: ephemeral, now: now}
}

// NewToken builds the opaque session marker: userId, millis, random tail.
func (m *Manager) NewToken(userID string) string {
	var tail strings.Builder
	for i := 0; i < tokenRandomLength; i++ {
		tail.WriteByte(base36Alphabet[rand.IntN(len(base36Alphabet))])
	}
	return userID + "_" + strconv.FormatInt(m.now().UnixMilli(), 10) + "_" + tail.String()
}

// Establish stores the identity in exactly one tier.
func (m *Manager) Establish(user types.UserSummary, token string, remember bool) error {
	tier := m.ephemeral
	if remember {
		tier = m.durable
	}
	if err := tier.Set(keyUser, user); err != nil {
		return err
	}
	return tier.Set(keyToken, token)
}

// User returns the stored identity, durable tier first.
func (m *Manager) User() (types.UserSummary, bool) {
	var user types.UserSummary
	if m.durable.Get(keyUser, &user) && user.UserID != "" {
		return user, true
	}
	user = types.UserSummary{}
	if m.ephemeral.Get(keyUser, &user) && user.UserID != "" {
		return user, true
	}
	return types.UserSummary{}, false
}

// Token returns the stored token, durable tier first.
func (m *Manager) Token() (string, bool) {
	var token string
	if m.durable.Get(keyToken, &token) && token != "" {
		return token, true
	}
	token = ""
	if m.ephemeral.Get(keyToken, &token) && token != "" {
		return token, true
	}
	return "", false
}

// LoggedIn requires both pieces to be present.
func (m *Manager) LoggedIn() bool {
	_, hasToken := m.Token()
	_, hasUser := m.User()
	return hasToken && hasUser
}

// Clear wipes both tiers regardless of which one held the session.
func (m *Manager) Clear() {
	m.durable.Delete(keyUser)
	m.durable.Delete(keyToken)
	m.ephemeral.Delete(keyUser)
	m.ephemeral.Delete(keyToken)
}
