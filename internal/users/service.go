package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/swarnimjewels/storefront-backend/internal/rowstore"
	"github.com/swarnimjewels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const userIDPrefix = "U"

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo         *Repository
	IDs          *identifier.Generator
	CartMaxBytes int
	Now          func() time.Time
}

// Service exposes the account, cart-mirror and address operations.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, passwordHash string) (types.UserSummary, error)
	UpdateProfile(ctx context.Context, userID, name string, phone *string) error
	ChangePassword(ctx context.Context, userID, currentHash, newHash string) error
	GetCart(ctx context.Context, userID string) ([]types.CartItem, error)
	SaveCart(ctx context.Context, userID string, cart []types.CartItem) error
	GetAddresses(ctx context.Context, userID string) ([]json.RawMessage, error)
	SaveAddress(ctx context.Context, userID string, address json.RawMessage) ([]json.RawMessage, error)
	ReplaceAddresses(ctx context.Context, userID string, addresses []json.RawMessage) ([]json.RawMessage, error)
}

// RegisterInput carries a registration request. The password hash is computed
// by the client; the server never sees the plaintext.
type RegisterInput struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
}

type service struct {
	repo         *Repository
	ids          *identifier.Generator
	cartMaxBytes int
	now          func() time.Time
}

// NewService builds the users service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id generator is required")
	}
	if params.CartMaxBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart size limit is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:         params.Repo,
		ids:          params.IDs,
		cartMaxBytes: params.CartMaxBytes,
		now:          now,
	}, nil
}

// Register creates a user row after the email-uniqueness pre-check. The
// record store itself never enforces uniqueness.
func (s *service) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.PasswordHash == "" || strings.TrimSpace(in.Name) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields.")
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "email lookup")
	}
	if exists {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "An account with this email already exists.")
	}

	userID := s.ids.Next(userIDPrefix)
	row := &models.User{
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: in.PasswordHash,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
		Cart:         "[]",
		Addresses:    "[]",
	}
	if err := s.repo.Append(ctx, row); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append user")
	}
	return userID, nil
}

// Login matches email and hash together. Any mismatch returns the same
// message, so callers cannot probe which emails exist.
func (s *service) Login(ctx context.Context, email, passwordHash string) (types.UserSummary, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	row, err := s.repo.FindByCredentials(ctx, normalized, passwordHash)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return types.UserSummary{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "Incorrect email or password.")
		}
		return types.UserSummary{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credential lookup")
	}
	return types.UserSummary{
		UserID: row.UserID,
		Name:   row.Name,
		Email:  row.Email,
		Phone:  row.Phone,
	}, nil
}

// UpdateProfile overwrites name only when the incoming value is non-empty;
// phone is overwritten whenever it was provided at all.
func (s *service) UpdateProfile(ctx context.Context, userID, name string, phone *string) error {
	row, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	newName := row.Name
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		newName = trimmed
	}
	newPhone := row.Phone
	if phone != nil {
		newPhone = strings.TrimSpace(*phone)
	}

	err = s.repo.UpdateFields(ctx, userID, map[string]any{
		"name":  newName,
		"phone": newPhone,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return nil
}

// ChangePassword requires the current hash to match before accepting the new one.
func (s *service) ChangePassword(ctx context.Context, userID, currentHash, newHash string) error {
	row, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if row.PasswordHash != currentHash {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Current password is incorrect.")
	}
	err = s.repo.UpdateFields(ctx, userID, map[string]any{"password_hash": newHash})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return nil
}

// GetCart returns the server-held cart mirror. Unknown users and unparseable
// stored values both read as an empty cart, never an error.
func (s *service) GetCart(ctx context.Context, userID string) ([]types.CartItem, error) {
	row, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return []types.CartItem{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return decodeCart(row.Cart), nil
}

// SaveCart overwrites the cart mirror, rejecting payloads whose serialized
// size exceeds the configured byte limit before any write happens.
func (s *service) SaveCart(ctx context.Context, userID string, cart []types.CartItem) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}
	if cart == nil {
		cart = []types.CartItem{}
	}
	encoded, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if len(encoded) > s.cartMaxBytes {
		return pkgerrors.New(pkgerrors.CodeTooLarge, "Cart is too large. Please remove some items.")
	}
	err = s.repo.UpdateFields(ctx, userID, map[string]any{"cart": string(encoded)})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
	}
	return nil
}

// GetAddresses mirrors GetCart: unknown users read as an empty list.
func (s *service) GetAddresses(ctx context.Context, userID string) ([]json.RawMessage, error) {
	row, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return []json.RawMessage{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return decodeAddresses(row.Addresses), nil
}

// SaveAddress appends one address to the stored list, no dedup, and returns
// the updated list.
func (s *service) SaveAddress(ctx context.Context, userID string, address json.RawMessage) ([]json.RawMessage, error) {
	row, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := append(decodeAddresses(row.Addresses), address)
	if err := s.writeAddresses(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ReplaceAddresses overwrites the whole stored list.
func (s *service) ReplaceAddresses(ctx context.Context, userID string, addresses []json.RawMessage) ([]json.RawMessage, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []json.RawMessage{}
	}
	if err := s.writeAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (s *service) findUser(ctx context.Context, userID string) (*models.User, error) {
	row, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, rowstore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return row, nil
}

func (s *service) writeAddresses(ctx context.Context, userID string, addresses []json.RawMessage) error {
	encoded, err := json.Marshal(addresses)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode addresses")
	}
	err = s.repo.UpdateFields(ctx, userID, map[string]any{"addresses": string(encoded)})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update addresses")
	}
	return nil
}

func decodeCart(raw string) []types.CartItem {
	if strings.TrimSpace(raw) == "" {
		return []types.CartItem{}
	}
	var cart []types.CartItem
	if err := json.Unmarshal([]byte(raw), &cart); err != nil || cart == nil {
		return []types.CartItem{}
	}
	return cart
}

func decodeAddresses(raw string) []json.RawMessage {
	if strings.TrimSpace(raw) == "" {
		return []json.RawMessage{}
	}
	var addresses []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &addresses); err != nil || addresses == nil {
		return []json.RawMessage{}
	}
	return addresses
}
