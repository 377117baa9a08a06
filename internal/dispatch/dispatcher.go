package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/swarnimjewels/storefront-backend/internal/catalog"
	"github.com/swarnimjewels/storefront-backend/internal/coupons"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/internal/users"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/metrics"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const (
	msgInvalidBody = "Invalid request body."

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Params groups the services the dispatcher routes to.
type Params struct {
	Users   users.Service
	Orders  orders.Service
	Catalog catalog.Service
	Coupons coupons.Service
	Metrics *metrics.ActionMetrics
	Logger  *logger.Logger
}

// Dispatcher turns {action, ...payload} bodies into envelope results. It is
// the panic boundary: handler panics become generic failure envelopes, never
// a broken response.
type Dispatcher struct {
	users    users.Service
	orders   orders.Service
	catalog  catalog.Service
	coupons  coupons.Service
	metrics  *metrics.ActionMetrics
	logg     *logger.Logger
	validate *validator.Validate
}

// New builds a dispatcher. Metrics may be nil.
func New(params Params) (*Dispatcher, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users service is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders service is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	if params.Coupons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupons service is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &Dispatcher{
		users:    params.Users,
		orders:   params.Orders,
		catalog:  params.Catalog,
		coupons:  params.Coupons,
		metrics:  params.Metrics,
		logg:     params.Logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

type enveloped interface {
	Succeeded() bool
}

// Dispatch decodes the action name, routes to its handler and returns the
// result value to serialize. It never returns an error; every failure is an
// envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) any {
	var header requestHeader
	if err := json.Unmarshal(body, &header); err != nil {
		return types.Fail(msgInvalidBody)
	}
	name := strings.TrimSpace(header.Action)
	if name == "" {
		return types.Fail(msgInvalidBody)
	}
	action := Action(name)
	if !action.Known() {
		return types.Fail("Unknown action: " + name)
	}

	ctx = d.logg.WithAction(ctx, name)
	started := time.Now()
	result := d.handle(ctx, action, body)
	d.metrics.ObserveDuration(name, time.Since(started))

	outcome := outcomeOK
	if env, ok := result.(enveloped); ok && !env.Succeeded() {
		outcome = outcomeError
	}
	d.metrics.IncOutcome(name, outcome)
	return result
}

func (d *Dispatcher) handle(ctx context.Context, action Action, body []byte) (result any) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logg.Error(ctx, "action handler panicked", fmt.Errorf("panic: %v", rec))
			result = types.Fail(pkgerrors.MetadataFor(pkgerrors.CodeInternal).PublicMessage)
		}
	}()

	switch action {
	case ActionRegisterUser:
		return d.registerUser(ctx, body)
	case ActionLoginUser:
		return d.loginUser(ctx, body)
	case ActionUpdateUser:
		return d.updateUser(ctx, body)
	case ActionChangePassword:
		return d.changePassword(ctx, body)
	case ActionGetCart:
		return d.getCart(ctx, body)
	case ActionSaveCart:
		return d.saveCart(ctx, body)
	case ActionSaveOrder:
		return d.saveOrder(ctx, body)
	case ActionGetOrders:
		return d.getOrders(ctx, body)
	case ActionSaveAddress:
		return d.saveAddress(ctx, body)
	case ActionReplaceAddresses:
		return d.replaceAddresses(ctx, body)
	case ActionGetAddresses:
		return d.getAddresses(ctx, body)
	case ActionAddProduct:
		return d.addProduct(ctx, body)
	case ActionUpdateProduct:
		return d.updateProduct(ctx, body)
	case ActionDeleteProduct:
		return d.deleteProduct(ctx, body)
	case ActionAddCategory:
		return d.addCategory(ctx, body)
	case ActionDeleteCategory:
		return d.deleteCategory(ctx, body)
	case ActionAddBanner:
		return d.addBanner(ctx, body)
	case ActionDeleteBanner:
		return d.deleteBanner(ctx, body)
	case ActionAddCoupon:
		return d.addCoupon(ctx, body)
	case ActionDeleteCoupon:
		return d.deleteCoupon(ctx, body)
	case ActionValidateCoupon:
		return d.validateCoupon(ctx, body)
	}
	return types.Fail("Unknown action: " + string(action))
}

func (d *Dispatcher) registerUser(ctx context.Context, body []byte) any {
	var payload registerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.validate.Struct(payload); err != nil {
		return types.Fail("Missing required fields.")
	}
	userID, err := d.users.Register(ctx, users.RegisterInput{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: payload.PasswordHash,
		Phone:        payload.Phone,
	})
	if err != nil {
		return d.fail(ctx, err)
	}
	return registerResult{Envelope: types.OK(), UserID: userID}
}

func (d *Dispatcher) loginUser(ctx context.Context, body []byte) any {
	var payload loginPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	user, err := d.users.Login(ctx, payload.Email, payload.PasswordHash)
	if err != nil {
		return d.fail(ctx, err)
	}
	return loginResult{Envelope: types.OK(), User: user}
}

func (d *Dispatcher) updateUser(ctx context.Context, body []byte) any {
	var payload updateUserPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	err := d.users.UpdateProfile(ctx, payload.UserID, payload.Name, payload.Phone)
	if err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) changePassword(ctx context.Context, body []byte) any {
	var payload changePasswordPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	err := d.users.ChangePassword(ctx, payload.UserID, payload.CurrentHash, payload.NewHash)
	if err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) getCart(ctx context.Context, body []byte) any {
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	cart, err := d.users.GetCart(ctx, payload.UserID)
	if err != nil {
		return d.fail(ctx, err)
	}
	return cartResult{Envelope: types.OK(), Cart: cart}
}

func (d *Dispatcher) saveCart(ctx context.Context, body []byte) any {
	var payload saveCartPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.users.SaveCart(ctx, payload.UserID, payload.Cart); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) saveOrder(ctx context.Context, body []byte) any {
	var payload saveOrderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	orderID, err := d.orders.SaveOrder(ctx, payload.UserID, payload.Order)
	if err != nil {
		return d.fail(ctx, err)
	}
	return orderResult{Envelope: types.OK(), OrderID: orderID}
}

func (d *Dispatcher) getOrders(ctx context.Context, body []byte) any {
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	views, err := d.orders.GetOrders(ctx, payload.UserID)
	if err != nil {
		return d.fail(ctx, err)
	}
	return ordersResult{Envelope: types.OK(), Orders: views}
}

func (d *Dispatcher) saveAddress(ctx context.Context, body []byte) any {
	var payload saveAddressPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	updated, err := d.users.SaveAddress(ctx, payload.UserID, payload.Address)
	if err != nil {
		return d.fail(ctx, err)
	}
	return addressesResult{Envelope: types.OK(), Addresses: updated}
}

func (d *Dispatcher) replaceAddresses(ctx context.Context, body []byte) any {
	var payload replaceAddressesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	updated, err := d.users.ReplaceAddresses(ctx, payload.UserID, payload.Addresses)
	if err != nil {
		return d.fail(ctx, err)
	}
	return addressesResult{Envelope: types.OK(), Addresses: updated}
}

func (d *Dispatcher) getAddresses(ctx context.Context, body []byte) any {
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	addresses, err := d.users.GetAddresses(ctx, payload.UserID)
	if err != nil {
		return d.fail(ctx, err)
	}
	return addressesResult{Envelope: types.OK(), Addresses: addresses}
}

func (d *Dispatcher) addProduct(ctx context.Context, body []byte) any {
	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.AddProduct(ctx, productInput(payload)); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) updateProduct(ctx context.Context, body []byte) any {
	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.UpdateProduct(ctx, productInput(payload)); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) deleteProduct(ctx context.Context, body []byte) any {
	var payload deleteProductPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.DeleteProduct(ctx, payload.ID); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) addCategory(ctx context.Context, body []byte) any {
	var payload categoryPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.AddCategory(ctx, payload.Category); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) deleteCategory(ctx context.Context, body []byte) any {
	var payload categoryPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.DeleteCategory(ctx, payload.Category); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) addBanner(ctx context.Context, body []byte) any {
	var payload bannerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	err := d.catalog.AddBanner(ctx, catalog.BannerInput{
		ID:        payload.ID,
		ImageURL:  payload.ImageURL,
		Active:    active,
		SortOrder: payload.SortOrder,
		Title:     payload.Title,
	})
	if err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) deleteBanner(ctx context.Context, body []byte) any {
	var payload deleteBannerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.DeleteBanner(ctx, payload.ID); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) addCoupon(ctx context.Context, body []byte) any {
	var payload addCouponPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.validate.Struct(payload); err != nil {
		return types.Fail("Coupon code is required.")
	}
	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	err := d.catalog.AddCoupon(ctx, catalog.CouponInput{
		Code:            payload.Code,
		DiscountPercent: payload.Discount,
		Active:          active,
		ExpiryDate:      payload.ExpiryDate,
		MinimumAmount:   payload.MinimumAmount,
	})
	if err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) deleteCoupon(ctx context.Context, body []byte) any {
	var payload deleteCouponPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	if err := d.catalog.DeleteCoupon(ctx, payload.Code); err != nil {
		return d.fail(ctx, err)
	}
	return types.OK()
}

func (d *Dispatcher) validateCoupon(ctx context.Context, body []byte) any {
	var payload validateCouponPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Fail(msgInvalidBody)
	}
	result, err := d.coupons.Validate(ctx, payload.code())
	if err != nil {
		return d.fail(ctx, err)
	}
	return couponResult{
		Envelope:      types.OK(),
		Discount:      result.Discount,
		ExpiryDate:    result.ExpiryDate,
		MinimumAmount: result.MinimumAmount,
	}
}

// fail converts a service error to the public envelope. Errors whose code
// hides the real message are logged in full before being collapsed.
func (d *Dispatcher) fail(ctx context.Context, err error) types.Envelope {
	typed := pkgerrors.As(err)
	if typed == nil || !pkgerrors.MetadataFor(typed.Code()).MessageShown {
		d.logg.Error(ctx, "action failed", err)
	}
	return types.Fail(pkgerrors.PublicMessage(err))
}

func productInput(p productPayload) catalog.ProductInput {
	return catalog.ProductInput{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		CoverImage:    p.CoverImage,
		GalleryImages: p.GalleryImages,
		Category:      p.Category,
		VideoURLs:     p.VideoURLs,
	}
}
