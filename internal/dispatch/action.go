package dispatch

// Action is the closed set of operations the storefront write endpoint
// accepts. Anything outside this set is rejected by name.
type Action string

const (
	ActionAddProduct       Action = "addProduct"
	ActionUpdateProduct    Action = "updateProduct"
	ActionDeleteProduct    Action = "deleteProduct"
	ActionAddCategory      Action = "addCategory"
	ActionDeleteCategory   Action = "deleteCategory"
	ActionAddBanner        Action = "addBanner"
	ActionDeleteBanner     Action = "deleteBanner"
	ActionAddCoupon        Action = "addCoupon"
	ActionDeleteCoupon     Action = "deleteCoupon"
	ActionValidateCoupon   Action = "validateCoupon"
	ActionRegisterUser     Action = "registerUser"
	ActionLoginUser        Action = "loginUser"
	ActionUpdateUser       Action = "updateUser"
	ActionChangePassword   Action = "changePassword"
	ActionGetCart          Action = "getCart"
	ActionSaveCart         Action = "saveCart"
	ActionSaveOrder        Action = "saveOrder"
	ActionGetOrders        Action = "getOrders"
	ActionSaveAddress      Action = "saveAddress"
	ActionReplaceAddresses Action = "replaceAddresses"
	ActionGetAddresses     Action = "getAddresses"
)

var knownActions = map[Action]struct{}{
	ActionAddProduct:       {},
	ActionUpdateProduct:    {},
	ActionDeleteProduct:    {},
	ActionAddCategory:      {},
	ActionDeleteCategory:   {},
	ActionAddBanner:        {},
	ActionDeleteBanner:     {},
	ActionAddCoupon:        {},
	ActionDeleteCoupon:     {},
	ActionValidateCoupon:   {},
	ActionRegisterUser:     {},
	ActionLoginUser:        {},
	ActionUpdateUser:       {},
	ActionChangePassword:   {},
	ActionGetCart:          {},
	ActionSaveCart:         {},
	ActionSaveOrder:        {},
	ActionGetOrders:        {},
	ActionSaveAddress:      {},
	ActionReplaceAddresses: {},
	ActionGetAddresses:     {},
}

// Known reports whether the action is part of the closed set.
func (a Action) Known() bool {
	_, ok := knownActions[a]
	return ok
}
