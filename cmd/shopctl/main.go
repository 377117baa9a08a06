package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/swarnimjewels/storefront-backend/internal/apiclient"
	"github.com/swarnimjewels/storefront-backend/internal/cartsync"
	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	"github.com/swarnimjewels/storefront-backend/internal/localcart"
	"github.com/swarnimjewels/storefront-backend/internal/session"
	"github.com/swarnimjewels/storefront-backend/internal/wishlist"
	"github.com/swarnimjewels/storefront-backend/pkg/config"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type app struct {
	cfg      *config.Config
	logg     *logger.Logger
	api      *apiclient.Client
	sessions *session.Manager
	cart     *localcart.Cart
	wishes   *wishlist.Wishlist
	syncer   *cartsync.Syncer
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "shopctl"})

	if err := godotenv.Load(); err == nil {
		logg.Info(context.Background(), ".env loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		// The CLI only needs the client section; a missing database DSN is
		// expected on shopper machines.
		cfg = &config.Config{}
		if envErr := loadClientOnly(cfg); envErr != nil {
			fail("load config: %v", envErr)
		}
	}

	a, err := buildApp(cfg, logg)
	if err != nil {
		fail("init: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "register":
		a.register(ctx, os.Args[2:])
	case "login":
		a.login(ctx, os.Args[2:])
	case "logout":
		a.logout(ctx)
	case "whoami":
		a.whoami()
	case "passwd":
		a.passwd(ctx, os.Args[2:])
	case "cart":
		a.cartCmd(ctx, os.Args[2:])
	case "wishlist":
		a.wishlistCmd(os.Args[2:])
	case "orders":
		a.orders(ctx)
	case "coupon":
		a.coupon(ctx, os.Args[2:])
	case "sync":
		a.sync(ctx)
	default:
		usage()
		os.Exit(2)
	}
}

func loadClientOnly(cfg *config.Config) error {
	loaded, err := config.LoadClient()
	if err != nil {
		return err
	}
	cfg.Client = loaded
	return nil
}

func buildApp(cfg *config.Config, logg *logger.Logger) (*app, error) {
	stateDir := cfg.Client.StateDir
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		stateDir = filepath.Join(home, ".swarnimjewels")
	}

	durable, err := clientstate.NewFileStore(stateDir)
	if err != nil {
		return nil, err
	}
	ephemeral := clientstate.NewMemoryStore()

	sessions := session.NewManager(durable, ephemeral, nil)
	cart := localcart.New(durable, nil)
	api := apiclient.New(cfg.Client)

	syncer, err := cartsync.NewSyncer(cartsync.SyncerParams{
		API:      api,
		Session:  sessions,
		Cart:     cart,
		Logger:   logg,
		Interval: cfg.Client.SyncInterval,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logg:     logg,
		api:      api,
		sessions: sessions,
		cart:     cart,
		wishes:   wishlist.New(durable),
		syncer:   syncer,
	}, nil
}

func (a *app) register(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	trimmedName := strings.TrimSpace(*name)
	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))

	if trimmedName == "" {
		fail("Full name is required.")
	}
	if !emailPattern.MatchString(normalizedEmail) {
		fail("Enter a valid email address.")
	}
	if len(*password) < 6 {
		fail("Password must be at least 6 characters.")
	}

	res := a.api.Call(ctx, "registerUser", map[string]any{
		"name":         trimmedName,
		"email":        normalizedEmail,
		"phone":        strings.TrimSpace(*phone),
		"passwordHash": hashPassword(*password),
	})
	if !res.Success {
		fail("%s", res.Error)
	}

	user := types.UserSummary{
		UserID: res.UserID,
		Name:   trimmedName,
		Email:  normalizedEmail,
		Phone:  strings.TrimSpace(*phone),
	}
	if err := a.sessions.Establish(user, a.sessions.NewToken(res.UserID), true); err != nil {
		fail("save session: %v", err)
	}
	fmt.Printf("registered as %s (%s)\n", user.Name, user.UserID)
}

func (a *app) login(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	remember := fs.Bool("remember", true, "keep the session after this process exits")
	_ = fs.Parse(args)

	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))
	if normalizedEmail == "" || *password == "" {
		fail("Email and password are required.")
	}

	res := a.api.Call(ctx, "loginUser", map[string]any{
		"email":        normalizedEmail,
		"passwordHash": hashPassword(*password),
	})
	if !res.Success || res.User == nil {
		fail("%s", res.Error)
	}

	if err := a.sessions.Establish(*res.User, a.sessions.NewToken(res.User.UserID), *remember); err != nil {
		fail("save session: %v", err)
	}

	// Merge failure is not fatal; the session is already established.
	if _, err := a.syncer.SyncOnLogin(ctx, res.User.UserID); err != nil {
		a.logg.Error(ctx, "cart sync on login failed", err)
	}
	fmt.Printf("logged in as %s\n", res.User.Name)
}

func (a *app) logout(ctx context.Context) {
	a.syncer.Logout(ctx)
	fmt.Println("logged out")
}

func (a *app) whoami() {
	user, ok := a.sessions.User()
	if !ok {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.UserID)
}

func (a *app) passwd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	_ = fs.Parse(args)

	user, ok := a.sessions.User()
	if !ok {
		fail("not logged in")
	}
	if len(*next) < 6 {
		fail("Password must be at least 6 characters.")
	}
	if *next == *current {
		fail("New password must be different from the current one.")
	}

	res := a.api.Call(ctx, "changePassword", map[string]any{
		"userId":      user.UserID,
		"currentHash": hashPassword(*current),
		"newHash":     hashPassword(*next),
	})
	if !res.Success {
		fail("%s", res.Error)
	}
	fmt.Println("password changed")
}

func (a *app) cartCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fail("usage: shopctl cart <add|remove|qty|list|clear>")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		name := fs.String("name", "", "product name")
		price := fs.String("price", "", "unit price")
		image := fs.String("image", "", "image url")
		_ = fs.Parse(args[1:])
		unit, err := decimal.NewFromString(*price)
		if err != nil {
			fail("Invalid product price.")
		}
		if err := a.cart.Add(localcart.AddInput{ID: *id, Name: *name, Price: unit, Image: *image}); err != nil {
			fail("%v", err)
		}
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		_ = fs.Parse(args[1:])
		if err := a.cart.Remove(*id); err != nil {
			fail("%v", err)
		}
	case "qty":
		fs := flag.NewFlagSet("cart qty", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		n := fs.Int("n", 1, "quantity")
		_ = fs.Parse(args[1:])
		if err := a.cart.UpdateQuantity(*id, *n); err != nil {
			fail("%v", err)
		}
	case "clear":
		if err := a.cart.Clear(); err != nil {
			fail("%v", err)
		}
	case "list":
	default:
		fail("usage: shopctl cart <add|remove|qty|list|clear>")
	}

	for _, item := range a.cart.Items() {
		fmt.Printf("%s  %s  x%d  @%s\n", item.ID, item.Name, item.Qty(), item.Price.StringFixed(2))
	}
	fmt.Printf("items: %d  total: %s\n", a.cart.Count(), a.cart.Total().StringFixed(2))

	// Mirror the change for logged-in shoppers; best effort only.
	if err := a.syncer.Push(ctx); err != nil {
		a.logg.Error(ctx, "cart push failed", err)
	}
}

func (a *app) wishlistCmd(args []string) {
	if len(args) > 0 && args[0] == "toggle" {
		fs := flag.NewFlagSet("wishlist toggle", flag.ExitOnError)
		id := fs.String("id", "", "product id")
		name := fs.String("name", "", "product name")
		price := fs.String("price", "0", "unit price")
		_ = fs.Parse(args[1:])
		unit, err := decimal.NewFromString(*price)
		if err != nil {
			unit = decimal.Zero
		}
		if _, err := a.wishes.Toggle(types.ProductView{ID: *id, Name: *name, Price: unit}); err != nil {
			fail("%v", err)
		}
	}
	for _, item := range a.wishes.Items() {
		fmt.Printf("%s  %s  @%s\n", item.ID, item.Name, item.Price.StringFixed(2))
	}
}

func (a *app) orders(ctx context.Context) {
	user, ok := a.sessions.User()
	if !ok {
		fail("not logged in")
	}
	res := a.api.Call(ctx, "getOrders", map[string]any{"userId": user.UserID})
	if !res.Success {
		fail("%s", res.Error)
	}
	for _, order := range res.Orders {
		fmt.Printf("%s  %s  %s  %s  [%s]\n",
			order.OrderID, order.Date, order.Items, order.Total.StringFixed(2), order.Status)
	}
}

func (a *app) coupon(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("coupon", flag.ExitOnError)
	code := fs.String("code", "", "coupon code")
	_ = fs.Parse(args)

	res := a.api.Call(ctx, "validateCoupon", map[string]any{"couponCode": *code})
	if !res.Success {
		fail("%s", res.Error)
	}
	fmt.Printf("%s%% off, minimum order %s, expires %s\n",
		res.Discount.String(), res.MinimumAmount.StringFixed(2), res.ExpiryDate)
}

func (a *app) sync(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.logg.Info(ctx, "cart sync daemon starting")
	if err := a.syncer.Run(ctx); err != nil && err != context.Canceled {
		fail("sync: %v", err)
	}
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shopctl <command>

commands:
  register   -name -email -phone -password
  login      -email -password [-remember=false]
  logout
  whoami
  passwd     -current -new
  cart       add|remove|qty|list|clear
  wishlist   [toggle] -id -name -price
  orders
  coupon     -code
  sync`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
