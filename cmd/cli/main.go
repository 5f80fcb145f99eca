// cmd/cli/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/config"
	"github.com/hodu/storefront/internal/i18n"
	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/services"
	"github.com/hodu/storefront/internal/storage"
	"github.com/hodu/storefront/internal/utils"
	"github.com/hodu/storefront/internal/views"
)

// cliOrigin is the storage scope the command line client uses.
const cliOrigin = "cli"

const usage = `usage: hodu <command> [flags]

commands:
  products        list or search products
  product         show one product
  login           log in as buyer or seller
  logout          log out
  nav             show the navigation state
  cart            show the cart
  cart-add        add a product to the cart
  buy             stage a product for the order page
  check-username  check whether a username is free
  signup          create an account`

type app struct {
	svc  *services.Services
	term *terminal
	out  io.Writer
	lang string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	if os.Getenv("STORAGE_BACKEND") == "" {
		cfg.Storage.Backend = config.BackendFile
	}
	utils.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.Environment)
	i18n.SetDefaultLanguage(cfg.I18n.DefaultLocale)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		logrus.Fatal("Failed to open storage: ", err)
	}
	defer provider.Close()

	api, err := openmarket.NewClient(cfg.API.BaseURL, openmarket.WithTimeout(cfg.APITimeout()))
	if err != nil {
		logrus.Fatal("Failed to create API client: ", err)
	}
	assets, err := services.NewAssetService(cfg.AWS)
	if err != nil {
		logrus.Fatal("Failed to initialize assets: ", err)
	}

	a := &app{
		svc:  services.NewServices(api, provider.Open(cliOrigin), assets),
		out:  os.Stdout,
		lang: i18n.Normalize(cfg.I18n.DefaultLocale),
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		provider.Close()
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	yes := fs.Bool("yes", false, "answer yes to every prompt")

	switch command {
	case "products":
		search := fs.String("search", "", "search keyword")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		view := views.NewCatalogView(a.svc.Products, a.svc.Assets, views.CatalogOptions{Lang: a.lang})
		defer view.Close()
		return a.print(view.Open(ctx, url.Values{"search": {*search}, "page": {strconv.Itoa(*page)}}))

	case "product":
		id := fs.String("id", "", "product id")
		quantity := fs.String("quantity", "", "quantity to show totals for")
		if err := fs.Parse(args); err != nil {
			return err
		}
		a.term = newTerminal(os.Stdin, a.out, *yes)
		view, snap, err := a.detail(ctx, *id)
		if err != nil {
			return nil
		}
		if *quantity != "" {
			snap = view.EnterQuantity(*quantity)
		}
		return a.print(snap)

	case "cart-add", "buy":
		id := fs.String("id", "", "product id")
		quantity := fs.Int("quantity", 1, "quantity")
		if err := fs.Parse(args); err != nil {
			return err
		}
		a.term = newTerminal(os.Stdin, a.out, *yes)
		view, _, err := a.detail(ctx, *id)
		if err != nil {
			return nil
		}
		view.EnterQuantity(strconv.Itoa(*quantity))
		if command == "buy" {
			if err := view.BuyNow(ctx); err != nil {
				return err
			}
			if a.term.last != views.PageOrder {
				return nil
			}
			draft, err := a.svc.Purchase.Current(ctx)
			if err != nil {
				return err
			}
			return a.print(draft)
		}
		return view.AddToCart(ctx)

	case "login":
		kind := fs.String("type", "buyer", "account kind: buyer or seller")
		username := fs.String("username", "", "username")
		password := fs.String("password", "", "password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		a.term = newTerminal(os.Stdin, a.out, *yes)
		view := views.NewLoginView(a.svc, a.term, a.term, views.LoginOptions{Lang: a.lang})
		if open, err := view.Open(ctx); err != nil || !open {
			return err
		}
		userType, ok := models.ParseUserType(*kind)
		if !ok {
			return fmt.Errorf("unknown account kind %q", *kind)
		}
		view.Submit(ctx, userType, *username, *password)
		return nil

	case "logout", "nav":
		if err := fs.Parse(args); err != nil {
			return err
		}
		a.term = newTerminal(os.Stdin, a.out, *yes)
		widget := views.NewNavigationWidget(a.svc.Sessions, a.term, views.NavigationOptions{Lang: a.lang})
		if command == "logout" {
			snap, err := widget.Logout(ctx)
			if err != nil {
				return err
			}
			return a.print(snap)
		}
		snap, err := widget.Render(ctx)
		if err != nil {
			return err
		}
		return a.print(snap)

	case "cart":
		if err := fs.Parse(args); err != nil {
			return err
		}
		cart, err := a.svc.Cart.Load(ctx)
		if err != nil {
			return err
		}
		return a.print(cart)

	case "check-username", "signup":
		return a.join(ctx, fs, command, args)

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) detail(ctx context.Context, id string) (*views.DetailView, views.DetailSnapshot, error) {
	view := views.NewDetailView(a.svc, a.term, a.term, views.DetailOptions{Lang: a.lang})
	snap, err := view.Open(ctx, url.Values{"id": {id}})
	return view, snap, err
}

func (a *app) join(ctx context.Context, fs *flag.FlagSet, command string, args []string) error {
	kind := fs.String("type", "buyer", "account kind: buyer or seller")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password again")
	name := fs.String("name", "", "name")
	prefix := fs.String("prefix", utils.PhonePrefixes[0], "phone prefix")
	middle := fs.String("middle", "", "phone middle group")
	last := fs.String("last", "", "phone last group")
	agree := fs.Bool("agree", false, "agree to the terms")
	check := fs.Bool("check", true, "check the username before signing up")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *confirm == "" {
		*confirm = *password
	}

	userType, ok := models.ParseUserType(*kind)
	if !ok {
		return fmt.Errorf("unknown account kind %q", *kind)
	}
	a.term = newTerminal(os.Stdin, a.out, false)
	view := views.NewJoinView(a.svc, a.term, a.term, views.JoinOptions{Lang: a.lang})
	if _, err := view.SelectTab(userType); err != nil {
		return err
	}
	if _, err := view.Input(userType, views.FieldUsername, *username); err != nil {
		return err
	}

	if command == "check-username" {
		snap, err := view.CheckUsername(ctx, userType)
		if err != nil {
			return err
		}
		return a.print(snap.Form.Messages[views.FieldUsername])
	}

	for _, in := range []struct {
		field views.Field
		value string
	}{
		{views.FieldPassword, *password},
		{views.FieldPasswordConfirm, *confirm},
		{views.FieldName, *name},
		{views.FieldPhonePrefix, *prefix},
		{views.FieldPhoneMiddle, *middle},
		{views.FieldPhoneLast, *last},
	} {
		if _, err := view.Input(userType, in.field, in.value); err != nil {
			return err
		}
	}
	if err := view.RestoreChecks(ctx); err != nil {
		return err
	}
	if *check && !view.Snapshot().Form.UsernameChecked {
		if _, err := view.CheckUsername(ctx, userType); err != nil {
			return err
		}
	}
	view.SetAgreement(*agree)

	if !view.CanSubmit() {
		return a.print(view.Snapshot().Form.Messages)
	}
	view.Submit(ctx)
	if msg, ok := view.Snapshot().Form.Messages[views.FieldPhoneMiddle]; ok {
		return a.print(msg)
	}
	return nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
