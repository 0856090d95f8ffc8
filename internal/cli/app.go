package cli

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/go-tenant-client/client"
	"github.com/jrsteele09/go-tenant-client/contracts"
	"github.com/jrsteele09/go-tenant-client/internal/config"
	"github.com/jrsteele09/go-tenant-client/internal/logger"
	"github.com/jrsteele09/go-tenant-client/items"
	"github.com/jrsteele09/go-tenant-client/querycache"
	"github.com/jrsteele09/go-tenant-client/session"
	"github.com/jrsteele09/go-tenant-client/tenants"
	"github.com/jrsteele09/go-tenant-client/token"
	"github.com/jrsteele09/go-tenant-client/vendors"
)

// App wires the session context together: token slot, cache, pipeline,
// controller and the resource services, all sharing one lifecycle.
type App struct {
	Config      config.Config
	Log         *logger.Logger
	Client      *client.Client
	Controller  *session.Controller
	Vendors     *vendors.Service
	Contracts   *contracts.Service
	TenantUsers *tenants.UsersService
	Settings    *tenants.SettingsService
	Items       *items.Service
}

func newApp(opts *RootOptions) (*App, error) {
	cfg, err := config.New(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := logger.DefaultLevel(cfg.GetEnv())
	if cfg.GetLogLevel() != "" {
		level = logger.ParseLevel(cfg.GetLogLevel())
	}
	log := logger.New(logger.Options{
		Level:   level,
		Enabled: cfg.GetLogEnabled(),
		Prefix:  "tenantctl",
	})

	tokens := token.NewFileStore(cfg.GetTokenPath())
	cache := querycache.NewCache()
	c := client.New(cfg.GetBaseURL(), tokens,
		client.WithLogger(log.Group("client")),
		client.WithRateLimit(cfg.GetRequestsPerSecond()),
	)
	controller := session.NewController(
		session.Deps{Client: c, Tokens: tokens, Cache: cache},
		session.WithLogger(log.Group("session")),
		session.WithNavigate(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'tenantctl login' to sign in again.")
		}),
	)

	return &App{
		Config:      cfg,
		Log:         log,
		Client:      c,
		Controller:  controller,
		Vendors:     vendors.NewService(c, cache),
		Contracts:   contracts.NewService(c, cache),
		TenantUsers: tenants.NewUsersService(c, cache),
		Settings:    tenants.NewSettingsService(c, cache),
		Items:       items.NewService(c, cache),
	}, nil
}

func banner(appName string) {
	fig := figure.NewFigure(appName, "cybermedium", true)
	fig.Print()
	fmt.Println()
}
