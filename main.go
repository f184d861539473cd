package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"comercio/internal/config"
	"comercio/internal/database"
	"comercio/internal/inspect"
	"comercio/internal/logging"
	"comercio/internal/menu"
	"comercio/internal/repositories"
	"comercio/internal/services"
	"comercio/pkg/rabbitmq"
)

var version = "dev"

// App holds the wired services shared by every command.
type App struct {
	Config    *config.Config
	Store     *database.Manager
	Products  *services.ProductService
	Customers *services.CustomerService
	Suppliers *services.SupplierService
	Inspector *inspect.Inspector
	Tokens    *services.TokenService

	mq *rabbitmq.Client
}

// NewApp migrates the store and wires the services. When rabbitmq.url is
// set, writes publish record events; a broker that cannot be reached is
// logged and events are dropped.
func NewApp(cfg *config.Config) (*App, error) {
	store, err := database.New(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Store:     store,
		Inspector: inspect.New(store),
		Tokens:    services.NewTokenService(cfg.Auth.Secret, cfg.Auth.TTL),
	}

	var notifier *services.Notifier
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			log.Warn().Err(err).Msg("Record events disabled")
		} else {
			app.mq = mq
			notifier = services.NewNotifier(mq)
		}
	}

	app.Products = services.NewProductService(repositories.NewGORMProductRepository(store), notifier)
	app.Customers = services.NewCustomerService(repositories.NewGORMCustomerRepository(store), notifier)
	app.Suppliers = services.NewSupplierService(repositories.NewGORMSupplierRepository(store), notifier)
	return app, nil
}

// Close releases the broker connection, if any.
func (a *App) Close() {
	if a.mq == nil {
		return
	}
	if err := a.mq.Close(); err != nil {
		log.Warn().Err(err).Msg("Error closing RabbitMQ client")
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		cfg     *config.Config
	)
	v := config.New()

	root := &cobra.Command{
		Use:          "comercio",
		Short:        "Commercial record manager for products, customers and suppliers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			session := logging.Apply(logging.Options{
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Console: cmd != cmd.Root(),
			})
			log.Debug().Str("command", cmd.Name()).Str("session", session).Str("driver", cfg.Database.Driver).Msg("Starting")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("db", "", "SQLite database file (overrides database.path)")
	if err := v.BindPFlag("database.path", root.PersistentFlags().Lookup("db")); err != nil {
		log.Warn().Err(err).Msg("Failed to bind --db flag")
	}

	cfgFn := func() *config.Config { return cfg }
	root.AddCommand(
		newInspectCmd(cfgFn),
		newServeCmd(cfgFn),
		newWatchCmd(cfgFn),
		newTokenCmd(cfgFn),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Skips config loading and logging setup.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// runMenu runs the interactive session on the terminal until exit, end of
// input, SIGINT or SIGTERM.
func runMenu(ctx context.Context, cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runMenuWith(ctx, app, os.Stdin, os.Stdout)
}

// runMenuWith runs the menu over in and out until it returns or ctx is
// done. A done ctx is a clean exit.
func runMenuWith(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	m := menu.New(in, out, menu.Deps{
		Products:  app.Products,
		Customers: app.Customers,
		Suppliers: app.Suppliers,
		Inspector: app.Inspector,
		ExportDir: app.Config.Export.Dir,
	})

	done := make(chan error, 1)
	go func() { done <- m.Run() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		fmt.Fprintln(out, "\n\nProgram interrupted by user.")
		log.Info().Msg("Interactive session interrupted")
		return nil
	}
}
