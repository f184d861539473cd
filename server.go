package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"comercio/internal/config"
	"comercio/internal/handlers"
	"comercio/internal/middleware"
)

// buildServer registers the API routes. Mutating routes require a bearer
// token when a token secret is configured.
func buildServer(app *App) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:               "comercio " + version,
		DisableStartupMessage: true,
	})
	server.Use(middleware.RequestLogger())

	var guards []fiber.Handler
	if app.Tokens.Enabled() {
		guards = append(guards, middleware.AuthRequired(app.Tokens))
	} else {
		log.Warn().Msg("auth.secret is empty, mutating API routes are unprotected")
	}

	apiV1 := server.Group("/api/v1")
	handlers.NewProductHandler(app.Products).RegisterRoutes(apiV1, guards...)
	handlers.NewCustomerHandler(app.Customers).RegisterRoutes(apiV1, guards...)
	handlers.NewSupplierHandler(app.Suppliers).RegisterRoutes(apiV1, guards...)

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": app.mq != nil,
		})
	})
	return server
}

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(cfg())
			if err != nil {
				return err
			}
			defer app.Close()

			server := buildServer(app)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg().HTTP.Addr).Msg("Starting server")
				errCh <- server.Listen(cfg().HTTP.Addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Error during Fiber shutdown")
				return err
			}
			log.Info().Msg("Server gracefully stopped")
			return nil
		},
	}
}
