package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"comercio/internal/config"
	"comercio/internal/inspect"
	"comercio/internal/services"
	"comercio/pkg/rabbitmq"
)

func newInspectCmd(cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the database without the menu",
	}

	withInspector := func(fn func(cmd *cobra.Command, in *inspect.Inspector, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(cfg())
			if err != nil {
				return err
			}
			defer app.Close()
			return fn(cmd, app.Inspector, args)
		}
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print the row count of every table",
		Args:  cobra.NoArgs,
		RunE: withInspector(func(cmd *cobra.Command, in *inspect.Inspector, _ []string) error {
			counts, err := in.Stats()
			if err != nil {
				return err
			}
			inspect.WriteStats(cmd.OutOrStdout(), counts)
			return nil
		}),
	}

	view := &cobra.Command{
		Use:   "view <table>",
		Short: "Print every row of a table",
		Args:  cobra.ExactArgs(1),
		RunE: withInspector(func(cmd *cobra.Command, in *inspect.Inspector, args []string) error {
			t, err := in.Read(args[0])
			if err != nil {
				return err
			}
			inspect.WriteTable(cmd.OutOrStdout(), t)
			return nil
		}),
	}

	var dir string
	export := &cobra.Command{
		Use:   "export <table>",
		Short: "Export a table to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: withInspector(func(cmd *cobra.Command, in *inspect.Inspector, args []string) error {
			if dir == "" {
				dir = cfg().Export.Dir
			}
			path, err := in.Export(args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to: %s\n", path)
			return nil
		}),
	}
	export.Flags().StringVar(&dir, "dir", "", "output directory (default export.dir)")

	cmd.AddCommand(stats, view, export)
	return cmd
}

func newWatchCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log record events published by other instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if c.RabbitMQ.URL == "" {
				return fmt.Errorf("rabbitmq.url is not configured")
			}
			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: c.RabbitMQ.URL, Exchange: c.RabbitMQ.Exchange})
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return client.ConsumeRecordEvents(ctx, c.RabbitMQ.Queue, logRecordEvent)
		},
	}
}

// logRecordEvent logs one delivery. Malformed bodies are logged and
// acknowledged so they are not redelivered forever.
func logRecordEvent(msg amqp.Delivery) error {
	var ev services.RecordEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Warn().Err(err).Str("routing_key", msg.RoutingKey).Msg("Discarding malformed record event")
		return nil
	}
	log.Info().
		Str("event_id", ev.EventID).
		Str("entity", ev.Entity).
		Str("action", ev.Action).
		Uint("record_id", ev.RecordID).
		Time("at", ev.At).
		Msg("Record event")
	return nil
}

func newTokenCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "token [subject]",
		Short: "Issue an API token signed with auth.secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := "cli"
			if len(args) == 1 {
				subject = args[0]
			}
			tokens := services.NewTokenService(cfg().Auth.Secret, cfg().Auth.TTL)
			token, err := tokens.IssueToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
