package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/hackathon-signup/cli/api"
	"github.com/oaiiae/hackathon-signup/cli/event"
	"github.com/oaiiae/hackathon-signup/cli/logger"
	"github.com/oaiiae/hackathon-signup/cli/storage"
	"github.com/oaiiae/hackathon-signup/datastores"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev" //nolint: gochecknoglobals
	revision = ""    //nolint: gochecknoglobals
	created  = ""    //nolint: gochecknoglobals
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	api.AdminOptions
	api.MailOptions
	storage.StoreOptions
	logger.Options

	Event string `doc:"event settings file (yaml, json or toml)"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)

		var srv *http.Server
		hooks.OnStart(func() {
			settings, err := event.Load(options.Event)
			if err != nil {
				log.Error("could not load event settings", "err", err)
				return
			}
			exporter, err := settings.Exporter()
			if err != nil {
				log.Error("could not configure export", "err", err)
				return
			}
			stores, err := storage.Open(&options.StoreOptions)
			if err != nil {
				log.Error("could not open store", "store", options.Store, "err", err)
				return
			}
			defer stores.Close()

			srv = api.NewServer(&options.ServerOptions,
				api.NewRouter(&options.RouterOptions, &options.AdminOptions, &options.MailOptions,
					&api.Deps{Stores: stores, Event: settings, Exporter: exporter},
					version, revision, created, log),
				log)

			log.Info("listening", "addr", srv.Addr, "store", options.Store, "event", settings.Title)
			err = srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed")
			} else {
				log.Error("failed to listen and serve", "err", err)
			}
		})
		hooks.OnStop(func() {
			if srv == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	root := cli.Root()
	root.Use = "hackathon-signup"
	root.Version = version
	root.AddCommand(exportCommand(), migrateCommand())
	cli.Run()
}

func exportCommand() *cobra.Command {
	var withStats bool
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every registration as CSV to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			if err := export(cmd.Context(), options, args, withStats, cmd.OutOrStdout()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "export:", err)
				os.Exit(1)
			}
		}),
	}
	cmd.Flags().BoolVar(&withStats, "stats", false, "append the statistics block")
	return cmd
}

func export(ctx context.Context, options *Options, args []string, withStats bool, stdout io.Writer) error {
	settings, err := event.Load(options.Event)
	if err != nil {
		return err
	}
	exporter, err := settings.Exporter()
	if err != nil {
		return err
	}
	stores, err := storage.Open(&options.StoreOptions)
	if err != nil {
		return err
	}
	defer stores.Close()

	rs, err := stores.Registrations.LoadAll(ctx)
	if err != nil {
		return err
	}

	out := stdout
	if len(args) == 1 && args[0] != "-" {
		name := args[0]
		if strings.HasSuffix(name, "/") {
			name += exporter.Filename()
		}
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return exporter.Write(out, rs, withStats)
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the sqlite database schema",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
			if err := migrate(&options.StoreOptions); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "migrate:", err)
				os.Exit(1)
			}
			logger.New(&options.Options).Info("database is up to date", "path", options.StorePath)
		}),
	}
}

func migrate(options *storage.StoreOptions) error {
	if !strings.EqualFold(options.Store, "sqlite") {
		return fmt.Errorf("store %q has no schema, use --store=sqlite", options.Store)
	}
	db, err := datastores.OpenSQLite(options.StorePath)
	if err != nil {
		return err
	}
	return db.Close()
}
