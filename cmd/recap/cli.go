package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/export"
	"github.com/nguyentantai21042004/recap/internal/history"
	"github.com/nguyentantai21042004/recap/internal/httpapi"
	"github.com/nguyentantai21042004/recap/internal/identity"
	"github.com/nguyentantai21042004/recap/internal/processor"
	"github.com/nguyentantai21042004/recap/internal/watcher"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "recap",
		Usage:   "Turn meeting recordings into titled summary reports",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "Path to the YAML config"},
		},
		Commands: []*cli.Command{
			serveCmd(),
			watchCmd(),
			runCmd(),
			historyCmd(),
			tokenCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (overrides server.addr)"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			d, err := bootstrap(ctx, c.String("config"))
			if err != nil {
				return outputError(err)
			}
			defer d.Close()

			if err := ensureDirectories(d.cfg); err != nil {
				return outputError(err)
			}
			if d.cfg.Server.JWTSecret == "" {
				d.logger.Warn(ctx, "server.jwt_secret is empty, every caller is anonymous")
			}

			checker := identity.NewJWTChecker(d.cfg.Server.JWTSecret)
			rec := d.recorder(checker)
			srv := httpapi.New(d.pipeline(rec), rec, history.NewManager(d.store, d.logger), checker, httpapi.Options{
				MaxUploadMiB: d.cfg.Server.MaxUploadMiB,
			}, d.logger)

			addr := d.cfg.Server.Addr
			if a := c.String("addr"); a != "" {
				addr = a
			}

			errChan := make(chan error, 1)
			go func() {
				errChan <- srv.Listen(ctx, addr)
			}()

			select {
			case <-signalled(ctx):
				d.logger.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				return outputError(fmt.Errorf("listen: %w", err))
			}

			d.logger.Info(ctx, "Shutting down gracefully...")
			return srv.Shutdown()
		},
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Summarize every recording dropped into the input folder",
		Action: func(c *cli.Context) error {
			d, err := bootstrap(c.Context, c.String("config"))
			if err != nil {
				return outputError(err)
			}
			defer d.Close()

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			cfg := d.cfg
			log := d.logger
			log.Info(ctx, "========================================")
			log.Info(ctx, "Recap watch mode")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

			if err := ensureDirectories(cfg); err != nil {
				return outputError(err)
			}

			rec := d.recorder(identity.Static{UserID: cfg.Watch.UserID})
			proc := processor.New(cfg.Paths, d.pipeline(rec), log)

			w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return outputError(fmt.Errorf("create watcher: %w", err))
			}
			defer w.Stop()

			errChan := make(chan error, 1)
			go func() {
				if err := w.Start(ctx); err != nil && err != context.Canceled {
					errChan <- err
				}
			}()

			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			if cfg.Watch.UserID == "" {
				log.Info(ctx, "History: disabled (watch.user_id is empty)")
			} else {
				log.Info(ctx, "History: recorded for %s", cfg.Watch.UserID)
			}
			log.Info(ctx, "Press Ctrl+C to stop")

			select {
			case <-signalled(ctx):
				log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				log.Error(ctx, "Watcher error: %v", err)
			}

			log.Info(ctx, "Shutting down gracefully...")
			cancel()
			return nil
		},
	}
}

func runCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Summarize a single recording and print the result",
		ArgsUsage: "<file | gridfs:<id> | gs://bucket/object>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Record history for this user"},
			&cli.StringFlag{Name: "export", Aliases: []string{"o"}, Usage: "Also write report files to this directory"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("exactly one audio file or reference is required"))
			}
			arg := c.Args().First()

			src := audio.FromPath(arg)
			if isRef(arg) {
				var err error
				if src, err = audio.FromRef(arg); err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			}

			d, err := bootstrap(c.Context, c.String("config"))
			if err != nil {
				return outputError(err)
			}
			defer d.Close()

			if err := os.MkdirAll(d.cfg.Paths.Temp, 0755); err != nil {
				return outputError(err)
			}

			userID := d.cfg.Watch.UserID
			if u := c.String("user"); u != "" {
				userID = u
			}

			p := d.pipeline(d.recorder(identity.Static{UserID: userID}))
			res, err := p.Run(c.Context, src)
			if err != nil {
				return outputError(err)
			}

			if dir := c.String("export"); dir != "" {
				name := strings.TrimSuffix(filepath.Base(res.AudioName), filepath.Ext(res.AudioName))
				if _, err := export.WriteAll(export.Document{
					Name:       name,
					Title:      res.Outcome.Title,
					Summary:    res.Summary,
					Transcript: res.Transcript,
					CreatedAt:  time.Now(),
				}, dir); err != nil {
					return outputError(err)
				}
			}

			return outputJSON(res.Payload())
		},
	}
}

func historyCmd() *cli.Command {
	userFlag := &cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "User ID", Required: true}

	return &cli.Command{
		Name:  "history",
		Usage: "List or delete saved summaries",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a user's history, newest first",
				Flags: []cli.Flag{userFlag},
				Action: withManager(func(c *cli.Context, m *history.Manager) (any, error) {
					records, err := m.List(c.Context, c.String("user"))
					if err != nil {
						return nil, err
					}
					return map[string]any{"history_record": records}, nil
				}),
			},
			{
				Name:      "delete",
				Usage:     "Delete one entry by ID",
				ArgsUsage: "<id>",
				Action: withManager(func(c *cli.Context, m *history.Manager) (any, error) {
					return message(m.DeleteOne(c.Context, c.Args().First()))
				}),
			},
			{
				Name:  "delete-all",
				Usage: "Delete all of a user's history",
				Flags: []cli.Flag{userFlag},
				Action: withManager(func(c *cli.Context, m *history.Manager) (any, error) {
					return message(m.DeleteAll(c.Context, c.String("user")))
				}),
			},
			{
				Name:      "delete-selected",
				Usage:     "Delete several entries by ID",
				ArgsUsage: "<id> [id...]",
				Action: withManager(func(c *cli.Context, m *history.Manager) (any, error) {
					return message(m.DeleteSelected(c.Context, c.Args().Slice()))
				}),
			},
		},
	}
}

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Sign a bearer token for the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "User ID", Required: true},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "Token lifetime"},
		},
		Action: func(c *cli.Context) error {
			d, err := bootstrap(c.Context, c.String("config"))
			if err != nil {
				return outputError(err)
			}
			defer d.Close()

			if d.cfg.Server.JWTSecret == "" {
				return outputError(errors.NewInvalidRequest("server.jwt_secret is not configured"))
			}
			token, err := identity.Sign(d.cfg.Server.JWTSecret, c.String("user"), c.Duration("ttl"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			fmt.Println(token)
			return nil
		},
	}
}

func withManager(fn func(c *cli.Context, m *history.Manager) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		d, err := bootstrap(c.Context, c.String("config"))
		if err != nil {
			return outputError(err)
		}
		defer d.Close()

		out, err := fn(c, history.NewManager(d.store, d.logger))
		if err != nil {
			return outputError(err)
		}
		return outputJSON(out)
	}
}

func message(msg string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]string{"message": msg}, nil
}

func isRef(arg string) bool {
	return strings.HasPrefix(arg, "gs://") || strings.HasPrefix(arg, "gridfs:")
}

// signalled is closed on SIGINT, SIGTERM or when ctx is done.
func signalled(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		close(done)
	}()
	return done
}

// outputJSON writes JSON output to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	pErr := errors.As(err)
	if pErr.Code == errors.ErrInternal {
		return cli.Exit(err.Error(), 1)
	}
	return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
}
