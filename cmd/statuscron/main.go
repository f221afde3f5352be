package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/statuscron/internal/config"
	"github.com/mtlprog/statuscron/internal/handler"
	"github.com/mtlprog/statuscron/internal/logger"
	"github.com/mtlprog/statuscron/internal/manifest"
	"github.com/mtlprog/statuscron/internal/middleware"
	"github.com/mtlprog/statuscron/internal/server"
	"github.com/mtlprog/statuscron/internal/task"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "statuscron",
		Usage: "Status service and periodic task",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   string(logger.FormatJSON),
				Usage:   "Log format (json, text, auto)",
				EnvVars: []string{"LOG_FORMAT"},
			},
		}, serveFlags()...),
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), logger.ParseFormat(c.String("log-format")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the status web server",
				Flags:  serveFlags(),
				Action: runServe,
			},
			{
				Name:  "run-task",
				Usage: "Run the periodic task once and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "app-env",
						Value:   config.DefaultAppEnv,
						Usage:   "Environment label written to the task log",
						EnvVars: []string{"APP_ENV"},
					},
					&cli.StringFlag{
						Name:    "database-password",
						Value:   config.DefaultDatabasePassword,
						Usage:   "Database password (only a masked prefix is printed)",
						EnvVars: []string{"DATABASE_PASSWORD"},
					},
					&cli.StringFlag{
						Name:    "log-file",
						Value:   config.DefaultTaskLogPath,
						Usage:   "File the task appends one line to per run",
						EnvVars: []string{"TASK_LOG_FILE"},
					},
				},
				Action: runTask,
			},
			{
				Name:  "manifests",
				Usage: "Print Kubernetes manifests for the service and the task",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Value: config.DefaultName,
						Usage: "Base name of the rendered objects",
					},
					&cli.StringFlag{
						Name:  "namespace",
						Usage: "Namespace of the rendered objects",
					},
					&cli.StringFlag{
						Name:     "image",
						Usage:    "Container image running statuscron",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "schedule",
						Value: config.DefaultSchedule,
						Usage: "Cron schedule of the periodic task",
					},
					&cli.StringFlag{
						Name:    "app-env",
						Value:   config.DefaultAppEnv,
						Usage:   "APP_ENV stored in the ConfigMap",
						EnvVars: []string{"APP_ENV"},
					},
					&cli.StringFlag{
						Name:  "database-password",
						Value: config.DefaultDatabasePassword,
						Usage: "DATABASE_PASSWORD stored in the Secret (flag only, never read from the environment)",
					},
				},
				Action: runManifests,
			},
		},
		Action: runServe,
	}
}

// serveFlags are registered on the app and on the serve command, so HOST and
// PORT apply whether or not the subcommand is named.
func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   config.DefaultHost,
			Usage:   "Interface to bind",
			EnvVars: []string{"HOST"},
		},
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   config.DefaultPort,
			Usage:   "HTTP server port",
			EnvVars: []string{"PORT"},
		},
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Server{
		Host: c.String("host"),
		Port: c.String("port"),
	}
	if cfg.Host == "" {
		cfg.Host = config.DefaultHost
	}
	if cfg.Port == "" {
		cfg.Port = config.DefaultPort
	}

	requestLogger := middleware.NewRequestLogger(slog.Default())
	srv := server.New(cfg.Addr(), requestLogger.Log(handler.New().Routes()), slog.Default())

	return srv.Run(ctx)
}

func runTask(c *cli.Context) error {
	cfg := config.Task{
		AppEnv:           c.String("app-env"),
		DatabasePassword: c.String("database-password"),
		LogPath:          c.String("log-file"),
	}

	runner := task.NewRunner(cfg, task.WithOutput(c.App.Writer))
	if err := runner.RunOnce(c.Context); err != nil {
		return fmt.Errorf("run periodic task: %w", err)
	}
	return nil
}

func runManifests(c *cli.Context) error {
	renderer := manifest.New(config.Manifest{
		Name:             c.String("name"),
		Namespace:        c.String("namespace"),
		Image:            c.String("image"),
		Schedule:         c.String("schedule"),
		AppEnv:           c.String("app-env"),
		DatabasePassword: c.String("database-password"),
	})

	bundle, err := renderer.Render()
	if err != nil {
		return fmt.Errorf("render manifests: %w", err)
	}

	return bundle.ToYAML(c.App.Writer)
}
