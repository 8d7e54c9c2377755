package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/petasbytes/letter-blog/internal/app"
	"github.com/petasbytes/letter-blog/internal/console"
	"github.com/petasbytes/letter-blog/internal/settings"
	"github.com/petasbytes/letter-blog/internal/setup"
)

type appKey struct{}

type runtime struct {
	app     *app.App
	console *console.Printer
	envVar  string
}

func fromContext(ctx context.Context) *runtime {
	rt, _ := ctx.Value(appKey{}).(*runtime)
	return rt
}

// before loads .env and settings and builds the App shared by every command
// into the runtime carried by ctx.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ctx, fmt.Errorf("failed to load .env: %w", err)
	}

	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return ctx, fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
	}
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := cmd.String("settings")
	cfg, err := settings.Load(path, cmd.IsSet("settings"))
	if err != nil {
		return ctx, err
	}
	logger.Debug("settings loaded",
		slog.String("memory_dir", cfg.Paths.MemoryDir),
		slog.String("drafts_dir", cfg.Paths.DraftsDir),
		slog.String("project_config", cfg.Credentials.ProjectConfig),
		slog.String("global_config", cfg.Credentials.GlobalConfig),
		slog.String("model", cfg.API.Model))

	rt := fromContext(ctx)
	rt.console = console.New(os.Stdout, os.Stderr, cmd.Bool("debug"))
	rt.envVar = cfg.Credentials.EnvVar
	rt.app = app.New(
		app.WithSettings(cfg),
		app.WithConsole(rt.console),
		app.WithLogger(logger),
	)
	return ctx, nil
}

func generate(ctx context.Context, cmd *cli.Command) error {
	rt := fromContext(ctx)
	name := cmd.String("file")
	if name == "" {
		name = cmd.Args().First()
	}
	_, err := rt.app.Generate(ctx, name)
	return err
}

func runSetup(scope setup.Scope) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		_, err := fromContext(ctx).app.Setup(scope)
		return err
	}
}

func status(ctx context.Context, cmd *cli.Command) error {
	fromContext(ctx).app.Status()
	return nil
}

// root keeps the flag-style surface: --setup, --setup-project and --status
// take precedence over generation, in that order.
func root(ctx context.Context, cmd *cli.Command) error {
	switch {
	case cmd.Bool("setup"):
		return runSetup(setup.ScopeGlobal)(ctx, cmd)
	case cmd.Bool("setup-project"):
		return runSetup(setup.ScopeProject)(ctx, cmd)
	case cmd.Bool("status"):
		return status(ctx, cmd)
	}
	return generate(ctx, cmd)
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Memory note to convert (file name under the memory dir, or a full path)",
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := &runtime{}
	ctx = context.WithValue(ctx, appKey{}, rt)

	cmd := &cli.Command{
		Name:      "letter-blog",
		Usage:     "Convert session memory notes into blog post drafts",
		ArgsUsage: "[note]",
		Before:    before,
		Action:    root,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "settings",
				Usage:       "Path to settings file",
				DefaultText: settings.DefaultFile,
				Value:       settings.DefaultFile,
				Sources:     cli.EnvVars("LETTER_SETTINGS_FILE"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Verbose diagnostics",
			},
			fileFlag(),
			&cli.BoolFlag{
				Name:  "setup",
				Usage: "Set up global API key",
			},
			&cli.BoolFlag{
				Name:  "setup-project",
				Usage: "Set up project-specific API key",
			},
			&cli.BoolFlag{
				Name:  "status",
				Usage: "Show current API key configuration status",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generate a blog post from the named note, or the latest one",
				ArgsUsage: "[note]",
				Action:    generate,
			},
			{
				Name:   "setup",
				Usage:  "Store an API key in the global config",
				Action: runSetup(setup.ScopeGlobal),
			},
			{
				Name:   "setup-project",
				Usage:  "Store an API key in the project config",
				Action: runSetup(setup.ScopeProject),
			},
			{
				Name:   "status",
				Usage:  "Show which credential tiers hold an API key",
				Action: status,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		// Settings or flag errors fail before the console exists.
		if rt.console == nil {
			rt.console = console.New(os.Stdout, os.Stderr, false)
		}
		app.ReportError(rt.console, err, rt.envVar)
		stop()
		os.Exit(1)
	}
}
