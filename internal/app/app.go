// Package app wires note selection, generation, and draft output into the
// commands exposed by the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/console"
	"github.com/petasbytes/letter-blog/internal/credential"
	"github.com/petasbytes/letter-blog/internal/drafts"
	"github.com/petasbytes/letter-blog/internal/frontmatter"
	"github.com/petasbytes/letter-blog/internal/fsops"
	"github.com/petasbytes/letter-blog/internal/generator"
	"github.com/petasbytes/letter-blog/internal/metrics"
	"github.com/petasbytes/letter-blog/internal/notes"
	"github.com/petasbytes/letter-blog/internal/provider"
	"github.com/petasbytes/letter-blog/internal/settings"
	"github.com/petasbytes/letter-blog/internal/setup"
	"github.com/petasbytes/letter-blog/internal/telemetry"
)

// App runs one command per invocation.
type App struct {
	settings  *settings.Settings
	console   *console.Printer
	logger    *slog.Logger
	in        io.Reader
	newClient provider.Factory
	now       func() time.Time
	lookupEnv func(string) (string, bool)
}

// New applies opts over the defaults: default settings, stdout/stderr
// console, stdin input, and the real Anthropic client.
func New(opts ...Option) *App {
	a := &App{
		newClient: provider.NewFactory(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.settings == nil {
		a.settings = settings.NewDefault()
	}
	if a.console == nil {
		a.console = console.New(os.Stdout, os.Stderr, false)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.lookupEnv == nil {
		a.lookupEnv = os.LookupEnv
	}
	return a
}

// Generate converts the named note, or the latest one when name is empty,
// into a draft and returns the draft path.
func (a *App) Generate(ctx context.Context, name string) (string, error) {
	ctx = telemetry.WithRunID(ctx, telemetry.NewRunID())
	c := a.console
	cfg := a.settings

	c.Info("Letter to Blog: Generating blog post...\n")

	locator := notes.Locator{Dir: cfg.Paths.MemoryDir}
	notePath, err := locator.Locate(name)
	if err != nil {
		return "", err
	}
	c.Printf("Reading: %s\n", notePath)

	text, err := fsops.ReadFile(notePath)
	if err != nil {
		return "", err
	}
	noteStats := metrics.Measure(text)
	c.Debug("  %d words, %d lines, %d headings\n", noteStats.Words, noteStats.Lines, noteStats.Headings)
	fields := noteStats.Fields()
	fields["note"] = notePath
	fields["note_sha256"] = metrics.Checksum(text)
	fields["explicit"] = name != ""
	telemetry.Emit(ctx, "note_selected", fields)

	c.Printf("Calling Anthropic API...\n")
	resolver := credential.NewResolver(cfg.Credentials, a.lookupEnv, a.logger)
	svc := &generator.Service{
		Resolver:  resolver,
		NewClient: a.newClient,
		Model:     anthropic.Model(cfg.API.Model),
		MaxTokens: cfg.API.MaxTokens,
		Now:       a.now,
		Logger:    a.logger,
		OnCredential: func(cred credential.Credential) {
			c.Printf("Using API key from %s\n", describeSource(cred))
		},
	}
	post, err := svc.Generate(ctx, text)
	if err != nil {
		return "", err
	}

	w := drafts.Writer{Dir: cfg.Paths.DraftsDir, Now: a.now}
	out, err := w.Save(post, notePath)
	if err != nil {
		return "", err
	}
	c.Info("Blog post generated: %s\n", out)

	fm, _ := frontmatter.Parse([]byte(post))
	if fm.Title != "" {
		c.Printf("  Title: %s\n", fm.Title)
	}
	if len(fm.Tags) > 0 {
		c.Printf("  Tags:  %s\n", strings.Join(fm.Tags, ", "))
	}
	draftStats := metrics.Measure(post)
	fields = draftStats.Fields()
	fields["draft"] = out
	fields["has_frontmatter"] = fm.HasFrontmatter()
	telemetry.Emit(ctx, "draft_saved", fields)

	c.Info("Success! Blog post saved to: %s\n", out)
	c.Printf("Ready for review and publishing!\n")
	return out, nil
}

// Setup stores an API key read from the input in the config file for scope.
func (a *App) Setup(scope setup.Scope) (string, error) {
	return a.manager().Setup(scope)
}

// Status prints the per-tier credential report.
func (a *App) Status() {
	a.manager().PrintStatus()
}

func (a *App) manager() *setup.Manager {
	return &setup.Manager{
		Creds:     a.settings.Credentials,
		In:        a.in,
		Console:   a.console,
		LookupEnv: a.lookupEnv,
	}
}

func describeSource(cred credential.Credential) string {
	switch cred.Tier {
	case credential.TierEnvironment:
		return fmt.Sprintf("environment variable (%s)", cred.Origin)
	case credential.TierProject:
		return fmt.Sprintf("project config (%s)", cred.Origin)
	default:
		return fmt.Sprintf("global config (%s)", cred.Origin)
	}
}

// ReportError prints err as a single diagnostic line. A missing credential
// also prints how to configure one.
func ReportError(c *console.Printer, err error, envVar string) {
	if apperr.IsKind(err, apperr.MissingCredential) {
		c.Error("No API key found!\n")
		c.Printf("\nTo set up your API key, run one of:\n")
		c.Printf("  letter-blog setup          # Global (all projects)\n")
		c.Printf("  letter-blog setup-project  # This project only\n")
		c.Printf("\nOr set the %s environment variable.\n", envVar)
		return
	}
	c.Error("Error: %v\n", err)
}
