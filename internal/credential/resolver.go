// Package credential resolves the Anthropic API key from an ordered list of
// sources.
//
// Invariant:
//   - the first source holding a non-empty value wins; later sources are never
//     read and values are never merged across tiers.
//
// Order:
//
//	environment -> project config -> global config
package credential

import (
	"errors"
	"log/slog"
	"os"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/configfile"
	"github.com/petasbytes/letter-blog/internal/settings"
)

// Tier names a credential storage location.
type Tier string

const (
	TierEnvironment Tier = "environment"
	TierProject     Tier = "project"
	TierGlobal      Tier = "global"
)

// Credential is a resolved API key and where it came from.
type Credential struct {
	Value string
	Tier  Tier
	// Origin is the env var name or config file path.
	Origin string
}

// Source is one tier. Lookup returns ok=false when the tier holds no usable
// value; a non-nil error means the tier could not be read and is skipped.
type Source interface {
	Tier() Tier
	Origin() string
	Lookup() (value string, ok bool, err error)
}

// EnvSource reads a single environment variable.
type EnvSource struct {
	Name string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (s EnvSource) Tier() Tier     { return TierEnvironment }
func (s EnvSource) Origin() string { return s.Name }

func (s EnvSource) Lookup() (string, bool, error) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(s.Name)
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// FileSource reads the api key field from a JSON config document.
type FileSource struct {
	TierName Tier
	Path     string
}

func (s FileSource) Tier() Tier     { return s.TierName }
func (s FileSource) Origin() string { return s.Path }

func (s FileSource) Lookup() (string, bool, error) {
	doc, err := configfile.Read(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	v, ok := doc.String(configfile.APIKeyField)
	if !ok || v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Resolver walks Sources in order.
type Resolver struct {
	Sources []Source
	Logger  *slog.Logger
}

// NewResolver returns the standard three-tier resolver for cfg. A nil
// lookupEnv reads the process environment.
func NewResolver(cfg settings.CredentialsConfig, lookupEnv func(string) (string, bool), logger *slog.Logger) *Resolver {
	return &Resolver{
		Sources: []Source{
			EnvSource{Name: cfg.EnvVar, LookupEnv: lookupEnv},
			FileSource{TierName: TierProject, Path: cfg.ProjectConfig},
			FileSource{TierName: TierGlobal, Path: cfg.GlobalConfig},
		},
		Logger: logger,
	}
}

// Resolve returns the first present credential, or an apperr.MissingCredential
// error when no source holds one. Unreadable sources are logged and skipped.
func (r *Resolver) Resolve() (Credential, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, src := range r.Sources {
		v, ok, err := src.Lookup()
		if err != nil {
			logger.Warn("could not read credential source",
				slog.String("tier", string(src.Tier())),
				slog.String("origin", src.Origin()),
				slog.String("error", err.Error()))
			continue
		}
		if !ok {
			logger.Debug("no credential in source",
				slog.String("tier", string(src.Tier())),
				slog.String("origin", src.Origin()))
			continue
		}
		return Credential{Value: v, Tier: src.Tier(), Origin: src.Origin()}, nil
	}
	return Credential{}, apperr.New(apperr.MissingCredential, "no API key found")
}
