// Package setup stores the API key in a config file interactively and reports
// which credential tiers are populated.
package setup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/configfile"
	"github.com/petasbytes/letter-blog/internal/console"
	"github.com/petasbytes/letter-blog/internal/fsops"
	"github.com/petasbytes/letter-blog/internal/settings"
)

// Scope selects which config file Setup writes.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

const (
	globalFileMode  os.FileMode = 0o600
	projectFileMode os.FileMode = 0o644
)

// Manager runs the interactive setup and the status report.
type Manager struct {
	Creds   settings.CredentialsConfig
	In      io.Reader
	Console *console.Printer
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Setup prompts for a key on In and writes it into the config file for scope,
// keeping every other key already in that file. It returns the path written.
func (m *Manager) Setup(scope Scope) (string, error) {
	c := m.Console
	c.Printf("\nLetter to My Future Self - API Key Setup\n\n")
	c.Printf("Enter your Anthropic API key: ")

	key, err := readLine(m.In)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	if key == "" {
		return "", apperr.New(apperr.EmptyInput, "no API key provided")
	}

	var (
		path string
		mode os.FileMode
	)
	switch scope {
	case ScopeProject:
		path = m.Creds.ProjectConfig
		mode = existingMode(path, projectFileMode)
	case ScopeGlobal:
		path = m.Creds.GlobalConfig
		mode = globalFileMode
		if err := fsops.EnsureDir(filepath.Dir(path)); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown setup scope %q", scope)
	}

	doc, err := configfile.Load(path)
	if err != nil {
		// Leave a file we cannot parse untouched rather than replace it.
		return "", err
	}
	doc.SetString(configfile.APIKeyField, key)
	if err := configfile.Save(path, doc, mode); err != nil {
		return "", err
	}

	c.Info("API key saved to %s\n", path)
	if scope == ScopeProject {
		c.Warn("Add '%s' to your .gitignore!\n", path)
	}
	c.Printf("\nSetup complete! You can now run the blog generator.\n")
	return path, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func existingMode(path string, fallback os.FileMode) os.FileMode {
	fi, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return fi.Mode().Perm()
}
