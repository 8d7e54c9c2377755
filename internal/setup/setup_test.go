package setup_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/console"
	"github.com/petasbytes/letter-blog/internal/credential"
	"github.com/petasbytes/letter-blog/internal/settings"
	"github.com/petasbytes/letter-blog/internal/setup"
)

type harness struct {
	mgr *setup.Manager
	out *bytes.Buffer
	env map[string]string
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{out: &bytes.Buffer{}, env: map[string]string{}}
	h.mgr = &setup.Manager{
		Creds: settings.CredentialsConfig{
			EnvVar:        "ANTHROPIC_API_KEY",
			ProjectConfig: filepath.Join(dir, ".letter-config.json"),
			GlobalConfig:  filepath.Join(dir, "home", ".config", "letter-for-my-future-self", "config.json"),
		},
		In:      strings.NewReader(input),
		Console: console.New(h.out, h.out, false),
		LookupEnv: func(k string) (string, bool) {
			v, ok := h.env[k]
			return v, ok
		},
	}
	return h
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return m
}

func TestSetup_ProjectPreservesUnrelatedKeys(t *testing.T) {
	h := newHarness(t, "  sk-new-key-9876  \n")
	p := h.mgr.Creds.ProjectConfig
	if err := os.WriteFile(p, []byte(`{"blog_dir":"posts","anthropic_api_key":"old"}`), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	got, err := h.mgr.Setup(setup.ScopeProject)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if got != p {
		t.Fatalf("path = %q, want %q", got, p)
	}

	want := map[string]any{"blog_dir": "posts", "anthropic_api_key": "sk-new-key-9876"}
	if diff := cmp.Diff(want, readJSON(t, p)); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(h.out.String(), ".gitignore") {
		t.Fatalf("expected .gitignore reminder, got:\n%s", h.out.String())
	}
}

func TestSetup_GlobalCreatesDirsAndRestrictsMode(t *testing.T) {
	h := newHarness(t, "sk-global-1234\n")
	p := h.mgr.Creds.GlobalConfig

	if _, err := h.mgr.Setup(setup.ScopeGlobal); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if got := readJSON(t, p)["anthropic_api_key"]; got != "sk-global-1234" {
		t.Fatalf("stored key = %v", got)
	}
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if fi.Mode().Perm() != 0o600 {
			t.Fatalf("mode = %v, want 0600", fi.Mode().Perm())
		}
	}
	if strings.Contains(h.out.String(), ".gitignore") {
		t.Fatal("global setup should not print the .gitignore reminder")
	}
}

func TestSetup_EmptyInputFails(t *testing.T) {
	for name, input := range map[string]string{"blank line": "   \n", "eof": ""} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, input)
			_, err := h.mgr.Setup(setup.ScopeProject)
			if !apperr.IsKind(err, apperr.EmptyInput) {
				t.Fatalf("expected EmptyInput, got %v", err)
			}
			if _, statErr := os.Stat(h.mgr.Creds.ProjectConfig); !os.IsNotExist(statErr) {
				t.Fatal("no file should be written on empty input")
			}
		})
	}
}

func TestSetup_InvalidExistingConfigLeftUntouched(t *testing.T) {
	h := newHarness(t, "sk-abc-12345\n")
	p := h.mgr.Creds.ProjectConfig
	if err := os.WriteFile(p, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}
	_, err := h.mgr.Setup(setup.ScopeProject)
	if !apperr.IsKind(err, apperr.InvalidConfig) {
		t.Fatalf("expected InvalidConfig, got %v", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "{broken" {
		t.Fatalf("file was modified: %q", b)
	}
}

func TestMask(t *testing.T) {
	cases := map[string]string{
		"sk-ant-api03-abcdWXYZ": "...WXYZ",
		"12345":                 "...2345",
		"1234":                  "...",
		"":                      "...",
	}
	for in, want := range cases {
		if got := setup.Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatus_AllStates(t *testing.T) {
	h := newHarness(t, "")
	h.env["ANTHROPIC_API_KEY"] = "sk-env-secret-value-AAAA"
	if err := os.WriteFile(h.mgr.Creds.ProjectConfig, []byte(`{nope`), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}

	got := h.mgr.Status()
	want := []setup.TierStatus{
		{Tier: credential.TierEnvironment, Origin: "ANTHROPIC_API_KEY", State: setup.StatePresent, Masked: "...AAAA"},
		{Tier: credential.TierProject, Origin: h.mgr.Creds.ProjectConfig, State: setup.StateInvalid},
		{Tier: credential.TierGlobal, Origin: h.mgr.Creds.GlobalConfig, State: setup.StateAbsent},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestStatus_EmptyValues(t *testing.T) {
	h := newHarness(t, "")
	h.env["ANTHROPIC_API_KEY"] = ""
	if err := os.WriteFile(h.mgr.Creds.ProjectConfig, []byte(`{"other":1}`), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}
	got := h.mgr.Status()
	if got[0].State != setup.StateEmpty || got[1].State != setup.StateEmpty {
		t.Fatalf("got %+v", got)
	}
}

func TestPrintStatus_NeverLeaksSecrets(t *testing.T) {
	const (
		envSecret     = "sk-env-SECRET-1111"
		projectSecret = "sk-project-SECRET-2222"
		globalSecret  = "sk-global-SECRET-3333"
	)
	h := newHarness(t, "")
	h.env["ANTHROPIC_API_KEY"] = envSecret
	if err := os.WriteFile(h.mgr.Creds.ProjectConfig, []byte(`{"anthropic_api_key":"`+projectSecret+`"}`), 0o644); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(h.mgr.Creds.GlobalConfig), 0o755); err != nil {
		t.Fatalf("prep: %v", err)
	}
	if err := os.WriteFile(h.mgr.Creds.GlobalConfig, []byte(`{"anthropic_api_key":"`+globalSecret+`"}`), 0o600); err != nil {
		t.Fatalf("prep: %v", err)
	}

	h.mgr.PrintStatus()
	out := h.out.String()

	for _, secret := range []string{envSecret, projectSecret, globalSecret} {
		// Anything longer than the last four characters must not appear.
		if strings.Contains(out, secret[len(secret)-5:]) {
			t.Fatalf("status leaked more than 4 chars of %q:\n%s", secret, out)
		}
		if !strings.Contains(out, "..."+secret[len(secret)-4:]) {
			t.Fatalf("status missing masked suffix of %q:\n%s", secret, out)
		}
	}
	if !strings.Contains(out, "Priority: Environment > Project > Global") {
		t.Fatalf("missing priority line:\n%s", out)
	}
}
