package console_test

import (
	"bytes"
	"testing"

	"github.com/petasbytes/letter-blog/internal/console"
)

func TestPrinter_RoutesStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	p := console.New(&out, &errOut, false)

	p.Info("reading %s\n", "a.md")
	p.Warn("careful\n")
	p.Error("broken: %d\n", 7)
	p.Debug("hidden\n")

	if got, want := out.String(), "reading a.md\ncareful\n"; got != want {
		t.Fatalf("out = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "broken: 7\n"; got != want {
		t.Fatalf("errOut = %q, want %q", got, want)
	}
}

func TestPrinter_DebugEnabled(t *testing.T) {
	var out bytes.Buffer
	p := console.New(&out, &out, true)
	p.Debug("model=%s\n", "m")
	if out.String() != "model=m\n" {
		t.Fatalf("out = %q", out.String())
	}
}
