package apperr_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/petasbytes/letter-blog/internal/apperr"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := apperr.WithPath(apperr.NotFound, "file not found", "/tmp/x.md")
	wrapped := fmt.Errorf("locate: %w", base)

	if got := apperr.KindOf(wrapped); got != apperr.NotFound {
		t.Fatalf("KindOf = %q, want %q", got, apperr.NotFound)
	}
	if !apperr.IsKind(wrapped, apperr.NotFound) {
		t.Fatal("IsKind should match through fmt.Errorf wrapping")
	}
	if apperr.IsKind(wrapped, apperr.NoCandidates) {
		t.Fatal("IsKind matched the wrong kind")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if got := apperr.KindOf(errors.New("boom")); got != "" {
		t.Fatalf("KindOf(plain) = %q, want empty", got)
	}
	if apperr.IsKind(nil, apperr.NotFound) {
		t.Fatal("IsKind(nil) should be false")
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	e := apperr.Wrap(apperr.InvalidConfig, "read config", os.ErrPermission)
	if !errors.Is(e, os.ErrPermission) {
		t.Fatal("expected Unwrap to expose the cause")
	}
	want := "read config: " + os.ErrPermission.Error()
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}

	bare := &apperr.Error{Kind: apperr.EmptyInput}
	if bare.Error() != "empty_input" {
		t.Fatalf("bare Error() = %q", bare.Error())
	}
}
