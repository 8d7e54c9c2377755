// Package telemetry appends run events to a local JSONL file.
//
// Events never carry the API key. Emission problems are reported on stderr and
// never fail the run.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir holds events.jsonl, relative to the working directory.
var Dir = ".letter"

// Emit writes a single JSON line to Dir/events.jsonl when ObserveEnabled.
// It augments fields with RFC3339Nano time, the event name, and the run ID
// carried by ctx.
func Emit(ctx context.Context, name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Make a shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name
	if id, ok := RunIDFromContext(ctx); ok {
		m["run_id"] = id
	}

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(Dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", Dir, err)
		return
	}

	path := filepath.Join(Dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
