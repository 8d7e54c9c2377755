package telemetry

import "os"

// ObserveEnv enables JSONL emission when set to "1".
const ObserveEnv = "LETTER_OBSERVE_JSON"

// ObserveEnabled reports whether JSONL emission is on. It is read on every
// call so a .env file loaded after startup still takes effect.
func ObserveEnabled() bool {
	return os.Getenv(ObserveEnv) == "1"
}
