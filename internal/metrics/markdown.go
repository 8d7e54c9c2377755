// Package metrics derives size features from note and draft text.
package metrics

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Stats holds size features of a markdown document.
type Stats struct {
	Bytes    int `json:"bytes"`
	Runes    int `json:"runes"`
	Words    int `json:"words"`
	Lines    int `json:"lines"`
	Headings int `json:"headings"`
}

// Measure computes Stats for s. Headings counts ATX headings ("# ", "## ", ...)
// outside fenced code blocks.
func Measure(s string) Stats {
	return Stats{
		Bytes:    len(s),
		Runes:    utf8.RuneCountInString(s),
		Words:    len(strings.Fields(s)),
		Lines:    countLines(s),
		Headings: countHeadings(s),
	}
}

// Fields returns st as a telemetry field map.
func (st Stats) Fields() map[string]any {
	return map[string]any{
		"bytes":    st.Bytes,
		"runes":    st.Runes,
		"words":    st.Words,
		"lines":    st.Lines,
		"headings": st.Headings,
	}
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

func countHeadings(s string) int {
	n := 0
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if isATXHeading(trimmed) {
			n++
		}
	}
	return n
}

func isATXHeading(line string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	return level == len(line) || line[level] == ' ' || line[level] == '\t'
}

// Checksum returns the hex-encoded SHA-256 digest of s.
func Checksum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
