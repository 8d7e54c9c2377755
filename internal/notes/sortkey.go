package notes

import (
	"regexp"
	"strings"
)

var (
	datedRe  = regexp.MustCompile(`^letter_(\d{8})_(\d{4})\.md$`)
	legacyRe = regexp.MustCompile(`^letter_(\d+)\.md$`)
)

// SortKey orders note filenames by recency.
//
// Rules:
//   - every dated key is newer than every legacy key
//   - dated keys compare by date, then counter
//   - legacy keys compare numerically on the counter, at any width
type SortKey struct {
	Dated bool
	// Date is the 8-digit date of a dated key, empty for legacy keys.
	Date string
	// Counter holds the counter digits without leading zeros ("0" for zero).
	Counter string
}

// ParseName returns the SortKey for a note filename, or false when the name
// follows neither naming convention.
func ParseName(name string) (SortKey, bool) {
	if m := datedRe.FindStringSubmatch(name); m != nil {
		return SortKey{Dated: true, Date: m[1], Counter: trimZeros(m[2])}, true
	}
	if m := legacyRe.FindStringSubmatch(name); m != nil {
		return SortKey{Counter: trimZeros(m[1])}, true
	}
	return SortKey{}, false
}

// Compare returns -1, 0 or +1 as k is older than, as recent as, or newer
// than o.
func (k SortKey) Compare(o SortKey) int {
	if k.Dated != o.Dated {
		if k.Dated {
			return 1
		}
		return -1
	}
	if c := strings.Compare(k.Date, o.Date); c != 0 {
		return c
	}
	return compareDigits(k.Counter, o.Counter)
}

func (k SortKey) String() string {
	date := k.Date
	if !k.Dated {
		date = "00000000"
	}
	counter := k.Counter
	if n := len(counter); n < 4 {
		counter = strings.Repeat("0", 4-n) + counter
	}
	return date + "_" + counter
}

func trimZeros(digits string) string {
	t := strings.TrimLeft(digits, "0")
	if t == "" {
		return "0"
	}
	return t
}

// compareDigits compares two zero-trimmed decimal strings numerically.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
