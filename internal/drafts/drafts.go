// Package drafts persists generated blog posts.
package drafts

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/petasbytes/letter-blog/internal/fsops"
)

// DateLayout is the date embedded in draft file names.
const DateLayout = "2006-01-02"

// Writer saves drafts under Dir.
type Writer struct {
	Dir string
	// Now defaults to time.Now.
	Now func() time.Time
}

// FileName returns blog_<date>_<source stem>.md.
func FileName(date time.Time, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("blog_%s_%s.md", date.Format(DateLayout), stem)
}

// Save writes text to Dir, creating it if needed, and returns the draft path.
// A draft from the same source on the same day is replaced.
func (w Writer) Save(text, source string) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	if err := fsops.EnsureDir(w.Dir); err != nil {
		return "", fmt.Errorf("create drafts dir: %w", err)
	}
	path := filepath.Join(w.Dir, FileName(now(), source))
	if err := fsops.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write draft %s: %w", path, err)
	}
	return path, nil
}
