// Package notes finds the memory note to turn into a blog post.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/fsops"
)

// Locator resolves note names against Dir.
type Locator struct {
	Dir string
}

// Candidate is a note file that follows one of the naming conventions.
type Candidate struct {
	Path string
	Key  SortKey
}

// Locate returns the path of the note to process. A non-empty name is used
// as-is when absolute and joined to Dir otherwise; an empty name selects the
// most recent note in Dir.
func (l Locator) Locate(name string) (string, error) {
	if name != "" {
		return l.resolve(name)
	}
	latest, err := l.Latest()
	if err != nil {
		return "", err
	}
	return latest.Path, nil
}

func (l Locator) resolve(name string) (string, error) {
	target := name
	if !filepath.IsAbs(name) {
		target = filepath.Join(l.Dir, name)
	}
	fi, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.WithPath(apperr.NotFound, "file not found", target)
		}
		return "", fmt.Errorf("stat %s: %w", target, err)
	}
	if fi.IsDir() {
		return "", apperr.WithPath(apperr.NotAFile, "path is a directory", target)
	}
	return target, nil
}

// Latest returns the candidate with the greatest SortKey.
func (l Locator) Latest() (Candidate, error) {
	cands, err := l.Candidates()
	if err != nil {
		return Candidate{}, err
	}
	if len(cands) == 0 {
		return Candidate{}, apperr.WithPath(apperr.NoCandidates, "no numbered letter files found", l.Dir)
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Key.Compare(best.Key) > 0 {
			best = c
		}
	}
	return best, nil
}

// Candidates lists the files directly under Dir whose names parse as a
// SortKey, in directory order. Other entries are skipped.
func (l Locator) Candidates() ([]Candidate, error) {
	if !fsops.IsDir(l.Dir) {
		return nil, apperr.WithPath(apperr.DirNotFound, "memory directory not found", l.Dir)
	}
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.Dir, err)
	}
	var out []Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key, ok := ParseName(e.Name())
		if !ok {
			continue
		}
		out = append(out, Candidate{Path: filepath.Join(l.Dir, e.Name()), Key: key})
	}
	return out, nil
}
