package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/petasbytes/letter-blog/internal/apperr"
	"github.com/petasbytes/letter-blog/internal/fsops"
)

// APIKeyField is the document key holding the credential.
const APIKeyField = "anthropic_api_key"

// Document is a top-level JSON object.
type Document map[string]json.RawMessage

// String returns the value of key when it is a JSON string.
func (d Document) String(key string) (string, bool) {
	raw, ok := d[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetString sets key to the JSON string v, leaving other keys alone.
func (d Document) SetString(key, v string) {
	b, _ := json.Marshal(v)
	d[key] = b
}

// Read parses the document at path. A missing file is reported with an error
// satisfying errors.Is(err, os.ErrNotExist); unparsable content as an
// apperr.InvalidConfig error.
func Read(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &apperr.Error{Kind: apperr.InvalidConfig, Message: "invalid config", Path: path, Err: err}
	}
	if doc == nil {
		// literal null
		return nil, apperr.WithPath(apperr.InvalidConfig, "config is not a JSON object", path)
	}
	return doc, nil
}

// Load is Read with a missing file treated as an empty document.
func Load(path string) (Document, error) {
	doc, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return nil, err
	}
	return doc, nil
}

// Marshal renders doc with two-space indentation and a trailing newline.
func Marshal(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Save replaces the file at path with doc, leaving it at mode perm whether or
// not it existed before. The parent directory must exist.
func Save(path string, doc Document, perm os.FileMode) error {
	b, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("configfile: marshal: %w", err)
	}
	if err := fsops.WriteFile(path, b, perm); err != nil {
		return fmt.Errorf("configfile: %w", err)
	}
	return nil
}
