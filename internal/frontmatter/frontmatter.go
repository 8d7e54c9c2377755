// Package frontmatter reads the YAML header of a generated blog post.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Result holds the output of parsing a Markdown document.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Title       string
	Date        string
	Tags        []string
	Excerpt     string
}

// HasFrontmatter reports whether a valid YAML header was found.
func (r *Result) HasFrontmatter() bool {
	return r.Frontmatter != nil
}

// Parse splits frontmatter from body and extracts the post fields.
// Invalid or unterminated frontmatter leaves the whole input as body.
func Parse(data []byte) (*Result, error) {
	fm, body := split(data)
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Date:        scalar(fm, "date"),
		Tags:        extractTags(fm),
		Excerpt:     scalar(fm, "excerpt"),
	}, nil
}

func split(data []byte) (map[string]interface{}, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil || fm == nil {
		return nil, string(data)
	}
	return fm, body
}

// scalar renders a scalar field as text. Dates decoded as time.Time are
// formatted back to YYYY-MM-DD.
func scalar(fm map[string]interface{}, key string) string {
	raw, ok := fm[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// extractTags accepts a YAML list or a comma-separated string.
func extractTags(fm map[string]interface{}) []string {
	var items []string
	switch v := fm["tags"].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.Split(v, ",")
	}

	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if s := scalar(fm, "title"); s != "" {
		return s
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
