package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Template is an email body with the metadata from its YAML frontmatter.
type Template struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the "subject" metadata entry, matching the key
// case-insensitively. Empty when missing or not a string.
func (t *Template) Subject() string {
	for k, v := range t.Metadata {
		if strings.EqualFold(k, "subject") {
			s, _ := v.(string)
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// ParseTemplate splits optional YAML frontmatter from an email body:
//
//	---
//	subject: Welcome, <%= name %>
//	---
//	<h1>Hello</h1>
//
// Frontmatter is recognized only when the first line is exactly "---".
// Anything else is returned untouched as the body.
func ParseTemplate(content []byte) (*Template, error) {
	text := string(content)

	first, rest, found := cutLine(text)
	if first != frontmatterDelimiter {
		return &Template{Metadata: map[string]any{}, Body: text}, nil
	}
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	var (
		meta   strings.Builder
		line   string
		closed bool
	)
	for rest != "" || found {
		line, rest, found = cutLine(rest)
		if line == frontmatterDelimiter {
			closed = true
			break
		}
		meta.WriteString(line)
		meta.WriteByte('\n')
		if !found {
			break
		}
	}
	if !closed {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	metadata := map[string]any{}
	if strings.TrimSpace(meta.String()) != "" {
		if err := yaml.Unmarshal([]byte(meta.String()), &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: rest}, nil
}

// cutLine returns the first line of s without its line ending, and the
// remainder after it. found is false when s has no line ending.
func cutLine(s string) (line, rest string, found bool) {
	line, rest, found = strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r"), rest, found
}
