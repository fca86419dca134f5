package meta

import (
	"strings"

	"github.com/aio-labs/aio/internal/document"
)

// Well-known keys.
const (
	KeyOutputDir   = "output_dir"
	KeyProjectName = "project_name"
	KeySolutionDir = "solution_dir"
	KeyAioVersion  = "aio_version"
	KeyVersion     = "version"
)

// Defaults for well-known keys.
const (
	DefaultOutputDir   = "build"
	DefaultProjectName = "Aio Project"
	DefaultSolutionDir = "vs_solution"
)

// Parse extracts the first <meta> block from a document and parses it. A
// document without a metadata block yields an empty Config.
func Parse(text string) *Config {
	body, ok := document.Extract(text).First(document.KindMeta)
	if !ok {
		return NewConfig()
	}
	return ParseBody(body)
}

// ParseBody parses the inner text of a metadata block.
func ParseBody(body string) *Config {
	cfg := NewConfig()
	for _, seg := range splitTopLevel(stripCommentLines(body), true) {
		seg = strings.TrimSpace(seg)
		if seg == "" || strings.HasPrefix(seg, "#") {
			continue
		}
		key, raw, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		key = unquote(key)
		if key == "" {
			continue
		}
		cfg.Set(key, parseValue(raw))
	}
	return cfg
}

func parseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		var items []string
		for _, item := range splitTopLevel(raw[1:len(raw)-1], false) {
			if item = unquote(item); item != "" {
				items = append(items, item)
			}
		}
		return List(items...)
	}
	return Scalar(unquote(raw))
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// stripCommentLines drops lines whose first non-space character is '#'.
func stripCommentLines(body string) string {
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// splitTopLevel splits s on commas (and newlines when lines is set) that sit
// outside double quotes and square brackets.
func splitTopLevel(s string, lines bool) []string {
	var (
		parts   []string
		depth   int
		inQuote bool
		start   int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (c == ',' || (lines && c == '\n')):
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
