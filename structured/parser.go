// Package structured turns free-form LLM output into typed values. Models
// wrap payloads in code fences, lead with prose, or trail with commentary;
// every call site that expects JSON goes through this package so the
// extraction heuristics live (and are tested) in exactly one place.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes a surrounding markdown code fence, including an
// optional language tag, and trims whitespace. Input without fences is
// returned trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language identifier on the opening line, if any.
	if idx := strings.Index(s, "\n"); idx != -1 {
		first := strings.TrimSpace(s[:idx])
		if first != "" && !strings.ContainsAny(first, "{}[]\"") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// FirstObject returns the first balanced top-level JSON object literal in s,
// or "" when none exists.
func FirstObject(s string) string {
	return firstLiteral(s, '{', '}')
}

// FirstArray returns the first balanced top-level JSON array literal in s,
// or "" when none exists.
func FirstArray(s string) string {
	return firstLiteral(s, '[', ']')
}

// firstLiteral scans for a balanced literal delimited by open/close,
// honoring string quoting and escapes so delimiters inside values do not
// terminate the scan early.
func firstLiteral(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == open:
			depth++
		case !inString && c == close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// DecodeObject parses the first JSON object found in an LLM response into T.
func DecodeObject[T any](response string) (*T, error) {
	content := StripCodeFences(response)
	literal := FirstObject(content)
	if literal == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(literal), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}
	return &result, nil
}

// DecodeArray parses the first JSON array found in an LLM response into a
// slice of T.
func DecodeArray[T any](response string) ([]T, error) {
	content := StripCodeFences(response)
	literal := FirstArray(content)
	if literal == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var result []T
	if err := json.Unmarshal([]byte(literal), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	return result, nil
}
