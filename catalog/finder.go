package catalog

import (
	"strconv"
	"strings"
)

// Match is a lightweight view of a cataloged resource returned to prompt
// builders.
type Match struct {
	Grade   string
	Medium  string
	Topic   string
	Subject string
	Link    string
}

// FindByCriteria returns every cataloged resource whose grade is in the
// parsed grade set and whose medium and subject pass a case-insensitive
// substring match in either direction. Results are unranked and unbounded;
// callers guard their own prompt growth.
//
// The topic parameter is accepted but not applied, matching the behavior the
// rest of the system was tuned against. Filtering on it would change which
// resources reach the multigrade prompt.
func (c *Catalog) FindByCriteria(grades, medium, subject, topic string) []Match {
	_ = topic

	gradeSet := make(map[string]bool)
	for _, g := range ParseGrades(grades) {
		gradeSet[g] = true
	}

	var matches []Match
	for _, entry := range c.entries {
		if !gradeSet[entry.Grade] {
			continue
		}
		if !substringMatch(medium, entry.Medium) {
			continue
		}
		if !substringMatch(subject, entry.Subject) {
			continue
		}
		matches = append(matches, Match{
			Grade:   entry.Grade,
			Medium:  entry.Medium,
			Topic:   entry.Topic,
			Subject: entry.Subject,
			Link:    entry.Link,
		})
	}
	return matches
}

// substringMatch reports whether query and value match case-insensitively in
// either direction. An empty query matches everything.
func substringMatch(query, value string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	v := strings.ToLower(value)
	return strings.Contains(v, q) || strings.Contains(q, v)
}

// ParseGrades parses a free-text grade specification into grade tokens.
// Comma lists split into individual tokens; "A-B" with two integer ends
// expands to the inclusive range; anything else is a single token. Empty
// input defaults to grade 1.
func ParseGrades(grades string) []string {
	grades = strings.TrimSpace(grades)
	if grades == "" {
		return []string{"1"}
	}

	if strings.Contains(grades, ",") {
		var tokens []string
		for _, g := range strings.Split(grades, ",") {
			if g = strings.TrimSpace(g); g != "" {
				tokens = append(tokens, g)
			}
		}
		return tokens
	}

	if parts := strings.Split(grades, "-"); len(parts) == 2 {
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			var tokens []string
			for i := start; i <= end; i++ {
				tokens = append(tokens, strconv.Itoa(i))
			}
			return tokens
		}
		// Malformed range stays a single opaque token.
		return []string{grades}
	}

	return []string{grades}
}
