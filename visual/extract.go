// Package visual derives illustration requirements from lesson text,
// generates the matching images, and assembles the downloadable visual
// lesson document.
package visual

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/prompt"
	"github.com/approwess/sahayak-ai/structured"
)

// Requirement describes one desired illustrative image tied to a
// lesson-plan section.
type Requirement struct {
	Section     string `json:"section"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// visualPattern pairs an extraction regex with the section label its
// matches are filed under.
type visualPattern struct {
	re      *regexp.Regexp
	section string
}

// Phrases in lesson plans that reliably indicate a visual aid. Matches
// shorter than minDescriptionLen after trimming are noise and dropped.
var visualPatterns = []visualPattern{
	{regexp.MustCompile(`(?is)Show a picture of (.+?)(?:\.|Ask|Show)`), "Hook Activity"},
	{regexp.MustCompile(`(?is)picture story with (.+?)(?:\.|Ask)`), "Picture Story"},
	{regexp.MustCompile(`(?is)Display (.+?)(?:\.|")`), "Display Material"},
	{regexp.MustCompile(`(?is)\(e\.g\.,\s*(.+?)\)`), "Example Visual"},
	{regexp.MustCompile(`(?is)use (.+?pictures?.+?)(?:\.|Use|Show)`), "Activity Material"},
	{regexp.MustCompile(`(?is)flashcards with (.+?)(?:\.|Play)`), "Flashcard Material"},
}

const minDescriptionLen = 5

// Extractor derives image requirements from lesson text with a rule-based
// pass and a generative pass, deduplicated by description.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an extractor using the given text-generation
// capability for the generative pass.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract runs both passes and merges their output. It never fails: a
// generative pass error yields only the rule-based results, and callers are
// expected to substitute DefaultRequirements when the combined result is
// empty.
func (e *Extractor) Extract(ctx context.Context, lessonPlan string) []Requirement {
	requirements := extractByRules(lessonPlan)
	requirements = append(requirements, e.extractByLLM(ctx, lessonPlan)...)
	return dedupe(requirements)
}

// extractByRules applies the fixed pattern list to the lesson text.
func extractByRules(lessonPlan string) []Requirement {
	var requirements []Requirement
	for _, p := range visualPatterns {
		matches := p.re.FindAllStringSubmatch(lessonPlan, -1)
		for i, match := range matches {
			description := strings.TrimSpace(match[1])
			// Rune count, not bytes: Devanagari text is 3 bytes per
			// character and would otherwise slip past the filter.
			if utf8.RuneCountInString(description) <= minDescriptionLen {
				continue
			}
			requirements = append(requirements, Requirement{
				Section:     fmt.Sprintf("%s %d", p.section, i+1),
				Description: description,
				Prompt:      BuildImagePrompt(description),
			})
		}
	}
	return requirements
}

type extractedRequirement struct {
	Section     string `json:"section"`
	Description string `json:"description"`
}

// extractByLLM asks the model for a JSON array of section/description
// pairs. Any invocation or parse failure yields zero results, not an error.
func (e *Extractor) extractByLLM(ctx context.Context, lessonPlan string) []Requirement {
	response, err := e.provider.CallLLM(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: prompt.ExtractRequirements(lessonPlan)},
	})
	if err != nil {
		logrus.WithError(err).Warn("generative requirement extraction failed")
		return nil
	}

	extracted, err := structured.DecodeArray[extractedRequirement](response.Content)
	if err != nil {
		logrus.WithError(err).Warn("requirement extraction response was not a JSON array")
		return nil
	}

	var requirements []Requirement
	for _, req := range extracted {
		if req.Section == "" || req.Description == "" {
			continue
		}
		requirements = append(requirements, Requirement{
			Section:     req.Section,
			Description: req.Description,
			Prompt:      BuildImagePrompt(req.Description),
		})
	}
	return requirements
}

// dedupe drops requirements whose trimmed, lower-cased description was
// already seen. First occurrence wins, so rule-based results shadow
// generative duplicates.
func dedupe(requirements []Requirement) []Requirement {
	seen := make(map[string]bool, len(requirements))
	var unique []Requirement
	for _, req := range requirements {
		key := strings.ToLower(strings.TrimSpace(req.Description))
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, req)
	}
	return unique
}

// BuildImagePrompt expands a requirement description into a full
// image-generation prompt, picking a style from keywords in the
// description.
func BuildImagePrompt(description string) string {
	lower := strings.ToLower(description)

	var style string
	switch {
	case containsAny(lower, "festival", "celebration"):
		style = "vibrant festival scene, colorful, joyful, child-friendly cartoon style"
	case containsAny(lower, "child", "student"):
		style = "simple cartoon illustration, bright colors, happy children"
	case containsAny(lower, "classroom", "school"):
		style = "clean classroom setting, educational materials visible"
	default:
		style = "simple, clear educational illustration, bright colors, child-friendly"
	}

	return fmt.Sprintf("Create an educational illustration showing %s. Style: %s. Educational content for young learners.", description, style)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// DefaultRequirements is the fixed fallback used when extraction produces
// nothing, so visual generation always has input.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Section:     "Lesson Introduction",
			Description: "teacher presenting lesson to engaged students in bright classroom",
			Prompt:      "friendly teacher showing educational materials to young students in a colorful classroom, cartoon illustration style",
		},
		{
			Section:     "Learning Activity",
			Description: "children participating in educational activity with visual materials",
			Prompt:      "happy children working together with educational pictures and materials, bright colors, learning environment",
		},
		{
			Section:     "Practice Exercise",
			Description: "students completing practice work with visual aids",
			Prompt:      "young students writing and using visual learning aids, educational worksheet, encouraging classroom scene",
		},
	}
}
