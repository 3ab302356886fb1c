package lesson

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/core"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/prompt"
	"github.com/approwess/sahayak-ai/structured"
)

// DefaultResourceBaseURL is where resolved resource links point unless the
// deployment overrides it.
const DefaultResourceBaseURL = "https://storage.googleapis.com/edu-resources/"

// extensionForType maps a resource type to the file extension used when
// building its URL. Unknown types get no extension.
func extensionForType(resourceType string) string {
	switch strings.ToLower(strings.TrimSpace(resourceType)) {
	case "image":
		return ".jpg"
	case "audio":
		return ".wav"
	case "video":
		return ".mp4"
	default:
		return ""
	}
}

// ResolveResourceURLs fills in the URL of each resource from the base URL,
// its unique id, and its type extension.
func ResolveResourceURLs(resources []Resource, baseURL string) []Resource {
	if baseURL == "" {
		baseURL = DefaultResourceBaseURL
	}
	resolved := make([]Resource, len(resources))
	for i, r := range resources {
		r.URL = baseURL + r.UniqueID + extensionForType(r.Type)
		resolved[i] = r
	}
	return resolved
}

// ReplacePlaceholders substitutes every [Resource: <unique_id>] token whose
// id appears in resources with that resource's URL. Tokens with no matching
// resource are left verbatim, so the substitution is idempotent.
func ReplacePlaceholders(text string, resources []Resource) string {
	for _, r := range resources {
		if r.UniqueID == "" || r.URL == "" {
			continue
		}
		placeholder := fmt.Sprintf("[Resource: %s]", r.UniqueID)
		text = strings.ReplaceAll(text, placeholder, r.URL)
	}
	return text
}

// enrichmentPayload is the response contract of the enrichment prompt.
type enrichmentPayload struct {
	ResourceList []Resource `json:"resource_list"`
	LessonPlan   string     `json:"lesson_plan"`
}

// enrichStep asks the model to weave resource placeholders into the lesson
// plan, then resolves them to URLs. The update is all or nothing: any
// invocation or parse failure leaves the prior plan untouched and the flow
// continues.
type enrichStep struct {
	ctx      context.Context
	provider llm.Provider
	baseURL  string
}

func (s *enrichStep) Prep(state *State) []string {
	if state.LessonPlan == "" {
		state.VisualGenerationErrors = append(state.VisualGenerationErrors,
			"No lesson plan available for resource enrichment")
		return nil
	}
	return []string{prompt.ResourceEnrichment(state.LessonPlan)}
}

func (s *enrichStep) Exec(promptText string) (generationResult, error) {
	response, err := s.provider.CallLLM(s.ctx, []llm.Message{{Role: llm.RoleUser, Content: promptText}})
	if err != nil {
		return generationResult{}, err
	}
	return generationResult{Content: response.Content}, nil
}

func (s *enrichStep) Post(state *State, items []string, results ...generationResult) core.Action {
	route := ActionDone
	if state.GenerateVisuals {
		route = ActionVisuals
	}
	if len(results) == 0 {
		return route
	}
	if results[0].Err != nil {
		logrus.WithError(results[0].Err).Warn("resource enrichment failed")
		return route
	}

	payload, err := structured.DecodeObject[enrichmentPayload](results[0].Content)
	if err != nil || payload.LessonPlan == "" {
		logrus.WithError(err).Warn("unusable enrichment response")
		return route
	}

	state.Resources = ResolveResourceURLs(payload.ResourceList, s.baseURL)
	state.LessonPlanWithResourceMapping = payload.LessonPlan
	state.LessonPlan = ReplacePlaceholders(payload.LessonPlan, state.Resources)
	logrus.WithField("resources", len(state.Resources)).Info("lesson plan enriched")
	return route
}

func (s *enrichStep) ExecFallback(err error) generationResult {
	return generationResult{Err: err}
}
