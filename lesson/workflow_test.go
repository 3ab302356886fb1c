package lesson

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/approwess/sahayak-ai/catalog"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/visual"
)

const singlePlanResponse = "**Objectives**\nStudents add numbers up to ten.\n**Practice**\nWorksheet time."

func newTestProvider(patterns map[string]string) *llm.MockProvider {
	provider := llm.NewMockProvider("test")
	provider.SetResponsePattern(patterns)
	return provider
}

func TestDetermineClassType(t *testing.T) {
	tests := []struct {
		grades string
		want   ClassType
	}{
		{"3", ClassSingle},
		{"", ClassSingle},
		{"1,2", ClassMultigrade},
		{" 1 , 2 , ", ClassMultigrade},
		{"4,", ClassSingle},
		{"3-5", ClassSingle},
	}
	for _, tt := range tests {
		if got := DetermineClassType(tt.grades); got != tt.want {
			t.Errorf("DetermineClassType(%q) = %v, want %v", tt.grades, got, tt.want)
		}
	}
}

func TestGenerateSingleGrade(t *testing.T) {
	provider := newTestProvider(map[string]string{
		"Professor Agent": singlePlanResponse,
		"resource_list":   "not json at all",
	})
	engine := NewEngine(provider, nil, nil, nil)

	state, err := engine.Generate(context.Background(), NewState(Request{
		Subject: "Math",
		Grades:  "2",
		Topic:   "Addition",
		Medium:  "Hindi",
		Message: "Plan a week on addition",
	}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if state.ClassType != ClassSingle {
		t.Errorf("ClassType = %v, want %v", state.ClassType, ClassSingle)
	}
	if state.LessonPlan != singlePlanResponse {
		t.Errorf("unexpected lesson plan: %q", state.LessonPlan)
	}

	first := provider.Prompts()[0]
	for _, want := range []string{"Math", "Addition", "Plan a week on addition", "Grade Level: 2"} {
		if !strings.Contains(first, want) {
			t.Errorf("strategy prompt missing %q", want)
		}
	}
}

func TestGenerateMissingConversation(t *testing.T) {
	engine := NewEngine(newTestProvider(nil), nil, nil, nil)

	state := &State{Subject: "Math", Grades: "2"}
	_, err := engine.Generate(context.Background(), state)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Generate error = %v, want ErrMissingInput", err)
	}
	if state.LessonPlan != "" {
		t.Errorf("lesson plan set despite missing input: %q", state.LessonPlan)
	}
}

func TestGenerateTextFailureIsFatal(t *testing.T) {
	provider := llm.NewMockProvider("test")
	provider.SetError("model unavailable")
	engine := NewEngine(provider, nil, nil, nil)

	_, err := engine.Generate(context.Background(), NewState(Request{Grades: "2"}))
	if err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("Generate error = %v, want model unavailable", err)
	}
}

func TestGenerateMultigradeUsesCatalog(t *testing.T) {
	cat := catalog.NewCatalog([]catalog.Entry{
		{Grade: "3", Medium: "Marathi", Subject: "Math", Topic: "Fractions", Link: "http://example.com/ch3"},
		{Grade: "7", Medium: "Marathi", Subject: "Math", Topic: "Algebra", Link: "http://example.com/ch7"},
	})
	provider := newTestProvider(map[string]string{
		"multigrade classroom": "An integrated plan.",
		"resource_list":        "not json",
	})
	engine := NewEngine(provider, nil, cat, nil)

	state, err := engine.Generate(context.Background(), NewState(Request{
		Subject: "Math",
		Grades:  "3,4",
		Topic:   "Fractions",
		Medium:  "Marathi",
	}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if state.ClassType != ClassMultigrade {
		t.Errorf("ClassType = %v, want %v", state.ClassType, ClassMultigrade)
	}

	first := provider.Prompts()[0]
	if !strings.Contains(first, "balbharti textbook http://example.com/ch3") {
		t.Errorf("multigrade prompt missing matched resource line:\n%s", first)
	}
	if strings.Contains(first, "ch7") {
		t.Errorf("multigrade prompt contains out-of-grade resource:\n%s", first)
	}
}

func TestGenerateEnrichmentSuccess(t *testing.T) {
	enriched := `{"resource_list": [{"unique_id": "res-1", "type": "image", "grade": "2"}], ` +
		`"lesson_plan": "Show the chapter picture [Resource: res-1] before practice."}`
	provider := newTestProvider(map[string]string{
		"Professor Agent": singlePlanResponse,
		"resource_list":   enriched,
	})
	engine := NewEngine(provider, nil, nil, nil)

	state, err := engine.Generate(context.Background(), NewState(Request{Grades: "2"}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(state.Resources) != 1 || state.Resources[0].UniqueID != "res-1" {
		t.Fatalf("Resources = %+v", state.Resources)
	}
	wantURL := DefaultResourceBaseURL + "res-1.jpg"
	if state.Resources[0].URL != wantURL {
		t.Errorf("resource URL = %q, want %q", state.Resources[0].URL, wantURL)
	}
	if !strings.Contains(state.LessonPlan, wantURL) {
		t.Errorf("placeholder not resolved in plan: %q", state.LessonPlan)
	}
	if strings.Contains(state.LessonPlan, "[Resource:") {
		t.Errorf("unresolved placeholder left in plan: %q", state.LessonPlan)
	}
	if !strings.Contains(state.LessonPlanWithResourceMapping, "[Resource: res-1]") {
		t.Errorf("mapping copy lost its placeholder: %q", state.LessonPlanWithResourceMapping)
	}
}

func TestGenerateEnrichmentFailureKeepsPlan(t *testing.T) {
	provider := newTestProvider(map[string]string{
		"Professor Agent": singlePlanResponse,
		"resource_list":   "sorry, no JSON today",
	})
	engine := NewEngine(provider, nil, nil, nil)

	state, err := engine.Generate(context.Background(), NewState(Request{Grades: "2"}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if state.LessonPlan != singlePlanResponse {
		t.Errorf("lesson plan changed by failed enrichment: %q", state.LessonPlan)
	}
	if state.Resources != nil {
		t.Errorf("Resources = %+v, want nil", state.Resources)
	}
	if state.LessonPlanWithResourceMapping != "" {
		t.Errorf("mapping set despite failed enrichment")
	}
}

func TestResolveResourceURLs(t *testing.T) {
	resources := ResolveResourceURLs([]Resource{
		{UniqueID: "a1", Type: "image"},
		{UniqueID: "b2", Type: "audio"},
		{UniqueID: "c3", Type: "video"},
		{UniqueID: "d4", Type: "worksheet"},
	}, "https://cdn.example.com/")

	want := []string{
		"https://cdn.example.com/a1.jpg",
		"https://cdn.example.com/b2.wav",
		"https://cdn.example.com/c3.mp4",
		"https://cdn.example.com/d4",
	}
	for i, r := range resources {
		if r.URL != want[i] {
			t.Errorf("resource %d URL = %q, want %q", i, r.URL, want[i])
		}
	}
}

func TestReplacePlaceholders(t *testing.T) {
	resources := ResolveResourceURLs([]Resource{{UniqueID: "res-1", Type: "image"}}, "")
	text := "See [Resource: res-1] and also [Resource: unknown]."

	got := ReplacePlaceholders(text, resources)
	if !strings.Contains(got, DefaultResourceBaseURL+"res-1.jpg") {
		t.Errorf("known placeholder not replaced: %q", got)
	}
	if !strings.Contains(got, "[Resource: unknown]") {
		t.Errorf("unknown placeholder not left verbatim: %q", got)
	}
	if again := ReplacePlaceholders(got, resources); again != got {
		t.Errorf("replacement not idempotent:\nfirst  %q\nsecond %q", got, again)
	}
}

func TestVisualContentBounded(t *testing.T) {
	images := llm.NewMockImageProvider("imagen", t.TempDir())
	step := &visualContentStep{ctx: context.Background(), images: images, maxImages: DefaultMaxImages}

	state := &State{LessonPlan: singlePlanResponse}
	for i := 0; i < 10; i++ {
		state.ImageRequirements = append(state.ImageRequirements, visual.Requirement{
			Section:     "Section " + string(rune('A'+i)),
			Description: "scene",
			Prompt:      "draw a scene",
		})
	}

	items := step.Prep(state)
	var results []imageResult
	for _, item := range items {
		r, _ := step.Exec(item)
		results = append(results, r)
	}
	step.Post(state, items, results...)

	if images.GetCallCount() != DefaultMaxImages {
		t.Errorf("image calls = %d, want %d", images.GetCallCount(), DefaultMaxImages)
	}
	if len(state.GeneratedImages) != DefaultMaxImages {
		t.Errorf("generated images = %d, want %d", len(state.GeneratedImages), DefaultMaxImages)
	}
	if _, ok := state.GeneratedImages["section_a"]; !ok {
		t.Errorf("section key not normalized: %v", state.GeneratedImages)
	}
}

func TestVisualContentPartialFailure(t *testing.T) {
	images := llm.NewMockImageProvider("imagen", t.TempDir())
	images.FailSection("Hook")
	step := &visualContentStep{ctx: context.Background(), images: images, maxImages: DefaultMaxImages}

	state := &State{
		LessonPlan: singlePlanResponse,
		ImageRequirements: []visual.Requirement{
			{Section: "Hook", Description: "a", Prompt: "p"},
			{Section: "Practice", Description: "b", Prompt: "p"},
		},
	}

	items := step.Prep(state)
	var results []imageResult
	for _, item := range items {
		r, _ := step.Exec(item)
		results = append(results, r)
	}
	step.Post(state, items, results...)

	if len(state.GeneratedImages) != 1 {
		t.Fatalf("generated images = %v, want only the surviving section", state.GeneratedImages)
	}
	if _, ok := state.GeneratedImages["practice"]; !ok {
		t.Errorf("surviving section missing: %v", state.GeneratedImages)
	}
	found := false
	for _, msg := range state.VisualGenerationErrors {
		if strings.Contains(msg, "Hook") {
			found = true
		}
	}
	if !found {
		t.Errorf("failure for Hook not recorded: %v", state.VisualGenerationErrors)
	}
}

func TestGenerateWithVisuals(t *testing.T) {
	extraction := `[{"section": "Hook Activity", "description": "children counting mangoes"},` +
		`{"section": "Practice", "description": "worksheet with ten apples"}]`
	provider := newTestProvider(map[string]string{
		"Professor Agent":   singlePlanResponse,
		"resource_list":     "not json",
		"identify sections": extraction,
	})
	images := llm.NewMockImageProvider("imagen", t.TempDir())
	documents := visual.NewDocumentBuilder(t.TempDir())
	engine := NewEngine(provider, images, nil, documents)

	state, err := engine.Generate(context.Background(), NewState(Request{
		Grades:          "2",
		GenerateVisuals: true,
	}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(state.ImageRequirements) != 2 {
		t.Fatalf("requirements = %d, want 2", len(state.ImageRequirements))
	}
	if images.GetCallCount() != 2 {
		t.Errorf("image calls = %d, want 2", images.GetCallCount())
	}
	if state.VisualDocumentPath == "" {
		t.Errorf("visual document not assembled; errors: %v", state.VisualGenerationErrors)
	}
}

func TestGenerateVisualsAllImagesFail(t *testing.T) {
	provider := newTestProvider(map[string]string{
		"Professor Agent":   singlePlanResponse,
		"resource_list":     "not json",
		"identify sections": "[]",
	})
	images := llm.NewMockImageProvider("imagen", t.TempDir())
	images.SetError("quota exceeded")
	documents := visual.NewDocumentBuilder(t.TempDir())
	engine := NewEngine(provider, images, nil, documents)

	state, err := engine.Generate(context.Background(), NewState(Request{
		Grades:          "2",
		GenerateVisuals: true,
	}))
	if err != nil {
		t.Fatalf("image failures must not fail the run: %v", err)
	}
	if state.VisualDocumentPath != "" {
		t.Errorf("document assembled with zero images: %q", state.VisualDocumentPath)
	}
	// extraction returned nothing, so the defaults were attempted
	if len(state.ImageRequirements) != 3 {
		t.Errorf("requirements = %d, want 3 defaults", len(state.ImageRequirements))
	}
	if len(state.VisualGenerationErrors) != 3 {
		t.Errorf("recorded errors = %v, want one per failed image", state.VisualGenerationErrors)
	}
}

func TestGenerateVisualsOffSkipsExtraction(t *testing.T) {
	provider := newTestProvider(map[string]string{
		"Professor Agent": singlePlanResponse,
		"resource_list":   "not json",
	})
	engine := NewEngine(provider, nil, nil, nil)

	state, err := engine.Generate(context.Background(), NewState(Request{Grades: "2"}))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if state.ImageRequirements != nil {
		t.Errorf("requirements extracted without visuals: %+v", state.ImageRequirements)
	}
	// strategy + enrichment only
	if provider.GetCallCount() != 2 {
		t.Errorf("provider calls = %d, want 2", provider.GetCallCount())
	}
}
