package lesson

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/core"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/visual"
)

// DefaultMaxImages bounds how many illustrations one run may request.
const DefaultMaxImages = 3

// extractRequirementsStep runs the two-pass requirement extraction over the
// lesson plan. When extraction comes back empty the fixed defaults stand in,
// so a visuals run always has something to illustrate.
type extractRequirementsStep struct {
	ctx       context.Context
	extractor *visual.Extractor
}

func (s *extractRequirementsStep) Prep(state *State) []string {
	if state.LessonPlan == "" {
		state.VisualGenerationErrors = append(state.VisualGenerationErrors,
			"No lesson plan available for visual generation")
		return nil
	}
	return []string{state.LessonPlan}
}

func (s *extractRequirementsStep) Exec(lessonPlan string) ([]visual.Requirement, error) {
	return s.extractor.Extract(s.ctx, lessonPlan), nil
}

func (s *extractRequirementsStep) Post(state *State, items []string, results ...[]visual.Requirement) core.Action {
	if len(results) == 0 {
		return core.ActionSuccess
	}
	requirements := results[0]
	if len(requirements) == 0 {
		requirements = visual.DefaultRequirements()
	}
	state.ImageRequirements = requirements
	logrus.WithField("requirements", len(requirements)).Info("visual requirements extracted")
	return core.ActionSuccess
}

func (s *extractRequirementsStep) ExecFallback(err error) []visual.Requirement {
	return visual.DefaultRequirements()
}

// imageResult pairs a generated image with the section it illustrates.
// Failures travel in Err so Post still knows which section they belong to.
type imageResult struct {
	Section string
	Path    string
	Err     error
}

// visualContentStep generates at most maxImages illustrations and, when at
// least one succeeds, assembles the illustrated document. Individual image
// failures are recorded and skipped.
type visualContentStep struct {
	ctx       context.Context
	images    llm.ImageProvider
	documents *visual.DocumentBuilder
	maxImages int
}

func (s *visualContentStep) Prep(state *State) []visual.Requirement {
	if len(state.ImageRequirements) == 0 {
		state.VisualGenerationErrors = append(state.VisualGenerationErrors,
			"No image requirements found")
		return nil
	}
	limit := s.maxImages
	if limit <= 0 {
		limit = DefaultMaxImages
	}
	requirements := state.ImageRequirements
	if len(requirements) > limit {
		requirements = requirements[:limit]
	}
	return requirements
}

func (s *visualContentStep) Exec(req visual.Requirement) (imageResult, error) {
	if s.images == nil {
		return imageResult{Section: req.Section, Err: fmt.Errorf("image generation not configured")}, nil
	}
	path, err := s.images.GenerateImage(s.ctx, req.Prompt, req.Section)
	if err != nil {
		return imageResult{Section: req.Section, Err: err}, nil
	}
	return imageResult{Section: req.Section, Path: path}, nil
}

func (s *visualContentStep) Post(state *State, items []visual.Requirement, results ...imageResult) core.Action {
	for _, r := range results {
		if r.Err != nil {
			logrus.WithError(r.Err).WithField("section", r.Section).Warn("image generation failed")
			state.VisualGenerationErrors = append(state.VisualGenerationErrors,
				fmt.Sprintf("Error generating image for %s: %v", r.Section, r.Err))
			continue
		}
		if state.GeneratedImages == nil {
			state.GeneratedImages = make(map[string]string)
		}
		state.GeneratedImages[visual.NormalizeSectionKey(r.Section)] = r.Path
	}

	if len(state.GeneratedImages) > 0 && s.documents != nil {
		path, err := s.documents.Build(state.LessonPlan, state.GeneratedImages)
		if err != nil {
			logrus.WithError(err).Warn("visual document assembly failed")
			state.VisualGenerationErrors = append(state.VisualGenerationErrors,
				fmt.Sprintf("Error creating visual document: %v", err))
		} else {
			state.VisualDocumentPath = path
		}
	}
	return core.ActionSuccess
}

func (s *visualContentStep) ExecFallback(err error) imageResult {
	return imageResult{Err: err}
}
