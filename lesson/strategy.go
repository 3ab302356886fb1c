package lesson

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/catalog"
	"github.com/approwess/sahayak-ai/core"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/prompt"
)

// generationResult carries one model call outcome through Exec into Post.
type generationResult struct {
	Content string
	Err     error
}

// lastUserMessage returns the content of the most recent user message, or
// "" when the conversation has none.
func lastUserMessage(messages []llm.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// singleGradeStep generates a one-week lesson plan for a single grade
// classroom. A generation failure here is fatal to the run.
type singleGradeStep struct {
	ctx      context.Context
	provider llm.Provider
}

func (s *singleGradeStep) Prep(state *State) []string {
	request := lastUserMessage(state.Messages)
	if request == "" {
		return nil
	}
	return []string{prompt.SingleGradeLesson(prompt.SingleGradeParams{
		Subject:      state.Subject,
		Grades:       state.Grades,
		Topic:        state.Topic,
		SpecialNeeds: state.SpecialNeeds,
		Request:      request,
	})}
}

func (s *singleGradeStep) Exec(promptText string) (generationResult, error) {
	response, err := s.provider.CallLLM(s.ctx, []llm.Message{{Role: llm.RoleUser, Content: promptText}})
	if err != nil {
		return generationResult{}, err
	}
	return generationResult{Content: response.Content}, nil
}

func (s *singleGradeStep) Post(state *State, items []string, results ...generationResult) core.Action {
	if len(items) == 0 {
		state.err = ErrMissingInput
		return core.ActionFailure
	}
	if results[0].Err != nil {
		state.err = results[0].Err
		return core.ActionFailure
	}
	state.LessonPlan = results[0].Content
	logrus.WithField("class_type", ClassSingle).Info("lesson plan generated")
	return core.ActionSuccess
}

func (s *singleGradeStep) ExecFallback(err error) generationResult {
	return generationResult{Err: err}
}

// multigradeStep generates an integrated lesson plan spanning the requested
// grades, folding matched catalog resources into the prompt.
type multigradeStep struct {
	ctx      context.Context
	provider llm.Provider
	catalog  *catalog.Catalog
}

func (s *multigradeStep) Prep(state *State) []string {
	var lines []string
	if s.catalog != nil {
		matches := s.catalog.FindByCriteria(state.Grades, state.Medium, state.Subject, state.Topic)
		for _, m := range matches {
			lines = append(lines, prompt.ResourceLine(m.Grade, m.Medium, m.Link))
		}
	}
	return []string{prompt.MultigradeLesson(prompt.MultigradeParams{
		Grades:         state.Grades,
		Topic:          state.Topic,
		Subject:        state.Subject,
		Medium:         state.Medium,
		LearningLevels: []string{"Beginner", "Intermediate", "Advanced"},
		ResourcesText:  prompt.FormatResources(lines),
	})}
}

func (s *multigradeStep) Exec(promptText string) (generationResult, error) {
	response, err := s.provider.CallLLM(s.ctx, []llm.Message{{Role: llm.RoleUser, Content: promptText}})
	if err != nil {
		return generationResult{}, err
	}
	return generationResult{Content: response.Content}, nil
}

func (s *multigradeStep) Post(state *State, items []string, results ...generationResult) core.Action {
	if len(results) == 0 {
		state.err = ErrMissingInput
		return core.ActionFailure
	}
	if results[0].Err != nil {
		state.err = results[0].Err
		return core.ActionFailure
	}
	state.LessonPlan = results[0].Content
	logrus.WithField("class_type", ClassMultigrade).Info("lesson plan generated")
	return core.ActionSuccess
}

func (s *multigradeStep) ExecFallback(err error) generationResult {
	return generationResult{Err: err}
}
