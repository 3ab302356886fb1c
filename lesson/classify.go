package lesson

import (
	"strings"

	"github.com/approwess/sahayak-ai/core"
)

// DetermineClassType classifies a grades string. More than one non-empty
// comma-separated token means a multigrade classroom; everything else,
// including the empty string, is a single-grade classroom.
func DetermineClassType(grades string) ClassType {
	count := 0
	for _, g := range strings.Split(grades, ",") {
		if strings.TrimSpace(g) != "" {
			count++
		}
	}
	if count > 1 {
		return ClassMultigrade
	}
	return ClassSingle
}

// classifyStep inspects the requested grades and routes the flow to the
// matching generation strategy. It never calls the model.
type classifyStep struct{}

func (classifyStep) Prep(state *State) []string {
	return []string{state.Grades}
}

func (classifyStep) Exec(grades string) (ClassType, error) {
	return DetermineClassType(grades), nil
}

func (classifyStep) Post(state *State, items []string, results ...ClassType) core.Action {
	classType := ClassSingle
	if len(results) > 0 {
		classType = results[0]
	}
	state.ClassType = classType
	if classType == ClassMultigrade {
		return ActionMultigrade
	}
	return ActionSingle
}

func (classifyStep) ExecFallback(err error) ClassType {
	return ClassSingle
}
