package core

import (
	"errors"
	"fmt"
	"testing"
)

type testState map[string]any

// countingStep records execution order and can fail the first N attempts per
// item to exercise the retry path.
type countingStep struct {
	items        []string
	failuresLeft map[string]int
	execOrder    []string
	fallbacks    int
	postAction   Action
}

func (s *countingStep) Prep(state *testState) []string {
	return s.items
}

func (s *countingStep) Exec(item string) (string, error) {
	s.execOrder = append(s.execOrder, item)
	if n := s.failuresLeft[item]; n > 0 {
		s.failuresLeft[item] = n - 1
		return "", fmt.Errorf("transient failure for %s", item)
	}
	return "done:" + item, nil
}

func (s *countingStep) Post(state *testState, items []string, results ...string) Action {
	(*state)["results"] = results
	return s.postAction
}

func (s *countingStep) ExecFallback(err error) string {
	s.fallbacks++
	return "fallback"
}

func TestNodeRun_SequentialOrder(t *testing.T) {
	step := &countingStep{
		items:      []string{"a", "b", "c"},
		postAction: ActionSuccess,
	}
	node := NewNode[testState](step, 0)

	state := testState{}
	action := node.Run(&state)

	if action != ActionSuccess {
		t.Fatalf("expected %s, got %s", ActionSuccess, action)
	}
	want := []string{"a", "b", "c"}
	if len(step.execOrder) != len(want) {
		t.Fatalf("expected %d exec calls, got %d", len(want), len(step.execOrder))
	}
	for i, item := range want {
		if step.execOrder[i] != item {
			t.Errorf("exec order[%d]: expected %s, got %s", i, item, step.execOrder[i])
		}
	}
	results := state["results"].([]string)
	if results[1] != "done:b" {
		t.Errorf("expected ordered result done:b, got %s", results[1])
	}
}

func TestNodeRun_RetrySucceedsWithinBudget(t *testing.T) {
	step := &countingStep{
		items:        []string{"a"},
		failuresLeft: map[string]int{"a": 2},
		postAction:   ActionSuccess,
	}
	node := NewNode[testState](step, 2)

	state := testState{}
	node.Run(&state)

	if step.fallbacks != 0 {
		t.Errorf("expected no fallback, got %d", step.fallbacks)
	}
	if got := len(step.execOrder); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestNodeRun_FallbackAfterExhaustedRetries(t *testing.T) {
	step := &countingStep{
		items:        []string{"a", "b"},
		failuresLeft: map[string]int{"a": 10},
		postAction:   ActionSuccess,
	}
	node := NewNode[testState](step, 1)

	state := testState{}
	node.Run(&state)

	if step.fallbacks != 1 {
		t.Fatalf("expected 1 fallback, got %d", step.fallbacks)
	}
	results := state["results"].([]string)
	if results[0] != "fallback" || results[1] != "done:b" {
		t.Errorf("unexpected results after fallback: %v", results)
	}
}

func TestNodeRun_EmptyPrepStillPosts(t *testing.T) {
	step := &countingStep{postAction: Action("skipped")}
	node := NewNode[testState](step, 0)

	state := testState{}
	action := node.Run(&state)

	if action != Action("skipped") {
		t.Errorf("expected Post to run with zero items, got action %s", action)
	}
	if len(step.execOrder) != 0 {
		t.Errorf("expected no exec calls, got %d", len(step.execOrder))
	}
}

func TestNodeRun_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	step := &countingStep{
		items:        []string{"a"},
		failuresLeft: map[string]int{"a": 1},
		postAction:   ActionFailure,
	}
	node := NewNode[testState](step, 0)

	state := testState{}
	node.Run(&state)

	if got := len(step.execOrder); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
	if step.fallbacks != 1 {
		t.Errorf("expected fallback after single failed attempt, got %d", step.fallbacks)
	}
}

func TestNodeSuccessors(t *testing.T) {
	step := &countingStep{postAction: ActionSuccess}
	node := NewNode[testState](step, 0)

	next := NewNode[testState](&countingStep{postAction: ActionSuccess}, 0)

	tests := []struct {
		name       string
		register   []Action
		lookup     Action
		wantExists bool
	}{
		{"registered action resolves", []Action{Action("branch")}, Action("branch"), true},
		{"unregistered action is nil", []Action{Action("branch")}, ActionFailure, false},
		{"no action registers default", nil, ActionDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode[testState](step, 0)
			n.AddSuccessor(next, tt.register...)
			got := n.GetSuccessor(tt.lookup)
			if (got != nil) != tt.wantExists {
				t.Errorf("GetSuccessor(%s): exists=%v, want %v", tt.lookup, got != nil, tt.wantExists)
			}
		})
	}

	if node.AddSuccessor(nil) != nil {
		t.Error("adding a nil successor should be a no-op")
	}
}

// errStep always fails, to verify the original error reaches ExecFallback.
type errStep struct {
	seen error
}

func (s *errStep) Prep(state *testState) []string { return []string{"only"} }
func (s *errStep) Exec(item string) (string, error) {
	return "", errors.New("capability unavailable")
}
func (s *errStep) Post(state *testState, items []string, results ...string) Action {
	return ActionFailure
}
func (s *errStep) ExecFallback(err error) string {
	s.seen = err
	return ""
}

func TestNodeRun_FallbackReceivesOriginalError(t *testing.T) {
	step := &errStep{}
	node := NewNode[testState](step, 1)

	state := testState{}
	if action := node.Run(&state); action != ActionFailure {
		t.Fatalf("expected failure action, got %s", action)
	}
	if step.seen == nil || step.seen.Error() != "capability unavailable" {
		t.Errorf("fallback should receive the original error, got %v", step.seen)
	}
}
