package core

// Node wraps a Step with a retry budget and wires it into the graph.
//
// Items run strictly in order, one at a time. Steps in this system drive
// remote generation calls whose cost is bounded by capping the number of
// items, not by fanning out, so the engine stays sequential.
type Node[State any, Item any, Result any] struct {
	step       Step[State, Item, Result]
	maxRetries int
	successors map[Action]Workflow[State]
}

// NewNode creates a node for the given step. maxRetries is the number of
// additional Exec attempts per item after the first; 0 means exactly one
// attempt, which steps with fatal failure semantics rely on.
func NewNode[State any, Item any, Result any](step Step[State, Item, Result], maxRetries int) *Node[State, Item, Result] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Node[State, Item, Result]{
		step:       step,
		maxRetries: maxRetries,
		successors: make(map[Action]Workflow[State]),
	}
}

// Run implements Workflow. It executes Prep, then Exec per item in order,
// then hands every result to Post.
func (n *Node[State, Item, Result]) Run(state *State) Action {
	items := n.step.Prep(state)
	if len(items) == 0 {
		return n.step.Post(state, items)
	}

	results := make([]Result, len(items))
	for i, item := range items {
		result, err := n.execWithRetry(item)
		if err != nil {
			results[i] = n.step.ExecFallback(err)
		} else {
			results[i] = result
		}
	}

	return n.step.Post(state, items, results...)
}

func (n *Node[State, Item, Result]) execWithRetry(item Item) (Result, error) {
	var result Result
	var err error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		result, err = n.step.Exec(item)
		if err == nil {
			return result, nil
		}
	}
	return result, err
}

// AddSuccessor registers a successor for an action. With no action given the
// successor handles the default route.
func (n *Node[State, Item, Result]) AddSuccessor(successor Workflow[State], action ...Action) Workflow[State] {
	if successor == nil {
		return successor
	}
	if len(action) == 0 {
		n.successors[ActionDefault] = successor
		return successor
	}
	for _, a := range action {
		n.successors[a] = successor
	}
	return successor
}

// GetSuccessor returns the successor for an action, or nil when the action
// terminates this branch of the graph.
func (n *Node[State, Item, Result]) GetSuccessor(action Action) Workflow[State] {
	return n.successors[action]
}
