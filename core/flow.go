package core

// Flow runs a graph of workflows starting from a single entry node,
// following action-based transitions until no successor accepts the latest
// action. Flow itself implements Workflow so it can be nested as a subgraph.
type Flow[State any] struct {
	startNode  Workflow[State]
	successors map[Action]Workflow[State]
}

// NewFlow creates a flow with the given entry node.
func NewFlow[State any](startNode Workflow[State]) *Flow[State] {
	return &Flow[State]{
		startNode:  startNode,
		successors: make(map[Action]Workflow[State]),
	}
}

// Run walks the graph from the entry node. The action returned is the one
// produced by the last node that ran, so callers can distinguish a branch
// that ended in success from one that ended in failure.
func (f *Flow[State]) Run(state *State) Action {
	current := f.startNode
	if current == nil {
		return ActionFailure
	}

	finalAction := ActionSuccess
	for current != nil {
		action := current.Run(state)
		finalAction = action

		next := current.GetSuccessor(action)
		if next == nil {
			// Flow-level successors catch actions the node itself
			// does not route.
			next = f.GetSuccessor(action)
		}
		current = next
	}
	return finalAction
}

// GetSuccessor returns the flow-level successor for an action, or nil.
func (f *Flow[State]) GetSuccessor(action Action) Workflow[State] {
	return f.successors[action]
}

// AddSuccessor registers a flow-level successor for an action.
func (f *Flow[State]) AddSuccessor(successor Workflow[State], action ...Action) Workflow[State] {
	if successor == nil {
		return successor
	}
	if len(action) == 0 {
		action = append(action, ActionSuccess)
	}
	for _, a := range action {
		f.successors[a] = successor
	}
	return successor
}
