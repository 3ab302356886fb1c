package core

// Step is the unit of work wrapped by a Node. It follows a three-phase
// execution model: Prep derives work items from the shared state, Exec
// processes one item, and Post merges all results back into the state and
// decides where the flow goes next.
//
// Prep returning zero items is legal; Post still runs and can route the flow
// (steps use this to skip work that has no input). Exec must not touch the
// state: all mutation belongs to Post, so a failed step can leave prior
// state intact.
type Step[State any, Item any, Result any] interface {
	// Prep derives the work items for the Exec phase from the state.
	Prep(state *State) []Item

	// Exec performs the core logic on a single work item.
	Exec(item Item) (Result, error)

	// Post merges results into the state and returns the routing action.
	// Results arrive in the same order as the items Prep produced.
	Post(state *State, items []Item, results ...Result) Action

	// ExecFallback produces the result recorded for an item whose Exec
	// calls were exhausted without success.
	ExecFallback(err error) Result
}

// Workflow is a runnable unit in the graph. Both Node and Flow implement it,
// so subgraphs compose the same way single nodes do.
type Workflow[State any] interface {
	// Run executes the workflow against the state and returns an action
	// used for routing.
	Run(state *State) Action

	// GetSuccessor returns the successor registered for an action, or nil.
	GetSuccessor(action Action) Workflow[State]

	// AddSuccessor registers a successor for an action and returns it so
	// chains can be built fluently. Without an action it registers the
	// default route.
	AddSuccessor(successor Workflow[State], action ...Action) Workflow[State]
}
