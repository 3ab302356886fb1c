package core

// Action names the outcome of a node run and selects the successor to run
// next. Packages building graphs define their own routing actions alongside
// the common ones below.
type Action string

const (
	ActionSuccess Action = "success"
	ActionFailure Action = "failure"
	ActionDefault Action = "default"
)
