package lesson

import (
	"errors"

	"github.com/approwess/sahayak-ai/core"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/visual"
)

// ClassType tells the generation strategy apart.
type ClassType string

const (
	ClassSingle     ClassType = "single"
	ClassMultigrade ClassType = "multigrade"
)

// Routing actions emitted by the lesson workflow nodes.
const (
	ActionSingle     core.Action = "single"
	ActionMultigrade core.Action = "multigrade"
	ActionVisuals    core.Action = "visuals"
	ActionDone       core.Action = "done"
)

// ErrMissingInput is returned when a generation strategy needs the
// conversation history and none was provided.
var ErrMissingInput = errors.New("no user input found in conversation")

// Resource is a catalog entry referenced from an enriched lesson plan.
// The URL is filled in during placeholder resolution.
type Resource struct {
	Grade       string `json:"grade,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
	UniqueID    string `json:"unique_id"`
	Type        string `json:"type"`
	URL         string `json:"url,omitempty"`
}

// State is the shared context a lesson workflow runs against. Nodes read
// and write it during their Prep and Post phases only.
type State struct {
	Messages []llm.Message

	Subject      string
	Grades       string
	Topic        string
	Medium       string
	SpecialNeeds string

	ClassType ClassType

	LessonPlan                    string
	Resources                     []Resource
	LessonPlanWithResourceMapping string

	GenerateVisuals        bool
	ImageRequirements      []visual.Requirement
	GeneratedImages        map[string]string
	VisualDocumentPath     string
	VisualGenerationErrors []string

	// err holds the first fatal failure encountered by a node. It is
	// surfaced by Engine.Generate after the flow stops.
	err error
}

// Request carries the caller-facing parameters for one lesson run.
type Request struct {
	Subject         string `json:"subject"`
	Grades          string `json:"grades"`
	Topic           string `json:"topic"`
	Medium          string `json:"medium"`
	SpecialNeeds    string `json:"special_needs"`
	Message         string `json:"message"`
	GenerateVisuals bool   `json:"generate_visuals"`
}

// NewState seeds a workflow state from a request. The conversation gets
// exactly one user message; callers that leave Message empty get a
// generic generation request so the strategies always have input.
func NewState(req Request) *State {
	msg := req.Message
	if msg == "" {
		msg = "Generate a lesson plan"
	}
	return &State{
		Messages:        []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Subject:         req.Subject,
		Grades:          req.Grades,
		Topic:           req.Topic,
		Medium:          req.Medium,
		SpecialNeeds:    req.SpecialNeeds,
		GenerateVisuals: req.GenerateVisuals,
	}
}
