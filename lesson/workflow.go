// Package lesson implements the lesson plan generation workflow: grade
// classification, strategy-specific generation, resource enrichment, and
// optional visual content generation, all driven by the core step engine.
package lesson

import (
	"context"
	"fmt"

	"github.com/approwess/sahayak-ai/catalog"
	"github.com/approwess/sahayak-ai/core"
	"github.com/approwess/sahayak-ai/llm"
	"github.com/approwess/sahayak-ai/visual"
)

// Engine owns the capabilities a lesson run needs and builds a fresh flow
// per request.
type Engine struct {
	text      llm.Provider
	images    llm.ImageProvider
	catalog   *catalog.Catalog
	documents *visual.DocumentBuilder
	baseURL   string
	maxImages int
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithResourceBaseURL overrides where resolved resource links point.
func WithResourceBaseURL(baseURL string) Option {
	return func(e *Engine) { e.baseURL = baseURL }
}

// WithMaxImages overrides the per-run illustration cap.
func WithMaxImages(n int) Option {
	return func(e *Engine) { e.maxImages = n }
}

// NewEngine wires a lesson engine. The image provider and document builder
// may be nil when visual generation is not configured; runs that request
// visuals then record errors instead of images.
func NewEngine(text llm.Provider, images llm.ImageProvider, cat *catalog.Catalog, documents *visual.DocumentBuilder, opts ...Option) *Engine {
	e := &Engine{
		text:      text,
		images:    images,
		catalog:   cat,
		documents: documents,
		baseURL:   DefaultResourceBaseURL,
		maxImages: DefaultMaxImages,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs the full workflow against state and returns it with the
// outcome filled in. Fatal node failures surface as the returned error;
// recoverable ones are collected in state.VisualGenerationErrors.
func (e *Engine) Generate(ctx context.Context, state *State) (*State, error) {
	flow := e.buildFlow(ctx)
	action := flow.Run(state)
	if state.err != nil {
		return state, state.err
	}
	if action == core.ActionFailure {
		return state, fmt.Errorf("lesson workflow stopped with failure")
	}
	return state, nil
}

// buildFlow assembles the per-request graph. Generation strategies get no
// retries so their failures surface immediately.
func (e *Engine) buildFlow(ctx context.Context) *core.Flow[State] {
	classify := core.NewNode(classifyStep{}, 0)
	single := core.NewNode(&singleGradeStep{ctx: ctx, provider: e.text}, 0)
	multigrade := core.NewNode(&multigradeStep{ctx: ctx, provider: e.text, catalog: e.catalog}, 0)
	enrich := core.NewNode(&enrichStep{ctx: ctx, provider: e.text, baseURL: e.baseURL}, 0)
	extract := core.NewNode(&extractRequirementsStep{ctx: ctx, extractor: visual.NewExtractor(e.text)}, 0)
	visuals := core.NewNode(&visualContentStep{ctx: ctx, images: e.images, documents: e.documents, maxImages: e.maxImages}, 0)

	classify.AddSuccessor(single, ActionSingle)
	classify.AddSuccessor(multigrade, ActionMultigrade)
	single.AddSuccessor(enrich, core.ActionSuccess)
	multigrade.AddSuccessor(enrich, core.ActionSuccess)
	enrich.AddSuccessor(extract, ActionVisuals)
	extract.AddSuccessor(visuals, core.ActionSuccess)

	return core.NewFlow(classify)
}
