package tui

import "github.com/sprite-ai/codelens/internal/model"

// viewState is what the result panel shows. Exactly one variant is active;
// transitions always replace the whole value.
type viewState interface {
	viewState()
}

// idleState: no operation has run yet.
type idleState struct{}

// loadingState: a request is in flight. No result is kept underneath.
type loadingState struct {
	op model.Operation
}

// showingState: the latest operation succeeded.
type showingState struct {
	result model.Result
	hint   string // syntax hint for code results
}

// errorState: validation or the request failed.
type errorState struct {
	message string
}

func (idleState) viewState()    {}
func (loadingState) viewState() {}
func (showingState) viewState() {}
func (errorState) viewState()   {}
