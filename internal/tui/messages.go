package tui

import (
	"github.com/mmcdole/mittens/internal/domain"
	"github.com/mmcdole/mittens/internal/likes"
	"github.com/mmcdole/mittens/internal/search"
)

// Message types for the TUI

// ErrMsg formats an error for the status bar
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface. FetchErrors already carry a
// display message, so the context is not prepended to them.
func (e ErrMsg) Error() string {
	if e.Context != "" && !domain.IsFetchError(e.Err) {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DeckReadyMsg signals that breeds were loaded and the first batch filled
type DeckReadyMsg struct {
	Breeds   int
	Cards    int
	BreedErr error // Breeds failed to load; cards show "Unknown breed"
	Err      error // The first batch failed
}

// DeckFilledMsg signals that a refill finished
type DeckFilledMsg struct {
	Added int
	Err   error
}

// SwipeResultMsg carries the outcome of a like or dislike
type SwipeResultMsg struct {
	Result domain.ActionResult
	Liked  bool
}

// LikedStateMsg carries a paginator snapshot after Load, Refresh or LoadMore
type LikedStateMsg struct {
	State likes.State
}

// BreedResultsMsg carries breed search results for Query
type BreedResultsMsg struct {
	Query   string
	Results []search.Result
	Err     error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
