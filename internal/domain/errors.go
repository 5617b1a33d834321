package domain

import "errors"

// Sentinel errors for remote operations
var (
	// ErrNotFound indicates the provider has no such resource
	ErrNotFound = errors.New("resource not found")

	// ErrServerOffline indicates the provider is unreachable
	ErrServerOffline = errors.New("cat api is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrUnexpectedStatus indicates a non-2xx response not covered above
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrEmptyResponse indicates a 2xx response with no body where one was expected
	ErrEmptyResponse = errors.New("empty response body")
)

// Fixed per-operation failure messages
const (
	MsgListBreeds     = "failed to fetch cat breeds"
	MsgSearchBreeds   = "failed to search breeds"
	MsgSearchImages   = "failed to fetch cat images"
	MsgGetImage       = "failed to fetch cat image"
	MsgSubmitVote     = "failed to submit vote"
	MsgListVotes      = "failed to fetch votes"
	MsgLikedImages    = "failed to fetch liked cats"
	MsgAddFavorite    = "failed to add favorite"
	MsgListFavorites  = "failed to fetch favorites"
	MsgRemoveFavorite = "failed to remove favorite"
)

// FetchError is the single failure kind surfaced by remote operations.
// Error returns only the fixed operation message; Err is kept for
// errors.Is and logging and is never shown to users.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return e.Op
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err under the fixed message op.
// An existing FetchError is re-labelled rather than nested.
func NewFetchError(op string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return &FetchError{Op: op, Err: fe.Err}
	}
	return &FetchError{Op: op, Err: err}
}

// IsFetchError reports whether err is (or wraps) a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
