package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorShowsOnlyMessage(t *testing.T) {
	err := &FetchError{Op: MsgListBreeds, Err: fmt.Errorf("%w: dial tcp: refused", ErrServerOffline)}

	assert.Equal(t, "failed to fetch cat breeds", err.Error())
	assert.ErrorIs(t, err, ErrServerOffline)
	assert.True(t, IsFetchError(err))
}

func TestNewFetchErrorRelabels(t *testing.T) {
	inner := &FetchError{Op: MsgListVotes, Err: ErrAuthFailed}
	wrapped := fmt.Errorf("context: %w", inner)

	fe := NewFetchError(MsgLikedImages, wrapped)

	assert.Equal(t, MsgLikedImages, fe.Error())
	assert.Same(t, ErrAuthFailed, fe.Err, "the original cause is kept, not the nested FetchError")
	assert.ErrorIs(t, fe, ErrAuthFailed)
}

func TestNewFetchErrorWrapsPlainError(t *testing.T) {
	cause := errors.New("boom")
	fe := NewFetchError(MsgGetImage, cause)

	assert.Equal(t, "failed to fetch cat image", fe.Error())
	assert.ErrorIs(t, fe, cause)
	assert.False(t, IsFetchError(cause))
}
