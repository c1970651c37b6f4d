package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalid, KindOf(Invalidf("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("movie %d not found", 7)))
	assert.Equal(t, KindConflict, KindOf(Conflictf("seat taken")))
	assert.Equal(t, KindUnavailable, KindOf(Unavailable("query", errors.New("connection refused"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("reserve seat: %w", Conflictf("seat 7 is already booked for showtime 5"))

	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestUnavailableUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("find booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "find booking")
	assert.ErrorContains(t, err, "connection refused")
}
