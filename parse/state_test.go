package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Traversal(t *testing.T) {
	state := NewState([]string{"-v", "--port", "8080"})

	assert.Equal(t, -1, state.Pos(), "a fresh state sits before the first argument")
	assert.Equal(t, "", state.CurrentArg())
	assert.Equal(t, 3, state.Len())

	assert.True(t, state.Advance())
	assert.Equal(t, "-v", state.CurrentArg())
	assert.Equal(t, "--port", state.Peek())

	assert.True(t, state.Advance())
	state.Skip()
	assert.Equal(t, "8080", state.CurrentArg(), "Skip consumes the value token")
	assert.False(t, state.Advance())
}

func TestState_Remaining(t *testing.T) {
	state := NewState([]string{"a", "b", "c"})
	state.Advance()

	assert.Equal(t, []string{"b", "c"}, state.Remaining())

	state.SetPos(2)
	assert.Nil(t, state.Remaining())
}

func TestState_InsertArgsAt(t *testing.T) {
	state := NewState([]string{"-a", "rest"})
	state.Advance()
	state.InsertArgsAt(state.Pos()+1, "-b", "-c")

	assert.Equal(t, []string{"-a", "-b", "-c", "rest"}, state.Args())
	assert.True(t, state.Advance())
	assert.Equal(t, "-b", state.CurrentArg(), "spliced tokens are visited next")
}

func TestState_InsertArgsAtClamps(t *testing.T) {
	state := NewState([]string{"x"})
	state.InsertArgsAt(-5, "head")
	state.InsertArgsAt(99, "tail")

	assert.Equal(t, []string{"head", "x", "tail"}, state.Args())
}

func TestState_ArgAt(t *testing.T) {
	state := NewState([]string{"a", "b"})

	arg, err := state.ArgAt(1)
	assert.Nil(t, err)
	assert.Equal(t, "b", arg)

	_, err = state.ArgAt(2)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	_, err = state.ArgAt(-1)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestState_PeekAtEnd(t *testing.T) {
	state := NewState([]string{"only"})
	state.Advance()

	assert.Equal(t, "", state.Peek())
}
