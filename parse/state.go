package parse

import "errors"

// ErrInvalidPosition is returned when an out-of-range position is accessed.
var ErrInvalidPosition = errors.New("invalid position")

// State is a cursor over one command level's argument list. The tokenizer
// advances it token by token and may consume the following token as an
// option value.
type State interface {
	Pos() int                                // current position
	SetPos(pos int)                          // move the cursor
	Skip()                                   // consume the next argument without visiting it
	Args() []string                          // the entire argument list
	Remaining() []string                     // everything after the current position
	InsertArgsAt(pos int, newArgs ...string) // splice arguments in at a position
	CurrentArg() string                      // argument under the cursor
	ArgAt(pos int) (string, error)           // argument at a specific position
	Peek() string                            // next argument without advancing
	Advance() bool                           // move to the next argument, false at end
	Len() int                                // length of the argument list
}

// DefaultState is the slice-backed State implementation.
type DefaultState struct {
	pos  int
	args []string
}

// NewState creates a State positioned before the first argument.
func NewState(args []string) State {
	return &DefaultState{
		pos:  -1,
		args: args,
	}
}

// Pos returns the current position in the argument list.
func (s *DefaultState) Pos() int {
	return s.pos
}

// SetPos sets the current position in the argument list.
func (s *DefaultState) SetPos(pos int) {
	s.pos = pos
}

// Skip consumes the next argument; used after an option takes the following
// token as its value.
func (s *DefaultState) Skip() {
	s.pos++
}

// Args returns the entire argument list.
func (s *DefaultState) Args() []string {
	return s.args
}

// Remaining returns the arguments after the current position. The returned
// slice aliases the state's backing array.
func (s *DefaultState) Remaining() []string {
	if s.pos+1 >= len(s.args) {
		return nil
	}
	return s.args[s.pos+1:]
}

// InsertArgsAt splices newArgs into the argument list at pos. Used by the
// tokenizer to expand clustered short flags in place.
func (s *DefaultState) InsertArgsAt(pos int, newArgs ...string) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.args) {
		pos = len(s.args)
	}
	out := make([]string, 0, len(s.args)+len(newArgs))
	out = append(out, s.args[:pos]...)
	out = append(out, newArgs...)
	out = append(out, s.args[pos:]...)
	s.args = out
}

// CurrentArg returns the argument under the cursor or "" when out of range.
func (s *DefaultState) CurrentArg() string {
	if s.pos < 0 || s.pos >= len(s.args) {
		return ""
	}
	return s.args[s.pos]
}

// ArgAt returns the argument at a specific position.
func (s *DefaultState) ArgAt(pos int) (string, error) {
	if pos < 0 || pos >= len(s.args) {
		return "", ErrInvalidPosition
	}

	return s.args[pos], nil
}

// Peek returns the next argument without advancing the cursor.
func (s *DefaultState) Peek() string {
	if s.pos+1 < len(s.args) {
		return s.args[s.pos+1]
	}

	return ""
}

// Advance moves to the next argument, returning false at the end of input.
func (s *DefaultState) Advance() bool {
	if s.pos+1 < len(s.args) {
		s.pos++
		return true
	}
	return false
}

// Len returns the length of the argument list.
func (s *DefaultState) Len() int {
	return len(s.args)
}
