package cmdopt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the machine-readable classification carried by a ParseError.
type ErrorKind string

const (
	KindUnknownOption               ErrorKind = "cmdopt.unknownOption"
	KindUnknownCommand              ErrorKind = "cmdopt.unknownCommand"
	KindMissingOptionArgument       ErrorKind = "cmdopt.missingOptionArgument"
	KindMissingArgument             ErrorKind = "cmdopt.missingArgument"
	KindExcessArguments             ErrorKind = "cmdopt.excessArguments"
	KindInvalidArgument             ErrorKind = "cmdopt.invalidArgument"
	KindConflictingOption           ErrorKind = "cmdopt.conflictingOption"
	KindMissingMandatoryOptionValue ErrorKind = "cmdopt.missingMandatoryOptionValue"
	KindHelpDisplayed               ErrorKind = "cmdopt.helpDisplayed"
)

// Sentinel errors, one per kind. ParseError wraps the sentinel matching its
// Kind so callers can use errors.Is without inspecting kind strings.
var (
	ErrUnknownOption               = errors.New("unknown option")
	ErrUnknownCommand              = errors.New("unknown command")
	ErrMissingOptionArgument       = errors.New("option argument missing")
	ErrMissingArgument             = errors.New("missing required argument")
	ErrExcessArguments             = errors.New("too many arguments")
	ErrInvalidArgument             = errors.New("invalid argument")
	ErrConflictingOption           = errors.New("conflicting option")
	ErrMissingMandatoryOptionValue = errors.New("required option not specified")
	ErrHelpDisplayed               = errors.New("help displayed")
)

var kindSentinels = map[ErrorKind]error{
	KindUnknownOption:               ErrUnknownOption,
	KindUnknownCommand:              ErrUnknownCommand,
	KindMissingOptionArgument:       ErrMissingOptionArgument,
	KindMissingArgument:             ErrMissingArgument,
	KindExcessArguments:             ErrExcessArguments,
	KindInvalidArgument:             ErrInvalidArgument,
	KindConflictingOption:           ErrConflictingOption,
	KindMissingMandatoryOptionValue: ErrMissingMandatoryOptionValue,
	KindHelpDisplayed:               ErrHelpDisplayed,
}

// ParseError is the fatal-error value produced during parsing. It carries a
// human-readable message, a machine-readable Kind and a suggested process
// exit code. The embedding program decides whether a ParseError terminates
// the process (the default ExitFunc) or is handled as a plain error value.
type ParseError struct {
	Kind        ErrorKind
	ExitCode    int
	CommandPath string // space-joined path of the command that failed
	Subject     string // offending flag, argument name, or token
	message     string
}

// newParseError builds a ParseError for cmd. The message should already name
// the offending flag or token.
func newParseError(cmd *Command, kind ErrorKind, subject, message string) *ParseError {
	code := 1
	if kind == KindHelpDisplayed {
		code = 0
	}
	path := ""
	if cmd != nil {
		path = cmd.Path()
	}

	return &ParseError{
		Kind:        kind,
		ExitCode:    code,
		CommandPath: path,
		Subject:     subject,
		message:     message,
	}
}

// Error renders the human-readable message. The command path is included for
// nested commands so the user can tell which level rejected the input.
func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("error: ")
	sb.WriteString(e.message)
	if e.CommandPath != "" && strings.Contains(e.CommandPath, " ") {
		sb.WriteString(fmt.Sprintf(" (while parsing %q)", e.CommandPath))
	}

	return sb.String()
}

// Unwrap returns the sentinel matching the error's Kind.
func (e *ParseError) Unwrap() error {
	return kindSentinels[e.Kind]
}
