// Package cmdopt provides declaration and parsing of POSIX/GNU style
// command lines with subcommands.
//
// A program declares a tree of Command values, each carrying Options (flags)
// and positional Arguments. Parse consumes raw argv for the tree: recognized
// options are coerced into typed values recorded per command with their
// winning source (default < env < config < cli), operands select a
// subcommand or bind to the command's declared arguments, and any action
// handlers registered on the resolved command run after parsing succeeds.
//
// Flags are declared with a single description string whose placeholder
// spells out the value arity:
//
//	-p, --pepper            boolean
//	-c, --cheese [type]     optional value
//	-C, --chdir <path>      required value
//	-l, --lint <rule...>    variadic
//	--no-sauce              negated boolean
package cmdopt

// ValueSource identifies where an attribute's value came from. Later sources
// always overwrite earlier ones; precedence is enforced by the order the
// engine applies them, not by comparison.
type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceEnv     ValueSource = "env"
	SourceConfig  ValueSource = "config"
	SourceCLI     ValueSource = "cli"
	SourceImplied ValueSource = "implied"
)

// ParseFunc coerces a raw command-line string into a typed value. prev holds
// the previously accumulated value so repeated occurrences of a variadic
// flag can build up a result; it is nil on the first occurrence.
type ParseFunc func(raw string, prev any) (any, error)

// ActionFunc is invoked for the resolved command after parsing succeeds.
// Bound argument values and options are read from the command itself.
type ActionFunc func(cmd *Command) error

// HookFunc is a lifecycle or event listener callback. Hooks registered for
// the same event run synchronously in registration order; an error aborts
// the remaining hooks and is propagated to the Parse caller.
type HookFunc func(cmd *Command) error

// ExitFunc decides what happens on a fatal parse condition. The default
// implementation prints the message and terminates the process with the
// error's suggested exit code; an overriding implementation typically
// returns the error so the embedding program can handle it.
type ExitFunc func(err *ParseError) error

// ConfigureCommandFunc configures a Command during construction.
type ConfigureCommandFunc func(cmd *Command)

// ConfigureOptionFunc configures an Option during construction.
type ConfigureOptionFunc func(opt *Option)

// EnvLookupFunc resolves an environment variable name to its value. It
// exists so tests and embedders can substitute the process environment.
type EnvLookupFunc func(name string) (string, bool)

// Lifecycle event names accepted by Command.On in addition to
// "option:<attributeName>" listeners.
const (
	EventPreAction  = "preAction"
	EventPostAction = "postAction"
)
