package cmdopt

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Argument declares a positional argument of a command. The name token
// carries the classification: "<name>" is required, "[name]" optional, and a
// trailing "..." inside the brackets marks the argument variadic (it absorbs
// all remaining operands as a slice). Identity is immutable after
// construction; default, coercion and choices may be adjusted until the
// owning command is parsed.
type Argument struct {
	name        string
	description string
	required    bool
	variadic    bool

	defaultValue any
	defaultDesc  string
	hasDefault   bool
	choices      []string
	parseFunc    ParseFunc
}

// NewArgument parses the name token and builds an Argument. A bare name
// without brackets is treated as required.
func NewArgument(name, description string) *Argument {
	arg := &Argument{
		description: description,
		required:    true,
	}

	switch {
	case strings.HasPrefix(name, "<"):
		arg.name = strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")
	case strings.HasPrefix(name, "["):
		arg.required = false
		arg.name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	default:
		arg.name = name
	}

	if strings.HasSuffix(arg.name, "...") {
		arg.variadic = true
		arg.name = strings.TrimSuffix(arg.name, "...")
	}

	return arg
}

// Name returns the declared name without markers.
func (a *Argument) Name() string {
	return a.name
}

// AttributeName returns the camel-cased identity of the argument
// ("src-dir" -> "srcDir").
func (a *Argument) AttributeName() string {
	if strings.Contains(a.name, "-") {
		return strcase.ToLowerCamel(a.name)
	}

	return a.name
}

// Description returns the help description.
func (a *Argument) Description() string {
	return a.description
}

// IsRequired reports whether the argument was declared with <name>.
func (a *Argument) IsRequired() bool {
	return a.required
}

// IsVariadic reports whether the argument absorbs all remaining operands.
func (a *Argument) IsVariadic() bool {
	return a.variadic
}

// Default sets the value bound when the operand is absent. An optional
// second argument overrides how the default is described in help output.
func (a *Argument) Default(value any, description ...string) *Argument {
	a.defaultValue = value
	a.hasDefault = true
	if len(description) > 0 {
		a.defaultDesc = description[0]
	}

	return a
}

// Choices restricts the raw values the argument accepts.
func (a *Argument) Choices(values ...string) *Argument {
	a.choices = values

	return a
}

// WithParser installs a custom coercion function, called once per bound
// operand with the raw string and the previously accumulated value.
func (a *Argument) WithParser(fn ParseFunc) *Argument {
	a.parseFunc = fn

	return a
}

// DefaultValue returns the configured default and whether one is set.
func (a *Argument) DefaultValue() (any, bool) {
	return a.defaultValue, a.hasDefault
}

// DefaultDescription returns the display text for the default value.
func (a *Argument) DefaultDescription() string {
	return a.defaultDesc
}

// ChoiceValues returns the allowed-choices set, nil when unrestricted.
func (a *Argument) ChoiceValues() []string {
	return a.choices
}

// Term returns the display form used in usage lines, e.g. "<source>" or
// "[destination]".
func (a *Argument) Term() string {
	name := a.name
	if a.variadic {
		name += "..."
	}
	if a.required {
		return "<" + name + ">"
	}

	return "[" + name + "]"
}
