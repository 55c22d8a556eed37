package cmdopt

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ef-ds/deque/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Command is a node in the command tree. Each command owns its declared
// options and positional arguments, a source-tracked value store, its
// subcommands, and an optional action handler invoked when the command is
// the one resolved by parsing. The parent pointer is a non-owning
// back-reference; ownership runs strictly top-down.
type Command struct {
	name        string
	aliases     []string
	description string
	parent      *Command

	options   *orderedmap.OrderedMap[string, *Option]
	arguments []*Argument
	children  *orderedmap.OrderedMap[string, *Command]

	values    *Values
	rawArgs   []string
	argValues map[string]any

	action ActionFunc
	hooks  map[string][]HookFunc

	allowUnknownOptions         bool
	allowExcessArguments        bool
	enablePositionalOptions     bool
	passThroughOptions          bool
	combineFlagAndOptionalValue bool
	showSuggestionAfterError    bool
	helpOptionDisabled          bool
	helpOption                  *Option

	stdout    io.Writer
	stderr    io.Writer
	exitFunc  ExitFunc
	envLookup EnvLookupFunc
	helpFunc  func(w io.Writer, view *HelpView) error

	// callbacks is populated on the root while parsing and drained after
	// the full tree resolves; hooks and the resolved action run FIFO.
	callbacks *deque.Deque[func() error]
}

// NewCommand creates a command. nameAndArgs may carry positional argument
// declarations after the command name:
//
//	clone := cmdopt.NewCommand("clone <source> [destination]")
func NewCommand(nameAndArgs string, configs ...ConfigureCommandFunc) *Command {
	fields := strings.Fields(nameAndArgs)
	cmd := &Command{
		options:                     orderedmap.New[string, *Option](),
		children:                    orderedmap.New[string, *Command](),
		values:                      NewValues(),
		argValues:                   map[string]any{},
		hooks:                       map[string][]HookFunc{},
		combineFlagAndOptionalValue: true,
		showSuggestionAfterError:    true,
		stdout:                      os.Stdout,
		stderr:                      os.Stderr,
		envLookup:                   os.LookupEnv,
		callbacks:                   &deque.Deque[func() error]{},
	}
	if len(fields) > 0 {
		cmd.name = fields[0]
		for _, token := range fields[1:] {
			cmd.arguments = append(cmd.arguments, NewArgument(token, ""))
		}
	}

	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Alias registers alternative names the resolver accepts for this command.
// The first alias is shown in help; the rest are accepted silently.
func (c *Command) Alias(names ...string) *Command {
	c.aliases = append(c.aliases, names...)

	return c
}

// Aliases returns the registered aliases.
func (c *Command) Aliases() []string {
	return c.aliases
}

// SetDescription sets the help description.
func (c *Command) SetDescription(description string) *Command {
	c.description = description

	return c
}

// Description returns the help description.
func (c *Command) Description() string {
	return c.description
}

// Parent returns the owning command, nil for the root.
func (c *Command) Parent() *Command {
	return c.parent
}

// Path returns the space-joined command path from the root, e.g.
// "git remote add".
func (c *Command) Path() string {
	if c.parent == nil {
		return c.name
	}

	return c.parent.Path() + " " + c.name
}

// Root returns the top of the command tree.
func (c *Command) Root() *Command {
	if c.parent == nil {
		return c
	}

	return c.parent.Root()
}

// Option declares a flag on the command and returns the new Option for
// chained configuration. Unusable or duplicate declarations are programmer
// errors and panic; use AddOption to handle them as error values.
func (c *Command) Option(flags, description string, configs ...ConfigureOptionFunc) *Option {
	opt := NewOption(flags, description, configs...)
	if err := c.AddOption(opt); err != nil {
		panic(err)
	}

	return opt
}

// AddOption registers a constructed Option. Flag forms must be unique
// within this command's own declarations, and so must attribute names,
// with one exception: a positive and a negated form (--sauce with
// --no-sauce) share a single attribute.
func (c *Command) AddOption(opt *Option) error {
	spec := opt.Spec()
	if spec.Short == "" && spec.Long == "" {
		return fmt.Errorf("option has no flags")
	}
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		other := pair.Value.Spec()
		if spec.Short != "" && spec.Short == other.Short {
			return fmt.Errorf("short flag %q already used by option %q", spec.Short, other.AttributeName)
		}
		if spec.Long != "" && spec.Long == other.Long {
			return fmt.Errorf("long flag %q already used by option %q", spec.Long, other.AttributeName)
		}
		if spec.AttributeName == other.AttributeName && spec.Negate == other.Negate {
			return fmt.Errorf("option %q already registered on command %q", spec.AttributeName, c.name)
		}
	}

	c.options.Set(optionKey(spec), opt)
	if value, ok := opt.DefaultValue(); ok {
		c.values.Set(spec.AttributeName, value, SourceDefault)
	}

	return nil
}

// optionKey is the registry key for an option: the long flag without dashes
// when present, otherwise the short flag without its dash. Value lookups
// always go through the attribute name instead, which a negation pair
// shares.
func optionKey(spec Spec) string {
	if spec.Long != "" {
		return strings.TrimPrefix(spec.Long, "--")
	}

	return strings.TrimPrefix(spec.Short, "-")
}

// Argument declares a positional argument and returns it for chained
// configuration. Declaring a positional after a variadic one panics.
func (c *Command) Argument(name, description string) *Argument {
	arg := NewArgument(name, description)
	if err := c.AddArgument(arg); err != nil {
		panic(err)
	}

	return arg
}

// AddArgument registers a constructed positional Argument.
func (c *Command) AddArgument(arg *Argument) error {
	if n := len(c.arguments); n > 0 && c.arguments[n-1].IsVariadic() {
		return fmt.Errorf("cannot add argument %q after variadic argument %q", arg.Name(), c.arguments[n-1].Name())
	}

	c.arguments = append(c.arguments, arg)

	return nil
}

// Arguments returns the declared positional arguments in order.
func (c *Command) Arguments() []*Argument {
	return c.arguments
}

// Options returns the declared options in declaration order.
func (c *Command) Options() []*Option {
	opts := make([]*Option, 0, c.options.Len())
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opts = append(opts, pair.Value)
	}

	return opts
}

// LookupOption returns the option bound to an attribute name. When a
// positive and a negated form share the attribute, the positive one wins.
func (c *Command) LookupOption(attributeName string) (*Option, bool) {
	var match *Option
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Spec().AttributeName != attributeName {
			continue
		}
		if !pair.Value.Spec().Negate {
			return pair.Value, true
		}
		if match == nil {
			match = pair.Value
		}
	}

	return match, match != nil
}

// Command declares a subcommand and attaches it. nameAndArgs may carry
// positional declarations as in NewCommand.
func (c *Command) Command(nameAndArgs, description string, configs ...ConfigureCommandFunc) *Command {
	child := NewCommand(nameAndArgs, configs...)
	child.description = description
	if err := c.AddCommand(child); err != nil {
		panic(err)
	}

	return child
}

// AddCommand attaches a constructed subcommand. The child inherits output
// writers, termination strategy, environment lookup and display-affecting
// settings from its parent at attach time, not at parse time. A non-root
// command has exactly one parent; re-attaching is an error.
func (c *Command) AddCommand(child *Command) error {
	if child.name == "" {
		return fmt.Errorf("subcommand has no name")
	}
	if child.parent != nil {
		return fmt.Errorf("command %q already has a parent", child.name)
	}
	if _, exists := c.children.Get(child.name); exists {
		return fmt.Errorf("subcommand %q already registered", child.name)
	}
	if child.passThroughOptions && !c.enablePositionalOptions {
		return fmt.Errorf("pass-through options on %q require positional options on the parent", child.name)
	}
	if !c.Root().enablePositionalOptions {
		for pair := child.options.Oldest(); pair != nil; pair = pair.Next() {
			if _, clash := c.options.Get(pair.Key); clash {
				return fmt.Errorf("option %q on subcommand %q shadows the parent's; enable positional options to allow reuse", pair.Key, child.name)
			}
		}
	}

	child.parent = c
	child.copyInheritedSettings(c)
	c.children.Set(child.name, child)

	return nil
}

// copyInheritedSettings propagates copyable configuration from parent at
// attach time.
func (c *Command) copyInheritedSettings(parent *Command) {
	c.stdout = parent.stdout
	c.stderr = parent.stderr
	c.exitFunc = parent.exitFunc
	c.envLookup = parent.envLookup
	c.helpFunc = parent.helpFunc
	c.combineFlagAndOptionalValue = parent.combineFlagAndOptionalValue
	c.showSuggestionAfterError = parent.showSuggestionAfterError
	c.helpOptionDisabled = parent.helpOptionDisabled
}

// Commands returns the attached subcommands in declaration order.
func (c *Command) Commands() []*Command {
	cmds := make([]*Command, 0, c.children.Len())
	for pair := c.children.Oldest(); pair != nil; pair = pair.Next() {
		cmds = append(cmds, pair.Value)
	}

	return cmds
}

// findCommand resolves a name or alias to an attached subcommand,
// case-sensitively.
func (c *Command) findCommand(name string) (*Command, bool) {
	if child, found := c.children.Get(name); found {
		return child, true
	}
	for pair := c.children.Oldest(); pair != nil; pair = pair.Next() {
		for _, alias := range pair.Value.aliases {
			if alias == name {
				return pair.Value, true
			}
		}
	}

	return nil, false
}

// Action registers the handler invoked when parsing resolves to this
// command.
func (c *Command) Action(fn ActionFunc) *Command {
	c.action = fn

	return c
}

// On registers a listener for a lifecycle event (EventPreAction,
// EventPostAction) or an option event ("option:<attributeName>"). Listeners
// for the same event run in registration order.
func (c *Command) On(event string, fn HookFunc) *Command {
	c.hooks[event] = append(c.hooks[event], fn)

	return c
}

// Visit walks the command and its subcommands depth-first, stopping when the
// visitor returns false.
func (c *Command) Visit(visitor func(cmd *Command, level int) bool, level int) {
	if visitor != nil {
		if !visitor(c, level) {
			return
		}
	}

	for pair := c.children.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.Visit(visitor, level+1)
	}
}

// Behavior flags. Each returns the receiver for chaining.

// AllowUnknownOptions routes unrecognized dash tokens into the unknown list
// instead of failing the parse.
func (c *Command) AllowUnknownOptions(allow bool) *Command {
	c.allowUnknownOptions = allow

	return c
}

// AllowExcessArguments tolerates more operands than declared arguments; the
// excess is retained in Args but not bound.
func (c *Command) AllowExcessArguments(allow bool) *Command {
	c.allowExcessArguments = allow

	return c
}

// EnablePositionalOptions requires this command's own options to precede the
// first operand, freeing subcommands to reuse option names.
func (c *Command) EnablePositionalOptions(enable bool) *Command {
	c.enablePositionalOptions = enable

	return c
}

// PassThroughOptions stops option parsing at the first operand; everything
// after it is treated as that operand's argument text.
func (c *Command) PassThroughOptions(enable bool) *Command {
	c.passThroughOptions = enable

	return c
}

// CombineFlagAndOptionalValue controls whether -xVALUE supplies VALUE to an
// optional-value short flag -x (on by default). When off, -xVALUE expands
// the trailing characters as clustered boolean flags instead.
func (c *Command) CombineFlagAndOptionalValue(enable bool) *Command {
	c.combineFlagAndOptionalValue = enable

	return c
}

// ShowSuggestionAfterError controls the did-you-mean suggestion appended to
// unknown command and option errors (on by default).
func (c *Command) ShowSuggestionAfterError(enable bool) *Command {
	c.showSuggestionAfterError = enable

	return c
}

// DisableHelpOption suppresses the automatic -h, --help option.
func (c *Command) DisableHelpOption() *Command {
	c.helpOptionDisabled = true

	return c
}

// ExitOverride replaces the termination strategy for this tree. Passing nil
// installs a strategy that returns the error to the Parse caller instead of
// terminating the process.
func (c *Command) ExitOverride(fn ExitFunc) *Command {
	if fn == nil {
		fn = func(err *ParseError) error { return err }
	}
	c.exitFunc = fn

	return c
}

// SetOut sets the writer used for help output.
func (c *Command) SetOut(w io.Writer) *Command {
	c.stdout = w

	return c
}

// SetErr sets the writer used for fatal-error messages.
func (c *Command) SetErr(w io.Writer) *Command {
	c.stderr = w

	return c
}

// SetEnvLookup replaces the environment lookup used for Env-configured
// options; defaults to os.LookupEnv.
func (c *Command) SetEnvLookup(fn EnvLookupFunc) *Command {
	c.envLookup = fn

	return c
}

// SetHelpFunc installs the renderer invoked when the help option is
// matched. The core only assembles the read-only HelpView; formatting is
// entirely the renderer's concern.
func (c *Command) SetHelpFunc(fn func(w io.Writer, view *HelpView) error) *Command {
	c.helpFunc = fn

	return c
}

// Values returns this command's local value store.
func (c *Command) Values() *Values {
	return c.values
}

// MergedValues returns a view overlaying every ancestor's store under this
// command's, child values winning. The ancestor stores are not mutated.
func (c *Command) MergedValues() *Values {
	merged := NewValues()
	chain := []*Command{}
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		merged.overlay(chain[i].values)
	}

	return merged
}

// SetConfigValue records an externally supplied (configuration-file) value.
// Callers apply these between environment and command-line precedence, i.e.
// before Parse runs.
func (c *Command) SetConfigValue(attributeName string, value any) {
	c.values.Set(attributeName, value, SourceConfig)
}

// Get returns the typed value stored under an attribute name.
func (c *Command) Get(attributeName string) (any, bool) {
	return c.values.Get(attributeName)
}

// Source returns the source that supplied the attribute's value.
func (c *Command) Source(attributeName string) ValueSource {
	return c.values.Source(attributeName)
}

// GetString returns the value under key as a string.
func (c *Command) GetString(key string) (string, bool) {
	value, found := c.values.Get(key)
	if !found {
		return "", false
	}
	s, ok := value.(string)

	return s, ok
}

// GetBool returns the value under key as a bool. String values are parsed
// with strconv semantics.
func (c *Command) GetBool(key string) (bool, bool) {
	value, found := c.values.Get(key)
	if !found {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(v)
		return parsed, err == nil
	}

	return false, false
}

// GetInt returns the value under key as an int. String values are parsed.
func (c *Command) GetInt(key string) (int, bool) {
	value, found := c.values.Get(key)
	if !found {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(v)
		return parsed, err == nil
	}

	return 0, false
}

// GetFloat returns the value under key as a float64. String values are
// parsed.
func (c *Command) GetFloat(key string) (float64, bool) {
	value, found := c.values.Get(key)
	if !found {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		return parsed, err == nil
	}

	return 0, false
}

// GetStringSlice returns the value under key as a string slice. A scalar
// string yields a one-element slice.
func (c *Command) GetStringSlice(key string) ([]string, bool) {
	value, found := c.values.Get(key)
	if !found {
		return nil, false
	}
	switch v := value.(type) {
	case []string:
		return v, true
	case string:
		return []string{v}, true
	}

	return nil, false
}

// GetTime returns the value under key as a time.Time.
func (c *Command) GetTime(key string) (time.Time, bool) {
	value, found := c.values.Get(key)
	if !found {
		return time.Time{}, false
	}
	t, ok := value.(time.Time)

	return t, ok
}

// Args returns the raw operands recorded for this command, including excess
// operands retained when AllowExcessArguments is on.
func (c *Command) Args() []string {
	return c.rawArgs
}

// ArgValue returns the coerced value bound to a declared positional
// argument by name.
func (c *Command) ArgValue(name string) (any, bool) {
	value, found := c.argValues[name]

	return value, found
}

// ArgValues returns the coerced positional values in declaration order.
// Unbound optional arguments without defaults appear as nil.
func (c *Command) ArgValues() []any {
	out := make([]any, len(c.arguments))
	for i, arg := range c.arguments {
		out[i] = c.argValues[arg.AttributeName()]
	}

	return out
}

// resetCallbacks empties the action/hook queue between parses.
func (c *Command) resetCallbacks() {
	c.callbacks = &deque.Deque[func() error]{}
}

// resetTransientValues clears state left behind by an earlier parse of this
// command level: cli, env and implied entries plus bound arguments. Defaults
// are re-seeded afterwards; config entries survive since the embedder applies
// them before Parse runs.
func (c *Command) resetTransientValues() {
	stale := []string{}
	c.values.Each(func(key string, entry Entry) {
		if entry.Source == SourceCLI || entry.Source == SourceEnv || entry.Source == SourceImplied {
			stale = append(stale, key)
		}
	})
	for _, key := range stale {
		c.values.Delete(key)
	}
	c.rawArgs = nil
	c.argValues = map[string]any{}
}

// fail routes a fatal parse condition through the termination strategy. The
// default strategy prints the message to stderr and terminates the process
// with the error's exit code; an overridden strategy converts the condition
// into a returned error.
func (c *Command) fail(err *ParseError) error {
	if c.exitFunc != nil {
		return c.exitFunc(err)
	}
	if err.Kind != KindHelpDisplayed {
		fmt.Fprintln(c.stderr, err.Error())
	}
	os.Exit(err.ExitCode)

	return nil
}
