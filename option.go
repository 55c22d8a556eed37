package cmdopt

// Option declares a command-line flag. Construct with NewOption or attach
// directly with Command.Option; builder methods return the receiver so
// declarations chain. Conflict and implication edges are validated at parse
// time, not at construction.
type Option struct {
	spec        Spec
	description string

	defaultValue  any
	defaultDesc   string
	hasDefault    bool
	presetValue   any
	hasPreset     bool
	envVar        string
	choices       []string
	parseFunc     ParseFunc
	hidden        bool
	mandatory     bool
	conflictsWith []string
	impliedValues map[string]any
}

// NewOption parses the flags declaration string and builds an Option.
// Flags strings with no usable flag at all are a programmer error reported
// when the option is added to a command.
func NewOption(flags, description string, configs ...ConfigureOptionFunc) *Option {
	opt := &Option{
		spec:        ParseFlagSpec(flags),
		description: description,
	}
	for _, config := range configs {
		config(opt)
	}

	return opt
}

// Spec returns the parsed flag syntax classification.
func (o *Option) Spec() Spec {
	return o.spec
}

// Name returns the option's attribute name, the identity under which its
// value is stored.
func (o *Option) Name() string {
	return o.spec.AttributeName
}

// Description returns the help description.
func (o *Option) Description() string {
	return o.description
}

// Default sets the value used when no source supplies one. An optional
// second argument overrides how the default is described in help output.
func (o *Option) Default(value any, description ...string) *Option {
	o.defaultValue = value
	o.hasDefault = true
	if len(description) > 0 {
		o.defaultDesc = description[0]
	}

	return o
}

// Preset sets the value recorded when an optional-value flag appears bare,
// e.g. --cheese with .Preset("mild") records "mild" instead of true.
func (o *Option) Preset(value any) *Option {
	o.presetValue = value
	o.hasPreset = true

	return o
}

// Env names an environment variable consulted when the flag is absent from
// the command line. The value is coerced exactly like a command-line value
// and ranks between default and cli.
func (o *Option) Env(name string) *Option {
	o.envVar = name

	return o
}

// Choices restricts the raw values the option accepts. Membership is
// checked before type inference; a mismatch is an invalid-argument error
// listing the valid choices.
func (o *Option) Choices(values ...string) *Option {
	o.choices = values

	return o
}

// WithParser installs a custom coercion function. The function is called
// once per occurrence with the raw string and the previously accumulated
// value, enabling variadic accumulation.
func (o *Option) WithParser(fn ParseFunc) *Option {
	o.parseFunc = fn

	return o
}

// Hidden excludes the option from help output. It still parses normally.
func (o *Option) Hidden() *Option {
	o.hidden = true

	return o
}

// Mandatory marks the option as required to hold a value from some source
// (default, env, config or cli) once parsing of its command finishes.
func (o *Option) Mandatory() *Option {
	o.mandatory = true

	return o
}

// Conflicts declares attribute names this option is mutually exclusive
// with. When both sides are explicitly set during the same parse, parsing
// fails after the token pass so flag order cannot mask a conflict.
func (o *Option) Conflicts(attributeNames ...string) *Option {
	o.conflictsWith = append(o.conflictsWith, attributeNames...)

	return o
}

// Implies sets other attributes to fixed values when this option is seen.
// An implied value never overrides a value supplied explicitly by env,
// config or cli.
func (o *Option) Implies(values map[string]any) *Option {
	if o.impliedValues == nil {
		o.impliedValues = make(map[string]any, len(values))
	}
	for k, v := range values {
		o.impliedValues[k] = v
	}

	return o
}

// IsHidden reports whether the option is excluded from help output.
func (o *Option) IsHidden() bool {
	return o.hidden
}

// IsMandatory reports whether the option must resolve to a value.
func (o *Option) IsMandatory() bool {
	return o.mandatory
}

// DefaultValue returns the configured default and whether one is set.
func (o *Option) DefaultValue() (any, bool) {
	return o.defaultValue, o.hasDefault
}

// DefaultDescription returns the display text for the default value. When
// no override was given, help renderers fall back to formatting the value.
func (o *Option) DefaultDescription() string {
	return o.defaultDesc
}

// EnvVar returns the configured environment variable name, "" when unset.
func (o *Option) EnvVar() string {
	return o.envVar
}

// ChoiceValues returns the allowed-choices set, nil when unrestricted.
func (o *Option) ChoiceValues() []string {
	return o.choices
}

// matches reports whether a dashed token ("-c" or "--chdir") refers to this
// option. Matching is exact; --name=value splitting happens in the
// tokenizer before lookup.
func (o *Option) matches(token string) bool {
	return (o.spec.Short != "" && token == o.spec.Short) ||
		(o.spec.Long != "" && token == o.spec.Long)
}
