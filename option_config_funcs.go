package cmdopt

// Functional configuration for Option construction, mirroring the chained
// builder methods.

// WithDefault sets the option's default value.
func WithDefault(value any, description ...string) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Default(value, description...)
	}
}

// WithPreset sets the value recorded when an optional-value flag appears
// bare.
func WithPreset(value any) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Preset(value)
	}
}

// WithEnv names the environment variable fallback.
func WithEnv(name string) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Env(name)
	}
}

// WithChoices restricts the raw values the option accepts.
func WithChoices(values ...string) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Choices(values...)
	}
}

// WithParseFunc installs a custom coercion function.
func WithParseFunc(fn ParseFunc) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.WithParser(fn)
	}
}

// AsHidden excludes the option from help output.
func AsHidden() ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Hidden()
	}
}

// AsMandatory requires the option to resolve a value from some source.
func AsMandatory() ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Mandatory()
	}
}

// WithConflicts declares mutually exclusive attribute names.
func WithConflicts(attributeNames ...string) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Conflicts(attributeNames...)
	}
}

// WithImplies sets other attributes to fixed values when the option is
// seen.
func WithImplies(values map[string]any) ConfigureOptionFunc {
	return func(opt *Option) {
		opt.Implies(values)
	}
}
