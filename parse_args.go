package cmdopt

import (
	"fmt"
	"strings"

	"github.com/halloway/cmdopt/parse"
)

// Parse consumes raw argv (without the program name) for this command tree.
// Recognized options are coerced and stored per command, operands resolve
// subcommands depth-first, and the resolved command's action runs after the
// whole parse succeeds, bracketed by preAction/postAction hooks in
// registration order. Fatal conditions are routed through the termination
// strategy: by default the process exits with the error's suggested code;
// with ExitOverride installed the ParseError is returned instead. Action
// and hook errors are returned unchanged. A tree may be parsed repeatedly;
// each parse clears the cli, env and implied values the previous one
// recorded on the command levels it visits.
func (c *Command) Parse(args []string) error {
	root := c.Root()
	root.resetCallbacks()

	if perr := c.parseLevel(args); perr != nil {
		return c.fail(perr)
	}

	for {
		fn, ok := root.callbacks.PopFront()
		if !ok {
			break
		}
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}

// ParseString splits a shell-style command line and parses it.
func (c *Command) ParseString(line string) error {
	args, err := parse.Split(line)
	if err != nil {
		return err
	}

	return c.Parse(args)
}

// ParseOptions tokenizes one command level without dispatching to
// subcommands or binding arguments: recognized options are consumed and
// stored, everything else is classified into operands and unknown tokens.
func (c *Command) ParseOptions(args []string) (operands, unknown []string, err error) {
	c.ensureInit()
	operands, unknown, perr := c.parseOptions(args)
	if perr != nil {
		return nil, nil, perr
	}

	return operands, unknown, nil
}

// parseLevel runs the full parse pipeline for one command level: env
// application, tokenization, post-token validation (implied values,
// conflicts, mandatory options), then either subcommand dispatch or
// argument binding and action queuing.
func (c *Command) parseLevel(args []string) *ParseError {
	c.resetTransientValues()
	c.ensureInit()
	if perr := c.applyEnvValues(); perr != nil {
		return perr
	}

	operands, unknown, perr := c.parseOptions(args)
	if perr != nil {
		return perr
	}

	c.rawArgs = make([]string, 0, len(operands)+len(unknown))
	c.rawArgs = append(c.rawArgs, operands...)
	c.rawArgs = append(c.rawArgs, unknown...)

	// Conflicts and missing-mandatory conditions are checked only after the
	// whole token pass so flag order cannot mask them.
	c.applyImpliedValues()
	if perr := c.checkConflicts(); perr != nil {
		return perr
	}
	if perr := c.checkMandatoryOptions(); perr != nil {
		return perr
	}

	if len(operands) > 0 {
		if child, found := c.findCommand(operands[0]); found {
			rest := make([]string, 0, len(operands)-1+len(unknown))
			rest = append(rest, operands[1:]...)
			rest = append(rest, unknown...)

			return child.parseLevel(rest)
		}
	}

	if len(unknown) > 0 && !c.allowUnknownOptions {
		return c.unknownOptionError(unknown[0])
	}

	if c.children.Len() > 0 && c.action == nil && len(c.arguments) == 0 {
		subject := ""
		if len(operands) > 0 {
			subject = operands[0]
		}

		return c.unknownCommandError(subject)
	}

	if perr := c.bindArguments(operands); perr != nil {
		return perr
	}
	c.queueCallbacks()

	return nil
}

// ensureInit registers the automatic help option and seeds defaults for
// options configured after registration.
func (c *Command) ensureInit() {
	if !c.helpOptionDisabled && c.helpOption == nil {
		if _, takenShort := c.findOption("-h"); !takenShort {
			if _, takenLong := c.findOption("--help"); !takenLong {
				c.helpOption = NewOption("-h, --help", "display help for command")
				c.options.Set("help", c.helpOption)
			}
		}
	}
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		attr := pair.Value.Spec().AttributeName
		if value, ok := pair.Value.DefaultValue(); ok && !c.values.Has(attr) {
			c.values.Set(attr, value, SourceDefault)
			continue
		}
		// A boolean declared only in negated form implicitly defaults its
		// attribute to true.
		if pair.Value.Spec().Negate && !c.values.Has(attr) {
			if resolved, _ := c.LookupOption(attr); resolved != nil && resolved.Spec().Negate {
				c.values.Set(attr, true, SourceDefault)
			}
		}
	}
}

// maybeOption reports whether a token looks like a flag: more than one
// character and a leading dash.
func maybeOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// findOption resolves a dashed token against this command's declared
// options.
func (c *Command) findOption(token string) (*Option, bool) {
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.matches(token) {
			return pair.Value, true
		}
	}

	return nil, false
}

// parseOptions is the tokenizer state machine for one command level. It
// classifies every token as a recognized option (consuming its value where
// the declaration requires one), an operand, or an unknown token, honoring
// the -- operand terminator, clustered short booleans, -xVALUE combining,
// --name=value, variadic greediness, and the positional/pass-through modes.
func (c *Command) parseOptions(args []string) (operands, unknown []string, perr *ParseError) {
	state := parse.NewState(args)
	dest := &operands
	var activeVariadic *Option

	for state.Advance() {
		arg := state.CurrentArg()

		// Explicit operand terminator: everything after the first -- is an
		// operand verbatim and is never re-parsed as an option.
		if arg == "--" {
			if dest == &unknown {
				*dest = append(*dest, arg)
			}
			*dest = append(*dest, state.Remaining()...)
			break
		}

		// A variadic option stays greedy until the next dashed token.
		if activeVariadic != nil && !maybeOption(arg) {
			if perr = c.handleOption(activeVariadic, &arg); perr != nil {
				return
			}
			continue
		}
		activeVariadic = nil

		if maybeOption(arg) {
			if opt, found := c.findOption(arg); found {
				if perr = c.consumeOption(opt, state); perr != nil {
					return
				}
				if opt.Spec().Variadic {
					activeVariadic = opt
				}
				continue
			}

			// -xVALUE combining and -abc boolean clusters.
			if len(arg) > 2 && arg[1] != '-' {
				if opt, found := c.findOption(arg[:2]); found {
					spec := opt.Spec()
					rest := arg[2:]
					if spec.Required || (spec.Optional && c.combineFlagAndOptionalValue) {
						if perr = c.handleOption(opt, &rest); perr != nil {
							return
						}
						if spec.Variadic {
							activeVariadic = opt
						}
					} else {
						// Boolean short: take it and reprocess the rest as
						// another cluster, so -abc becomes -a -bc.
						if perr = c.handleOption(opt, nil); perr != nil {
							return
						}
						state.InsertArgsAt(state.Pos()+1, "-"+rest)
					}
					continue
				}
			}

			// --name=value
			if idx := strings.Index(arg, "="); strings.HasPrefix(arg, "--") && idx > 2 {
				if opt, found := c.findOption(arg[:idx]); found {
					spec := opt.Spec()
					if spec.Required || spec.Optional {
						value := arg[idx+1:]
						if perr = c.handleOption(opt, &value); perr != nil {
							return
						}
						if spec.Variadic {
							activeVariadic = opt
						}
						continue
					}
				}
			}

			// Unrecognized dash token: from here on plain tokens keep their
			// adjacency with it in the unknown list.
			dest = &unknown
		}

		// In positional-options (and pass-through) mode a leading
		// subcommand name ends this level's option parsing outright.
		if (c.enablePositionalOptions || c.passThroughOptions) && len(operands) == 0 && len(unknown) == 0 {
			if _, found := c.findCommand(arg); found {
				operands = append(operands, arg)
				unknown = append(unknown, state.Remaining()...)
				break
			}
		}

		if c.passThroughOptions {
			*dest = append(*dest, arg)
			*dest = append(*dest, state.Remaining()...)
			break
		}

		*dest = append(*dest, arg)
	}

	return operands, unknown, nil
}

// consumeOption routes a matched flag token, pulling the following token as
// the value when the declaration requires one.
func (c *Command) consumeOption(opt *Option, state parse.State) *ParseError {
	spec := opt.Spec()
	switch {
	case spec.Required:
		if state.Pos()+1 >= state.Len() {
			return newParseError(c, KindMissingOptionArgument, c.optionTerm(opt),
				fmt.Sprintf("option '%s' argument missing", c.optionTerm(opt)))
		}
		value := state.Peek()
		state.Skip()

		return c.handleOption(opt, &value)
	case spec.Optional:
		if next := state.Peek(); next != "" && !maybeOption(next) {
			state.Skip()

			return c.handleOption(opt, &next)
		}

		return c.handleOption(opt, nil)
	default:
		return c.handleOption(opt, nil)
	}
}

// handleOption coerces one occurrence of an option and records the result
// with cli source, then fires any option:<name> listeners.
func (c *Command) handleOption(opt *Option, raw *string) *ParseError {
	if opt == c.helpOption && c.helpOption != nil {
		c.renderHelp()

		return newParseError(c, KindHelpDisplayed, "--help", "help requested")
	}

	spec := opt.Spec()
	attr := spec.AttributeName
	var value any

	if raw == nil {
		switch {
		case spec.Negate:
			value = false
		case spec.IsBoolean():
			value = true
		default:
			// Optional-value flag appearing bare.
			if preset, ok := opt.presetValue, opt.hasPreset; ok {
				value = preset
			} else {
				value = true
			}
		}
	} else {
		var prev any
		if c.values.Source(attr) == SourceCLI {
			prev, _ = c.values.Get(attr)
		} else if def, ok := opt.DefaultValue(); ok && opt.parseFunc != nil {
			// Without a custom parser the default must not leak into a
			// cli-supplied accumulation.
			prev = def
		}
		coerced, err := coerceValue(*raw, prev, opt.parseFunc, opt.choices, spec.Variadic)
		if err != nil {
			return newParseError(c, KindInvalidArgument, c.optionTerm(opt),
				fmt.Sprintf("option '%s' argument %q is invalid: %v", c.optionTerm(opt), *raw, err))
		}
		value = coerced
	}

	c.values.Set(attr, value, SourceCLI)

	for _, fn := range c.hooks["option:"+attr] {
		if err := fn(c); err != nil {
			return newParseError(c, KindInvalidArgument, c.optionTerm(opt), err.Error())
		}
	}

	return nil
}

// applyEnvValues resolves env-configured options before the token pass.
// Environment values rank between default and cli, so they never overwrite
// a config- or cli-sourced entry.
func (c *Command) applyEnvValues() *ParseError {
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opt := pair.Value
		if opt.envVar == "" {
			continue
		}
		raw, present := c.envLookup(opt.envVar)
		if !present {
			continue
		}
		spec := opt.Spec()
		if src := c.values.Source(spec.AttributeName); src == SourceConfig || src == SourceCLI {
			continue
		}

		var value any
		if spec.IsBoolean() {
			value = !spec.Negate
		} else {
			coerced, err := coerceValue(raw, nil, opt.parseFunc, opt.choices, spec.Variadic)
			if err != nil {
				return newParseError(c, KindInvalidArgument, c.optionTerm(opt),
					fmt.Sprintf("option '%s' value %q from env %s is invalid: %v", c.optionTerm(opt), raw, opt.envVar, err))
			}
			value = coerced
		}
		c.values.Set(spec.AttributeName, value, SourceEnv)
	}

	return nil
}

// explicitSource reports whether a source reflects a deliberate value
// supplied by the user or embedder rather than a declaration-time fallback.
func explicitSource(src ValueSource) bool {
	return src == SourceEnv || src == SourceConfig || src == SourceCLI
}

// applyImpliedValues applies implies() edges of every explicitly set
// option. An implied value never overrides a value supplied explicitly by
// env, config or cli.
func (c *Command) applyImpliedValues() {
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opt := pair.Value
		if len(opt.impliedValues) == 0 || !explicitSource(c.values.Source(opt.Spec().AttributeName)) {
			continue
		}
		for target, value := range opt.impliedValues {
			if src := c.values.Source(target); src == "" || src == SourceDefault {
				c.values.Set(target, value, SourceImplied)
			}
		}
	}
}

// checkConflicts fails when two options declared mutually exclusive were
// both set explicitly; neither keeps its value.
func (c *Command) checkConflicts() *ParseError {
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opt := pair.Value
		attr := opt.Spec().AttributeName
		if len(opt.conflictsWith) == 0 || !explicitSource(c.values.Source(attr)) {
			continue
		}
		for _, other := range opt.conflictsWith {
			if !explicitSource(c.values.Source(other)) {
				continue
			}
			c.values.Delete(attr)
			c.values.Delete(other)

			return newParseError(c, KindConflictingOption, c.optionTerm(opt),
				fmt.Sprintf("option '%s' cannot be used with option '%s'", c.optionTerm(opt), c.attrTerm(other)))
		}
	}

	return nil
}

// checkMandatoryOptions fails when a mandatory option resolved no value
// from any source.
func (c *Command) checkMandatoryOptions() *ParseError {
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsMandatory() && !c.values.Has(pair.Value.Spec().AttributeName) {
			return newParseError(c, KindMissingMandatoryOptionValue, c.optionTerm(pair.Value),
				fmt.Sprintf("required option '%s' not specified", c.optionTerm(pair.Value)))
		}
	}

	return nil
}

// bindArguments binds operands to the command's declared positional
// arguments. A trailing variadic argument absorbs every remaining operand
// in order.
func (c *Command) bindArguments(operands []string) *ParseError {
	declared := c.arguments
	variadicTail := len(declared) > 0 && declared[len(declared)-1].IsVariadic()
	if len(operands) > len(declared) && !variadicTail && !c.allowExcessArguments {
		return newParseError(c, KindExcessArguments, "",
			fmt.Sprintf("expected %d argument(s) but got %d", len(declared), len(operands)))
	}

	for i, arg := range declared {
		attr := arg.AttributeName()

		if arg.IsVariadic() {
			rest := operands[min(i, len(operands)):]
			if len(rest) == 0 {
				if arg.IsRequired() {
					return c.missingArgumentError(arg)
				}
				if def, ok := arg.DefaultValue(); ok {
					c.argValues[attr] = def
				}
				break
			}
			var acc any
			if def, ok := arg.DefaultValue(); ok && arg.parseFunc != nil {
				acc = def
			}
			for _, raw := range rest {
				value, err := coerceValue(raw, acc, arg.parseFunc, arg.choices, true)
				if err != nil {
					return c.invalidArgumentError(arg, raw, err)
				}
				acc = value
			}
			c.argValues[attr] = acc
			break
		}

		if i < len(operands) {
			var prev any
			if def, ok := arg.DefaultValue(); ok {
				prev = def
			}
			value, err := coerceValue(operands[i], prev, arg.parseFunc, arg.choices, false)
			if err != nil {
				return c.invalidArgumentError(arg, operands[i], err)
			}
			c.argValues[attr] = value
			continue
		}

		if def, ok := arg.DefaultValue(); ok {
			c.argValues[attr] = def
			continue
		}
		if arg.IsRequired() {
			return c.missingArgumentError(arg)
		}
		// Optional argument without operand or default stays absent.
	}

	return nil
}

// queueCallbacks schedules the resolved command's lifecycle on the root's
// FIFO queue: ancestors' preAction hooks top-down, the action itself, then
// postAction hooks bottom-up. Each callback is awaited before the next one
// runs.
func (c *Command) queueCallbacks() {
	if c.action == nil {
		return
	}

	root := c.Root()
	chain := []*Command{}
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		for _, fn := range chain[i].hooks[EventPreAction] {
			hook := fn
			root.callbacks.PushBack(func() error { return hook(c) })
		}
	}
	action := c.action
	root.callbacks.PushBack(func() error { return action(c) })
	for _, cmd := range chain {
		for _, fn := range cmd.hooks[EventPostAction] {
			hook := fn
			root.callbacks.PushBack(func() error { return hook(c) })
		}
	}
}

// renderHelp invokes the configured help renderer with this command's
// read-only help view. Without a renderer installed the help request still
// short-circuits parsing; the embedder formats the view itself.
func (c *Command) renderHelp() {
	if c.helpFunc != nil {
		_ = c.helpFunc(c.stdout, NewHelpView(c))
	}
}

// optionTerm returns the preferred display name of an option for error
// messages.
func (c *Command) optionTerm(opt *Option) string {
	spec := opt.Spec()
	if spec.Long != "" {
		return spec.Long
	}

	return spec.Short
}

// attrTerm maps an attribute name back to its flag display form when the
// attribute is declared on this command.
func (c *Command) attrTerm(attr string) string {
	if opt, found := c.LookupOption(attr); found {
		return c.optionTerm(opt)
	}

	return attr
}

func (c *Command) unknownOptionError(token string) *ParseError {
	message := fmt.Sprintf("unknown option '%s'", token)
	if c.showSuggestionAfterError {
		candidates := []string{}
		for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
			if long := pair.Value.Spec().Long; long != "" && !pair.Value.IsHidden() {
				candidates = append(candidates, long)
			}
		}
		if suggestion := suggestSimilar(token, candidates); suggestion != "" {
			message += fmt.Sprintf("\n(Did you mean %s?)", suggestion)
		}
	}

	return newParseError(c, KindUnknownOption, token, message)
}

func (c *Command) unknownCommandError(name string) *ParseError {
	if name == "" {
		return newParseError(c, KindUnknownCommand, "",
			fmt.Sprintf("missing subcommand for '%s'", c.Path()))
	}

	message := fmt.Sprintf("unknown command '%s'", name)
	if c.showSuggestionAfterError {
		candidates := []string{}
		for pair := c.children.Oldest(); pair != nil; pair = pair.Next() {
			candidates = append(candidates, pair.Key)
			candidates = append(candidates, pair.Value.aliases...)
		}
		if suggestion := suggestSimilar(name, candidates); suggestion != "" {
			message += fmt.Sprintf("\n(Did you mean %s?)", suggestion)
		}
	}

	return newParseError(c, KindUnknownCommand, name, message)
}

func (c *Command) missingArgumentError(arg *Argument) *ParseError {
	return newParseError(c, KindMissingArgument, arg.Name(),
		fmt.Sprintf("missing required argument '%s'", arg.Name()))
}

func (c *Command) invalidArgumentError(arg *Argument, raw string, err error) *ParseError {
	return newParseError(c, KindInvalidArgument, arg.Name(),
		fmt.Sprintf("argument '%s' value %q is invalid: %v", arg.Name(), raw, err))
}
