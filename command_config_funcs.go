package cmdopt

// Functional configuration for Command construction, usable in place of or
// alongside the chained setters:
//
//	serve := cmdopt.NewCommand("serve",
//		cmdopt.WithDescription("start the server"),
//		cmdopt.WithAction(runServe),
//	)

// WithDescription sets the command's help description.
func WithDescription(description string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.SetDescription(description)
	}
}

// WithAliases registers alternative names for the command.
func WithAliases(names ...string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Alias(names...)
	}
}

// WithAction registers the command's action handler.
func WithAction(fn ActionFunc) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Action(fn)
	}
}

// WithOption declares a flag on the command.
func WithOption(flags, description string, configs ...ConfigureOptionFunc) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Option(flags, description, configs...)
	}
}

// WithArgument declares a positional argument on the command.
func WithArgument(name, description string) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.Argument(name, description)
	}
}

// WithSubcommand attaches an already-constructed subcommand.
func WithSubcommand(child *Command) ConfigureCommandFunc {
	return func(cmd *Command) {
		if err := cmd.AddCommand(child); err != nil {
			panic(err)
		}
	}
}

// WithExitOverride replaces the termination strategy; see
// Command.ExitOverride.
func WithExitOverride(fn ExitFunc) ConfigureCommandFunc {
	return func(cmd *Command) {
		cmd.ExitOverride(fn)
	}
}
