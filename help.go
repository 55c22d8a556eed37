package cmdopt

import (
	"fmt"
	"strings"
)

// HelpView is the read-only projection of a command consumed by help
// renderers. Hidden options are filtered out; everything a renderer needs
// is precomputed so formatting stays entirely outside the core.
type HelpView struct {
	CommandPath string
	Description string
	Usage       string
	Options     []HelpOption
	Arguments   []HelpArgument
	Subcommands []HelpCommand
}

// HelpOption describes one visible option.
type HelpOption struct {
	Term        string // e.g. "-c, --chdir <path>"
	Description string
	Annotations []string // default/preset/env/choices notes, in display order
}

// HelpArgument describes one declared positional argument.
type HelpArgument struct {
	Term        string // e.g. "<source>"
	Description string
	Annotations []string
}

// HelpCommand describes one visible subcommand.
type HelpCommand struct {
	Term        string // name with first alias, e.g. "install|i"
	Usage       string // name plus argument terms
	Description string
}

// NewHelpView assembles the help projection for a command.
func NewHelpView(c *Command) *HelpView {
	view := &HelpView{
		CommandPath: c.Path(),
		Description: c.Description(),
		Usage:       usageLine(c),
	}

	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opt := pair.Value
		if opt.IsHidden() {
			continue
		}
		view.Options = append(view.Options, HelpOption{
			Term:        opt.Spec().Term(),
			Description: opt.Description(),
			Annotations: optionAnnotations(opt),
		})
	}

	for _, arg := range c.arguments {
		view.Arguments = append(view.Arguments, HelpArgument{
			Term:        arg.Term(),
			Description: arg.Description(),
			Annotations: argumentAnnotations(arg),
		})
	}

	for pair := c.children.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		term := child.Name()
		if len(child.aliases) > 0 {
			term += "|" + child.aliases[0]
		}
		usage := child.Name()
		for _, arg := range child.arguments {
			usage += " " + arg.Term()
		}
		view.Subcommands = append(view.Subcommands, HelpCommand{
			Term:        term,
			Usage:       usage,
			Description: child.Description(),
		})
	}

	return view
}

// usageLine computes the one-line usage synopsis for a command.
func usageLine(c *Command) string {
	parts := []string{c.Path()}
	if c.options.Len() > 0 {
		parts = append(parts, "[options]")
	}
	if c.children.Len() > 0 {
		parts = append(parts, "[command]")
	}
	for _, arg := range c.arguments {
		parts = append(parts, arg.Term())
	}

	return strings.Join(parts, " ")
}

func optionAnnotations(opt *Option) []string {
	var notes []string
	if choices := opt.ChoiceValues(); len(choices) > 0 {
		notes = append(notes, fmt.Sprintf("choices: %s", strings.Join(choices, ", ")))
	}
	if value, ok := opt.DefaultValue(); ok {
		desc := opt.DefaultDescription()
		if desc == "" {
			desc = fmt.Sprintf("%v", value)
		}
		notes = append(notes, fmt.Sprintf("default: %s", desc))
	}
	if opt.hasPreset {
		notes = append(notes, fmt.Sprintf("preset: %v", opt.presetValue))
	}
	if env := opt.EnvVar(); env != "" {
		notes = append(notes, fmt.Sprintf("env: %s", env))
	}

	return notes
}

func argumentAnnotations(arg *Argument) []string {
	var notes []string
	if choices := arg.ChoiceValues(); len(choices) > 0 {
		notes = append(notes, fmt.Sprintf("choices: %s", strings.Join(choices, ", ")))
	}
	if value, ok := arg.DefaultValue(); ok {
		desc := arg.DefaultDescription()
		if desc == "" {
			desc = fmt.Sprintf("%v", value)
		}
		notes = append(notes, fmt.Sprintf("default: %s", desc))
	}

	return notes
}
