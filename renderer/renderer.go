// Package renderer formats the read-only help view assembled by cmdopt.
// The core engine never produces display text itself; this package is the
// default collaborator turning a HelpView into terminal output.
package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/halloway/cmdopt"
)

const (
	minWidth     = 40
	defaultWidth = 80
	termIndent   = 2
	termGap      = 2
)

// Renderer writes formatted help text for a command tree.
type Renderer struct {
	width    int
	colorize bool
	heading  *color.Color
}

// New creates a Renderer sized to the terminal attached to stdout, falling
// back to an 80-column layout.
func New() *Renderer {
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w >= minWidth {
		width = w
	}

	return &Renderer{
		width:    width,
		colorize: true,
		heading:  color.New(color.Bold),
	}
}

// WithWidth overrides the layout width.
func (r *Renderer) WithWidth(width int) *Renderer {
	if width >= minWidth {
		r.width = width
	}

	return r
}

// WithColor toggles bold section headings.
func (r *Renderer) WithColor(enable bool) *Renderer {
	r.colorize = enable

	return r
}

// Write renders the help view to w. The signature matches what
// Command.SetHelpFunc expects:
//
//	root.SetHelpFunc(renderer.New().Write)
func (r *Renderer) Write(w io.Writer, view *cmdopt.HelpView) error {
	fmt.Fprintf(w, "Usage: %s\n", view.Usage)
	if view.Description != "" {
		fmt.Fprintf(w, "\n%s\n", view.Description)
	}

	if len(view.Arguments) > 0 {
		r.section(w, "Arguments:")
		for _, arg := range view.Arguments {
			r.item(w, arg.Term, describe(arg.Description, arg.Annotations))
		}
	}

	if len(view.Options) > 0 {
		r.section(w, "Options:")
		for _, opt := range view.Options {
			r.item(w, opt.Term, describe(opt.Description, opt.Annotations))
		}
	}

	if len(view.Subcommands) > 0 {
		r.section(w, "Commands:")
		for _, cmd := range view.Subcommands {
			r.item(w, cmd.Term, cmd.Description)
		}
	}

	return nil
}

func (r *Renderer) section(w io.Writer, title string) {
	if r.colorize {
		fmt.Fprintf(w, "\n%s\n", r.heading.Sprint(title))
	} else {
		fmt.Fprintf(w, "\n%s\n", title)
	}
}

// item prints one term/description pair, wrapping the description to the
// layout width in a hanging indent.
func (r *Renderer) item(w io.Writer, termText, description string) {
	indent := strings.Repeat(" ", termIndent)
	if description == "" {
		fmt.Fprintf(w, "%s%s\n", indent, termText)
		return
	}

	const descColumn = 26
	pad := descColumn - len(termText)
	if pad < termGap {
		fmt.Fprintf(w, "%s%s\n%s\n", indent, termText, wrap(description, descColumn+termIndent, r.width))
		return
	}

	first := indent + termText + strings.Repeat(" ", pad)
	wrapped := wrap(description, descColumn+termIndent, r.width)
	fmt.Fprintf(w, "%s%s\n", first, strings.TrimLeft(wrapped, " "))
}

func describe(description string, annotations []string) string {
	if len(annotations) == 0 {
		return description
	}
	notes := fmt.Sprintf("(%s)", strings.Join(annotations, ", "))
	if description == "" {
		return notes
	}

	return description + " " + notes
}

// wrap reflows text into lines of at most width columns, each line prefixed
// with indent spaces.
func wrap(text string, indent, width int) string {
	avail := width - indent
	if avail < 10 {
		avail = 10
	}
	prefix := strings.Repeat(" ", indent)

	var sb strings.Builder
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= avail:
			line += " " + word
		default:
			sb.WriteString(prefix + line + "\n")
			line = word
		}
	}
	if line != "" {
		sb.WriteString(prefix + line)
	}

	return sb.String()
}
