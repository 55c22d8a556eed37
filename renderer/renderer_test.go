package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halloway/cmdopt"
)

func sampleView() *cmdopt.HelpView {
	return &cmdopt.HelpView{
		CommandPath: "pizza",
		Description: "order a pizza",
		Usage:       "pizza [options] [command] <name>",
		Options: []cmdopt.HelpOption{
			{Term: "-c, --cheese <type>", Description: "cheese type", Annotations: []string{"default: mozzarella"}},
			{Term: "-v, --verbose", Description: "verbose output"},
		},
		Arguments: []cmdopt.HelpArgument{
			{Term: "<name>", Description: "pizza name"},
		},
		Subcommands: []cmdopt.HelpCommand{
			{Term: "deliver|d", Usage: "deliver <address>", Description: "deliver the order"},
		},
	}
}

func TestRenderer_Write(t *testing.T) {
	out := &bytes.Buffer{}
	err := New().WithColor(false).WithWidth(80).Write(out, sampleView())
	assert.Nil(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Usage: pizza [options] [command] <name>\n"))
	assert.Contains(t, text, "order a pizza")
	assert.Contains(t, text, "Arguments:\n")
	assert.Contains(t, text, "Options:\n")
	assert.Contains(t, text, "Commands:\n")
	assert.Contains(t, text, "-c, --cheese <type>")
	assert.Contains(t, text, "cheese type (default: mozzarella)")
	assert.Contains(t, text, "deliver|d")
}

func TestRenderer_SectionOrder(t *testing.T) {
	out := &bytes.Buffer{}
	assert.Nil(t, New().WithColor(false).Write(out, sampleView()))

	text := out.String()
	args := strings.Index(text, "Arguments:")
	opts := strings.Index(text, "Options:")
	cmds := strings.Index(text, "Commands:")
	assert.True(t, args < opts && opts < cmds, "sections print as arguments, options, commands")
}

func TestRenderer_EmptySectionsOmitted(t *testing.T) {
	out := &bytes.Buffer{}
	view := &cmdopt.HelpView{Usage: "ping"}
	assert.Nil(t, New().WithColor(false).Write(out, view))

	text := out.String()
	assert.Equal(t, "Usage: ping\n", text)
}

func TestRenderer_WrapsLongDescriptions(t *testing.T) {
	out := &bytes.Buffer{}
	view := &cmdopt.HelpView{
		Usage: "serve",
		Options: []cmdopt.HelpOption{
			{Term: "--dir <path>", Description: strings.Repeat("directory of static files to serve ", 4)},
		},
	}
	assert.Nil(t, New().WithColor(false).WithWidth(60).Write(out, view))

	for _, line := range strings.Split(out.String(), "\n") {
		assert.LessOrEqual(t, len(line), 60, "no rendered line exceeds the layout width")
	}
}

func TestRenderer_WidthFloor(t *testing.T) {
	r := New().WithWidth(10)
	assert.NotEqual(t, 10, r.width, "widths below the floor are ignored")
}
