package cmdopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlagSpec(t *testing.T) {
	tests := []struct {
		flags string
		want  Spec
	}{
		{
			flags: "-p, --port <number>",
			want: Spec{
				Short: "-p", Long: "--port", AttributeName: "port",
				ValueName: "number", Required: true,
			},
		},
		{
			flags: "--cheese [type]",
			want: Spec{
				Long: "--cheese", AttributeName: "cheese",
				ValueName: "type", Optional: true,
			},
		},
		{
			flags: "-v, --verbose",
			want:  Spec{Short: "-v", Long: "--verbose", AttributeName: "verbose"},
		},
		{
			flags: "-n, --number <numbers...>",
			want: Spec{
				Short: "-n", Long: "--number", AttributeName: "number",
				ValueName: "numbers", Required: true, Variadic: true,
			},
		},
		{
			flags: "--no-sauce",
			want:  Spec{Long: "--no-sauce", AttributeName: "sauce", Negate: true},
		},
		{
			flags: "--ws, --workspace <name>",
			want: Spec{
				Long: "--ws", AttributeName: "ws",
				ValueName: "name", Required: true,
			},
		},
		{
			flags: "-c|--chdir-root <path>",
			want: Spec{
				Short: "-c", Long: "--chdir-root", AttributeName: "chdirRoot",
				ValueName: "path", Required: true,
			},
		},
		{
			flags: "-s",
			want:  Spec{Short: "-s", AttributeName: "s"},
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFlagSpec(tt.flags), "flags %q", tt.flags)
	}
}

func TestSpec_IsBoolean(t *testing.T) {
	assert.True(t, ParseFlagSpec("-v, --verbose").IsBoolean())
	assert.True(t, ParseFlagSpec("--no-sauce").IsBoolean())
	assert.False(t, ParseFlagSpec("--port <number>").IsBoolean())
	assert.False(t, ParseFlagSpec("--cheese [type]").IsBoolean())
}

func TestSpec_Term(t *testing.T) {
	assert.Equal(t, "-p, --port <number>", ParseFlagSpec("-p, --port <number>").Term())
	assert.Equal(t, "--cheese [type]", ParseFlagSpec("--cheese [type]").Term())
	assert.Equal(t, "-n, --number <numbers...>", ParseFlagSpec("-n, --number <numbers...>").Term())
	assert.Equal(t, "-v", ParseFlagSpec("-v").Term())
}

func TestNewArgumentMarkers(t *testing.T) {
	required := NewArgument("<source>", "")
	assert.Equal(t, "source", required.Name())
	assert.True(t, required.IsRequired())
	assert.False(t, required.IsVariadic())

	optional := NewArgument("[destination]", "")
	assert.False(t, optional.IsRequired())

	variadic := NewArgument("<paths...>", "")
	assert.True(t, variadic.IsVariadic())
	assert.Equal(t, "paths", variadic.Name())
	assert.Equal(t, "<paths...>", variadic.Term())

	bare := NewArgument("name", "")
	assert.True(t, bare.IsRequired(), "a bare token counts as required")

	hyphenated := NewArgument("<src-dir>", "")
	assert.Equal(t, "srcDir", hyphenated.AttributeName())
}
