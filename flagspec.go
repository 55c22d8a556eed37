package cmdopt

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

// Spec is the decomposition of a flags declaration string such as
// "-c, --chdir <path>" into its parts. The value placeholder determines the
// arity classification: <name> requires a value, [name] makes it optional and
// a trailing "..." marks the option variadic.
type Spec struct {
	Short         string // short flag including the leading dash, e.g. "-c"
	Long          string // long flag including leading dashes, e.g. "--chdir"
	AttributeName string // camel-cased identity derived from the flag names
	ValueName     string // placeholder name, "" for boolean flags
	Required      bool   // declared with <name>
	Optional      bool   // declared with [name]
	Variadic      bool   // placeholder suffixed with ...
	Negate        bool   // long flag begins with --no-
}

var variadicPlaceholder = regexp.MustCompile(`\w\.\.\.[>\]]$`)

// ParseFlagSpec parses a single flags string. Malformed strings degrade to
// best-effort names; a spec with no flags at all is caught at registration.
func ParseFlagSpec(flags string) Spec {
	spec := Spec{
		Required: strings.Contains(flags, "<"),
		Optional: strings.Contains(flags, "["),
		Variadic: variadicPlaceholder.MatchString(flags),
	}

	for _, part := range strings.FieldsFunc(flags, func(r rune) bool {
		return r == ' ' || r == ',' || r == '|'
	}) {
		switch {
		case strings.HasPrefix(part, "--"):
			if spec.Long == "" {
				spec.Long = part
			}
		case strings.HasPrefix(part, "-") && len(part) == 2:
			if spec.Short == "" {
				spec.Short = part
			}
		case strings.HasPrefix(part, "<"), strings.HasPrefix(part, "["):
			if spec.ValueName == "" {
				spec.ValueName = strings.TrimSuffix(strings.Trim(part, "<>[]"), "...")
			}
		}
	}

	spec.Negate = strings.HasPrefix(spec.Long, "--no-")
	spec.AttributeName = attributeName(spec.Short, spec.Long)

	return spec
}

// attributeName derives the identity under which a flag's value is stored:
// the long name stripped of dashes and any no- prefix, converted to camel
// form ("--chdir-root" -> "chdirRoot"), falling back to the short name.
func attributeName(short, long string) string {
	name := ""
	if long != "" {
		name = strings.TrimPrefix(strings.TrimPrefix(long, "--"), "no-")
	} else if short != "" {
		name = strings.TrimPrefix(short, "-")
	}
	if strings.Contains(name, "-") {
		return strcase.ToLowerCamel(name)
	}

	return name
}

// IsBoolean reports whether the flag takes no value at all.
func (s Spec) IsBoolean() bool {
	return !s.Required && !s.Optional
}

// Term returns the display form of the flag pair as used in help output,
// e.g. "-c, --chdir <path>".
func (s Spec) Term() string {
	var sb strings.Builder
	if s.Short != "" {
		sb.WriteString(s.Short)
		if s.Long != "" {
			sb.WriteString(", ")
		}
	}
	if s.Long != "" {
		sb.WriteString(s.Long)
	}
	if s.ValueName != "" {
		name := s.ValueName
		if s.Variadic {
			name += "..."
		}
		if s.Required {
			sb.WriteString(" <" + name + ">")
		} else {
			sb.WriteString(" [" + name + "]")
		}
	}

	return sb.String()
}
