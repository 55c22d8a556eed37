package cmdopt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/halloway/cmdopt/internal/util"
)

// coerceValue runs the coercion pipeline for one raw occurrence: custom
// parse function first, then choice validation, then implied-type inference
// (plain string, or string-slice accumulation for variadics). prev is the
// previously accumulated value and may be nil. The returned error is a plain
// error; callers wrap it with the option/argument identity.
func coerceValue(raw string, prev any, parseFunc ParseFunc, choices []string, variadic bool) (value any, err error) {
	if parseFunc != nil {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v", r)
			}
		}()

		return parseFunc(raw, prev)
	}

	if len(choices) > 0 {
		if !util.Contains(choices, raw) {
			return nil, fmt.Errorf("%q is not one of the allowed choices: %s", raw, strings.Join(choices, ", "))
		}
	}

	if variadic {
		return appendVariadic(prev, raw), nil
	}

	return raw, nil
}

// appendVariadic extends the accumulated string slice with one occurrence.
// A previous value that is not a cli-accumulated slice (a default, or a
// scalar) is discarded so defaults never mix into cli-supplied lists.
func appendVariadic(prev any, raw string) []string {
	if existing, ok := prev.([]string); ok {
		return append(existing, raw)
	}

	return []string{raw}
}

// Built-in ParseFunc helpers for common typed options.

// ParseIntFunc coerces the raw value to an int.
func ParseIntFunc(raw string, _ any) (any, error) {
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid integer", raw)
	}

	return val, nil
}

// ParseFloatFunc coerces the raw value to a float64.
func ParseFloatFunc(raw string, _ any) (any, error) {
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid number", raw)
	}

	return val, nil
}

// ParseBoolFunc coerces the raw value to a bool using strconv semantics.
func ParseBoolFunc(raw string, _ any) (any, error) {
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid boolean", raw)
	}

	return val, nil
}

// ParseDurationFunc coerces the raw value to a time.Duration.
func ParseDurationFunc(raw string, _ any) (any, error) {
	val, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid duration", raw)
	}

	return val, nil
}

// ParseTimeFunc coerces the raw value to a time.Time, accepting any layout
// dateparse can recognize in the local timezone.
func ParseTimeFunc(raw string, _ any) (any, error) {
	val, err := dateparse.ParseLocal(raw)
	if err != nil {
		return nil, fmt.Errorf("%q is not a recognizable date/time", raw)
	}

	return val, nil
}
