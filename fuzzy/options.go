// SPDX-License-Identifier: MIT

package fuzzy

import "fmt"

// Option configures an Engine. Invalid options are recorded and surfaced
// by NewEngine as ErrOptionViolation.
type Option func(*Options)

// Options holds engine policy.
type Options struct {
	// Fallback maps a consequent variable to the crisp value substituted when
	// its aggregate is all zero. Variables absent from the map report
	// ErrUnderdetermined instead.
	Fallback map[string]float64

	err error
}

// DefaultOptions returns Options with no fallbacks: every underdetermined
// output is reported to the caller.
func DefaultOptions() Options {
	return Options{Fallback: make(map[string]float64)}
}

// WithFallback substitutes value for variable when no rule targeting it
// fires. The substitution is visible in Result.Defaulted.
func WithFallback(variable string, value float64) Option {
	return func(o *Options) {
		switch {
		case variable == "":
			o.err = fmt.Errorf("%w: fallback needs a variable name", ErrOptionViolation)
		case !finite(value):
			o.err = fmt.Errorf("%w: fallback for %q is not finite", ErrOptionViolation, variable)
		default:
			o.Fallback[variable] = value
		}
	}
}

// WithFallbacks applies WithFallback for every entry of m.
func WithFallbacks(m map[string]float64) Option {
	return func(o *Options) {
		for k, v := range m {
			WithFallback(k, v)(o)
		}
	}
}
