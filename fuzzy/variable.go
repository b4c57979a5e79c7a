// SPDX-License-Identifier: MIT

package fuzzy

import (
	"fmt"
	"math"
)

// MaxSamples caps the number of samples a universe may produce, keeping
// every inference bounded.
const MaxSamples = 1_000_000

// snapEps absorbs floating error when counting samples of a closed interval.
const snapEps = 1e-9

// Universe is the closed interval [Min, Max] sampled every Step.
type Universe struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Validate checks bounds and resolution.
func (u Universe) Validate() error {
	if !finite(u.Min) || !finite(u.Max) || !finite(u.Step) {
		return fmt.Errorf("%w: non-finite bound or step", ErrInvalidUniverse)
	}
	if u.Step <= 0 {
		return fmt.Errorf("%w: step %v must be positive", ErrInvalidUniverse, u.Step)
	}
	if u.Max <= u.Min {
		return fmt.Errorf("%w: max %v must exceed min %v", ErrInvalidUniverse, u.Max, u.Min)
	}
	if (u.Max-u.Min)/u.Step+1 > MaxSamples {
		return fmt.Errorf("%w: more than %d samples", ErrInvalidUniverse, MaxSamples)
	}

	return nil
}

// Len returns the number of samples: floor((Max-Min)/Step) + 1, with a small
// tolerance so that Max itself is included when it lies on the grid.
func (u Universe) Len() int {
	return int(math.Floor((u.Max-u.Min)/u.Step+snapEps)) + 1
}

// Samples returns Min + i·Step for i in [0, Len()).
func (u Universe) Samples() []float64 {
	n := u.Len()
	out := make([]float64, n)
	for i := range out {
		out[i] = u.Min + float64(i)*u.Step
	}

	return out
}

// Contains reports whether x lies inside [Min, Max].
func (u Universe) Contains(x float64) bool {
	return x >= u.Min && x <= u.Max
}

// Triangle is the triangular membership function (A, B, C) with A <= B <= C.
type Triangle struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// Validate checks finiteness and ordering.
func (t Triangle) Validate() error {
	if !finite(t.A) || !finite(t.B) || !finite(t.C) {
		return fmt.Errorf("%w: non-finite parameter in %v", ErrInvalidTerm, t)
	}
	if t.A > t.B || t.B > t.C {
		return fmt.Errorf("%w: need a <= b <= c, got (%v, %v, %v)", ErrInvalidTerm, t.A, t.B, t.C)
	}

	return nil
}

// Eval returns the membership degree of x:
//
//	x < A or x > C  → 0
//	x == B          → 1
//	A <= x < B      → (x-A)/(B-A)
//	B < x <= C      → (C-x)/(C-B)
//
// With A == B the left side is a step to 1 at A; with B == C the right side
// stays 1 up to C and drops to 0 after it.
func (t Triangle) Eval(x float64) float64 {
	switch {
	case x < t.A || x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.C - x) / (t.C - t.B)
	}
}

// Term is a named fuzzy set of a variable.
type Term struct {
	Name  string   `yaml:"name"`
	Shape Triangle `yaml:"shape"`
}

// Role tells whether a variable is read from inputs or produced by rules.
type Role int

const (
	// Antecedent variables are fuzzified from crisp inputs.
	Antecedent Role = iota + 1

	// Consequent variables are aggregated and defuzzified.
	Consequent
)

// String returns "antecedent" or "consequent".
func (r Role) String() string {
	switch r {
	case Antecedent:
		return "antecedent"
	case Consequent:
		return "consequent"
	default:
		return "unknown"
	}
}

// Variable is a linguistic variable: a universe partitioned into terms.
// Terms keep declaration order, which is the order used in explanations.
type Variable struct {
	Name     string
	Role     Role
	Universe Universe
	Terms    []Term
}

// Validate checks the variable and its terms.
func (v Variable) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if v.Role != Antecedent && v.Role != Consequent {
		return fmt.Errorf("%w: %q has unknown role", ErrInvalidVariable, v.Name)
	}
	if len(v.Terms) == 0 {
		return fmt.Errorf("%w: %q has no terms", ErrInvalidVariable, v.Name)
	}
	if err := v.Universe.Validate(); err != nil {
		return fmt.Errorf("variable %q: %w", v.Name, err)
	}
	seen := make(map[string]struct{}, len(v.Terms))
	for _, t := range v.Terms {
		if t.Name == "" {
			return fmt.Errorf("%w: %q has an unnamed term", ErrInvalidTerm, v.Name)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: %q declares term %q twice", ErrInvalidTerm, v.Name, t.Name)
		}
		seen[t.Name] = struct{}{}
		if err := t.Shape.Validate(); err != nil {
			return fmt.Errorf("variable %q term %q: %w", v.Name, t.Name, err)
		}
	}

	return nil
}

// Term returns the named term.
func (v Variable) Term(name string) (Term, bool) {
	for _, t := range v.Terms {
		if t.Name == name {
			return t, true
		}
	}

	return Term{}, false
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
