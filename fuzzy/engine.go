// SPDX-License-Identifier: MIT

package fuzzy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlogic/facts"
)

// Engine runs Mamdani inference for a fixed registry and rule base.
// It is immutable after NewEngine and safe for concurrent Infer calls.
type Engine struct {
	reg         *Registry
	rules       []Rule
	consequents []string         // first-targeted order
	targets     map[string][]int // consequent -> rule indices, declaration order
	samples     map[string][]float64
	fallback    map[string]float64
}

// NewEngine validates rules against reg and prepares per-consequent sampling.
//
// Validation (first failure wins):
//   - reg must be non-nil (ErrNilRegistry);
//   - options must be valid (ErrOptionViolation);
//   - each rule needs a non-nil, non-empty antecedent (ErrInvalidRule);
//   - leaves must name antecedent variables and their terms, the consequent
//     must name a consequent variable and its term (ErrUnknownVariable,
//     ErrUnknownTerm, ErrInvalidRule on role mismatch);
//   - rule ids must be unique; empty ids become "rule<N>";
//   - fallbacks must name registered consequents.
func NewEngine(reg *Registry, rules []Rule, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	e := &Engine{
		reg:      reg,
		rules:    make([]Rule, len(rules)),
		targets:  make(map[string][]int),
		samples:  make(map[string][]float64),
		fallback: o.Fallback,
	}
	ids := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		if r.ID == "" {
			r.ID = fmt.Sprintf("rule%d", i+1)
		}
		if _, dup := ids[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, r.ID)
		}
		ids[r.ID] = struct{}{}
		if err := e.checkRule(r); err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		e.rules[i] = r

		name := r.Then.Variable
		if _, seen := e.targets[name]; !seen {
			e.consequents = append(e.consequents, name)
			v, _ := reg.Variable(name)
			e.samples[name] = v.Universe.Samples()
		}
		e.targets[name] = append(e.targets[name], i)
	}
	for name := range e.fallback {
		v, err := reg.Variable(name)
		if err != nil {
			return nil, fmt.Errorf("%w: fallback: %w", ErrOptionViolation, err)
		}
		if v.Role != Consequent {
			return nil, fmt.Errorf("%w: fallback for antecedent %q", ErrOptionViolation, name)
		}
	}

	return e, nil
}

func (e *Engine) checkRule(r Rule) error {
	if r.If == nil {
		return fmt.Errorf("%w: nil antecedent", ErrInvalidRule)
	}
	if err := r.If.validate(); err != nil {
		return err
	}
	for _, ref := range r.If.Leaves(nil) {
		v, _, err := e.reg.term(ref)
		if err != nil {
			return err
		}
		if v.Role != Antecedent {
			return fmt.Errorf("%w: %q used as antecedent but is a %s", ErrInvalidRule, ref.Variable, v.Role)
		}
	}
	v, _, err := e.reg.term(r.Then)
	if err != nil {
		return err
	}
	if v.Role != Consequent {
		return fmt.Errorf("%w: %q used as consequent but is a %s", ErrInvalidRule, r.Then.Variable, v.Role)
	}

	return nil
}

// Consequents returns the output variables in first-targeted order.
func (e *Engine) Consequents() []string {
	return append([]string(nil), e.consequents...)
}

// Inputs returns the antecedent variables read by any rule, sorted.
func (e *Engine) Inputs() []string {
	seen := make(map[string]struct{})
	for _, r := range e.rules {
		for _, ref := range r.If.Leaves(nil) {
			seen[ref.Variable] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Rules returns the validated rules, ids filled in.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Registry returns the registry the engine was built on.
func (e *Engine) Registry() *Registry { return e.reg }

// Result is the outcome of one Infer call.
type Result struct {
	// Outputs holds the crisp value of every consequent that succeeded,
	// including those filled by a configured fallback.
	Outputs map[string]float64

	// Defaulted marks outputs produced by a fallback rather than a centroid.
	Defaulted map[string]bool

	// Failed holds the *VariableError of every consequent without an output.
	Failed map[string]error

	// Degrees holds the fuzzified value of every leaf that was evaluated.
	Degrees map[Ref]float64

	// Strengths holds the firing strength of every rule whose consequent had
	// all of its inputs.
	Strengths map[string]float64

	order []string
}

// Err joins the per-variable failures in evaluation order, nil if none.
func (r *Result) Err() error {
	var errs []error
	for _, name := range r.order {
		if err, ok := r.Failed[name]; ok {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Primary returns the consequent with the highest output. Ties go to the
// variable evaluated first. ok is false when there are no outputs.
func (r *Result) Primary() (name string, value float64, ok bool) {
	for _, n := range r.order {
		v, has := r.Outputs[n]
		if !has {
			continue
		}
		if !ok || v > value {
			name, value, ok = n, v, true
		}
	}

	return name, value, ok
}

// Infer runs the full pipeline for every consequent variable.
//
// The returned *Result is never nil when inputs is non-nil. The error is
// Result.Err(): an errors.Join of *VariableError values wrapping
// ErrInputMissing or ErrUnderdetermined. One variable's failure does not
// abort the others.
func (e *Engine) Infer(inputs facts.NumericReader) (*Result, error) {
	if inputs == nil {
		return nil, ErrNilInputs
	}
	res := &Result{
		Outputs:   make(map[string]float64, len(e.consequents)),
		Defaulted: make(map[string]bool),
		Failed:    make(map[string]error),
		Degrees:   make(map[Ref]float64),
		Strengths: make(map[string]float64, len(e.rules)),
		order:     e.Consequents(),
	}
	for _, name := range e.consequents {
		out, err := e.inferOne(name, inputs, res)
		switch {
		case err == nil:
			res.Outputs[name] = out
		case errors.Is(err, ErrUnderdetermined):
			if fb, ok := e.fallback[name]; ok {
				res.Outputs[name] = fb
				res.Defaulted[name] = true
				continue
			}
			res.Failed[name] = &VariableError{Variable: name, Err: err}
		default:
			res.Failed[name] = &VariableError{Variable: name, Err: err}
		}
	}

	return res, res.Err()
}

// inferOne fuzzifies, fires, clips, aggregates and defuzzifies one consequent.
func (e *Engine) inferOne(name string, inputs facts.NumericReader, res *Result) (float64, error) {
	idx := e.targets[name]

	// 1. fuzzification of every leaf used by this consequent's rules
	local := make(map[Ref]float64)
	for _, i := range idx {
		for _, ref := range e.rules[i].If.Leaves(nil) {
			if _, done := local[ref]; done {
				continue
			}
			x, err := inputs.GetNumeric(ref.Variable)
			if err != nil {
				if errors.Is(err, ErrInputMissing) {
					return 0, err
				}
				return 0, fmt.Errorf("%w: %q: %w", ErrInputMissing, ref.Variable, err)
			}
			_, tri, _ := e.reg.term(ref)
			local[ref] = tri.Eval(x)
		}
	}
	for ref, mu := range local {
		res.Degrees[ref] = mu
	}
	lookup := func(ref Ref) float64 { return local[ref] }

	// 2-4. strength, clipping and max-aggregation
	ys := e.samples[name]
	agg := make([]float64, len(ys))
	for _, i := range idx {
		r := e.rules[i]
		s := r.If.eval(lookup)
		res.Strengths[r.ID] = s
		if s <= 0 {
			continue
		}
		_, shape, _ := e.reg.term(r.Then)
		clipInto(agg, ys, shape, s)
	}

	// 5. centroid
	return Centroid(ys, agg)
}
