// SPDX-License-Identifier: MIT

package fuzzy

import "fmt"

// Registry holds the linguistic variables of one knowledge base.
//
// Variables are added during setup and never mutated afterwards; a populated
// Registry is safe for concurrent readers.
type Registry struct {
	vars  map[string]Variable
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]Variable)}
}

// Add validates v and registers it under v.Name.
func (r *Registry) Add(v Variable) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if _, dup := r.vars[v.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, v.Name)
	}
	v.Terms = append([]Term(nil), v.Terms...)
	r.vars[v.Name] = v
	r.order = append(r.order, v.Name)

	return nil
}

// MustAdd is like Add but panics on error. Intended for static tables.
func (r *Registry) MustAdd(v Variable) {
	if err := r.Add(v); err != nil {
		panic(err)
	}
}

// Variable returns a copy of the named variable.
func (r *Registry) Variable(name string) (Variable, error) {
	v, ok := r.vars[name]
	if !ok {
		return Variable{}, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	v.Terms = append([]Term(nil), v.Terms...)

	return v, nil
}

// Names returns variable names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered variables.
func (r *Registry) Len() int { return len(r.order) }

// term resolves (variable, term) without copying.
func (r *Registry) term(ref Ref) (Variable, Triangle, error) {
	v, ok := r.vars[ref.Variable]
	if !ok {
		return Variable{}, Triangle{}, fmt.Errorf("%w: %q", ErrUnknownVariable, ref.Variable)
	}
	for _, t := range v.Terms {
		if t.Name == ref.Term {
			return v, t.Shape, nil
		}
	}

	return Variable{}, Triangle{}, fmt.Errorf("%w: %q has no term %q", ErrUnknownTerm, ref.Variable, ref.Term)
}

// Membership evaluates term of variable at crisp x.
//
// x outside the variable's universe is accepted; the triangle shape decides
// the degree. Range checks belong to the input/explanation layer.
func (r *Registry) Membership(variable, term string, x float64) (float64, error) {
	_, tri, err := r.term(Ref{Variable: variable, Term: term})
	if err != nil {
		return 0, err
	}

	return tri.Eval(x), nil
}

// Degree is the membership of a crisp value in one term.
type Degree struct {
	Term  string
	Value float64
}

// Fuzzify returns the degree of x in every term of variable, in term order.
func (r *Registry) Fuzzify(variable string, x float64) ([]Degree, error) {
	v, ok := r.vars[variable]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, variable)
	}
	out := make([]Degree, len(v.Terms))
	for i, t := range v.Terms {
		out[i] = Degree{Term: t.Name, Value: t.Shape.Eval(x)}
	}

	return out, nil
}
