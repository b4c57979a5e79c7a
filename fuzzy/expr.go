// SPDX-License-Identifier: MIT

package fuzzy

import (
	"fmt"
	"math"
	"strings"
)

// Ref names one term of one variable: "variable IS term".
type Ref struct {
	Variable string `yaml:"var"`
	Term     string `yaml:"is"`
}

// String renders "variable IS term".
func (r Ref) String() string { return r.Variable + " IS " + r.Term }

// Expr is an antecedent expression tree whose leaves are Refs.
// Build one with Is, And and Or.
type Expr interface {
	// Leaves appends every leaf Ref, left to right, to dst.
	Leaves(dst []Ref) []Ref

	String() string

	eval(mu func(Ref) float64) float64
	validate() error
}

// Is returns the leaf "variable IS term".
func Is(variable, term string) Expr { return leaf(Ref{Variable: variable, Term: term}) }

// And returns the conjunction of xs, evaluated as min.
func And(xs ...Expr) Expr { return &node{op: opAnd, kids: xs} }

// Or returns the disjunction of xs, evaluated as max.
func Or(xs ...Expr) Expr { return &node{op: opOr, kids: xs} }

type leaf Ref

func (l leaf) Leaves(dst []Ref) []Ref { return append(dst, Ref(l)) }
func (l leaf) String() string { return Ref(l).String() }
func (l leaf) eval(mu func(Ref) float64) float64 { return mu(Ref(l)) }

func (l leaf) validate() error {
	if l.Variable == "" || l.Term == "" {
		return fmt.Errorf("%w: leaf needs variable and term", ErrInvalidRule)
	}

	return nil
}

type op int

const (
	opAnd op = iota
	opOr
)

type node struct {
	op   op
	kids []Expr
}

func (n *node) Leaves(dst []Ref) []Ref {
	for _, k := range n.kids {
		dst = k.Leaves(dst)
	}

	return dst
}

func (n *node) String() string {
	sep := " AND "
	if n.op == opOr {
		sep = " OR "
	}
	parts := make([]string, len(n.kids))
	for i, k := range n.kids {
		s := k.String()
		if kn, ok := k.(*node); ok && kn.op != n.op && len(kn.kids) > 1 {
			s = "(" + s + ")"
		}
		parts[i] = s
	}

	return strings.Join(parts, sep)
}

func (n *node) eval(mu func(Ref) float64) float64 {
	var acc float64
	if n.op == opAnd {
		acc = math.Inf(1)
		for _, k := range n.kids {
			acc = math.Min(acc, k.eval(mu))
		}

		return acc
	}
	acc = math.Inf(-1)
	for _, k := range n.kids {
		acc = math.Max(acc, k.eval(mu))
	}

	return acc
}

func (n *node) validate() error {
	if len(n.kids) == 0 {
		return fmt.Errorf("%w: empty AND/OR", ErrInvalidRule)
	}
	for _, k := range n.kids {
		if k == nil {
			return fmt.Errorf("%w: nil operand", ErrInvalidRule)
		}
		if err := k.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Rule maps an antecedent expression onto one consequent term.
type Rule struct {
	// ID names the rule in explanations. NewEngine assigns "rule<N>"
	// (1-based position) when empty.
	ID   string
	If   Expr
	Then Ref
}

// String renders "IF <expr> THEN <ref>".
func (r Rule) String() string {
	cond := "<nil>"
	if r.If != nil {
		cond = r.If.String()
	}

	return "IF " + cond + " THEN " + r.Then.String()
}
