// SPDX-License-Identifier: MIT

package certainty

import (
	"sort"

	"github.com/katalvlaran/lvlogic/facts"
)

// Combine folds a new certainty factor into an accumulated one:
//
//	combine(a, b) = a + b - a·b
//
// The result is not clamped; keeping factors inside [-1, 1] is a contract
// on rule authors, enforced by NewRuleSet.
func Combine(a, b float64) float64 {
	return a + b - a*b
}

// accumulator is the per-label state built while rules fire.
type accumulator struct {
	label  string
	cf     float64
	rules  []string
	action string
	cost   string
}

// Evaluate fires every rule of rs whose antecedents all hold in f, folds
// factors per conclusion label and returns the diagnoses ranked by
// descending confidence.
//
// Algorithm:
//  1. Walk rules in declaration order; a rule fires iff f.Get(k) is true for
//     every antecedent k.
//  2. On firing, create or fetch the label's accumulator, set
//     cf = Combine(cf, rule.CF) (or rule.CF for a new label), append the rule
//     id, and overwrite action/cost with the rule's (last-write-wins).
//  3. Emit one Diagnosis per accumulator and stable-sort by confidence, so
//     equal confidences keep accumulator creation order.
//
// No firing rule is a normal outcome and yields an empty, non-nil slice.
func Evaluate(f facts.Reader, rs *RuleSet, opts ...Option) ([]Diagnosis, error) {
	if rs == nil {
		return nil, ErrNilRuleSet
	}
	if f == nil {
		return nil, ErrNilFacts
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var order []*accumulator
	byLabel := make(map[string]*accumulator)

	for _, r := range rs.rules {
		if !fires(f, r) {
			continue
		}
		acc, ok := byLabel[r.Then]
		before := 0.0
		if !ok {
			acc = &accumulator{label: r.Then, cf: r.CF}
			byLabel[r.Then] = acc
			order = append(order, acc)
		} else {
			before = acc.cf
			acc.cf = Combine(acc.cf, r.CF)
		}
		acc.rules = append(acc.rules, r.ID)
		acc.action = r.Action
		acc.cost = r.Cost
		o.OnFire(r, before, acc.cf)
	}

	out := make([]Diagnosis, 0, len(order))
	for _, acc := range order {
		out = append(out, Diagnosis{
			Label:      acc.label,
			Confidence: acc.cf,
			Rules:      acc.rules,
			Action:     acc.action,
			Cost:       acc.cost,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})

	return out, nil
}

// fires reports whether every antecedent of r holds.
func fires(f facts.Reader, r Rule) bool {
	for _, k := range r.If {
		if !f.Get(k) {
			return false
		}
	}

	return true
}
