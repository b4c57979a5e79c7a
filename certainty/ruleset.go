// SPDX-License-Identifier: MIT

package certainty

import (
	"fmt"
	"math"
	"sort"
)

// RuleSet is a validated, immutable, ordered collection of rules.
// It is safe to share between goroutines.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

// NewRuleSet validates rules and freezes them in declaration order.
//
// Each rule must have a non-empty unique ID, at least one non-empty
// antecedent key, a non-empty Then label and a finite CF in [-1, 1].
// Repeated antecedent keys inside one rule collapse to one.
// The first violation aborts the whole load with an error wrapping
// ErrInvalidRule.
func NewRuleSet(rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i, err)
		}
		if _, dup := rs.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, r.ID)
		}
		r.If = dedupe(r.If)
		rs.index[r.ID] = len(rs.rules)
		rs.rules = append(rs.rules, r)
	}

	return rs, nil
}

// MustRuleSet is like NewRuleSet but panics on error.
// Intended for static tables compiled into a binary.
func MustRuleSet(rules []Rule) *RuleSet {
	rs, err := NewRuleSet(rules)
	if err != nil {
		panic(err)
	}

	return rs
}

func validateRule(r Rule) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidRule)
	case len(r.If) == 0:
		return fmt.Errorf("%w: rule %q has no antecedents", ErrInvalidRule, r.ID)
	case r.Then == "":
		return fmt.Errorf("%w: rule %q has no conclusion", ErrInvalidRule, r.ID)
	case math.IsNaN(r.CF) || r.CF < -1 || r.CF > 1:
		return fmt.Errorf("%w: rule %q CF %v outside [-1,1]", ErrInvalidRule, r.ID, r.CF)
	}
	for _, k := range r.If {
		if k == "" {
			return fmt.Errorf("%w: rule %q has an empty antecedent key", ErrInvalidRule, r.ID)
		}
	}

	return nil
}

// dedupe copies keys, dropping repeats while keeping first-seen order.
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	return out
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns a copy of the rules in declaration order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, r := range rs.rules {
		r.If = append([]string(nil), r.If...)
		out[i] = r
	}

	return out
}

// Rule looks a rule up by id.
func (rs *RuleSet) Rule(id string) (Rule, bool) {
	i, ok := rs.index[id]
	if !ok {
		return Rule{}, false
	}
	r := rs.rules[i]
	r.If = append([]string(nil), r.If...)

	return r, true
}

// Keys returns every antecedent fact key referenced by the set, sorted.
func (rs *RuleSet) Keys() []string {
	seen := make(map[string]struct{})
	for _, r := range rs.rules {
		for _, k := range r.If {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Labels returns the distinct conclusion labels in first-declared order.
func (rs *RuleSet) Labels() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rs.rules {
		if _, ok := seen[r.Then]; ok {
			continue
		}
		seen[r.Then] = struct{}{}
		out = append(out, r.Then)
	}

	return out
}

// Explain returns the rules that contributed to d, in firing order.
// Ids unknown to this set are skipped.
func (rs *RuleSet) Explain(d Diagnosis) []Rule {
	out := make([]Rule, 0, len(d.Rules))
	for _, id := range d.Rules {
		if r, ok := rs.Rule(id); ok {
			out = append(out, r)
		}
	}

	return out
}
