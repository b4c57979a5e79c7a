// SPDX-License-Identifier: MIT

package certainty

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rule-set loading and evaluation.
var (
	// ErrInvalidRule indicates a knowledge-base authoring bug detected at load
	// time: empty antecedent set, CF outside [-1, 1], empty or duplicate id,
	// empty conclusion label.
	ErrInvalidRule = errors.New("certainty: invalid rule")

	// ErrNilRuleSet is returned when Evaluate receives a nil *RuleSet.
	ErrNilRuleSet = errors.New("certainty: rule set is nil")

	// ErrNilFacts is returned when Evaluate receives a nil fact reader.
	ErrNilFacts = errors.New("certainty: facts are nil")

	// ErrInvalidQuestion indicates a malformed or duplicated questionnaire entry.
	ErrInvalidQuestion = errors.New("certainty: invalid question")

	// ErrUnaskedFact indicates a rule antecedent that no question collects.
	ErrUnaskedFact = errors.New("certainty: antecedent not covered by questionnaire")
)

// Rule is one IF-THEN record of the knowledge base.
//
// If lists fact keys that must all hold; Then is the conclusion label.
// Action and Cost are carried to the Diagnosis for reporting only.
type Rule struct {
	ID     string   `yaml:"id"`
	If     []string `yaml:"if"`
	Then   string   `yaml:"then"`
	CF     float64  `yaml:"cf"`
	Action string   `yaml:"action"`
	Cost   string   `yaml:"cost_estimate"`
}

// String renders the rule as "IF a AND b THEN label (CF=0.8)".
func (r Rule) String() string {
	return fmt.Sprintf("IF %s THEN %s (CF=%g)", strings.Join(r.If, " AND "), r.Then, r.CF)
}

// Diagnosis is one ranked conclusion produced by Evaluate.
//
// Rules lists the ids of the contributing rules in firing order.
// Action and Cost belong to the last rule that fired for Label.
type Diagnosis struct {
	Label      string
	Confidence float64
	Rules      []string
	Action     string
	Cost       string
}

// Question is a questionnaire record collecting one boolean fact.
type Question struct {
	ID     string `yaml:"id"`
	Prompt string `yaml:"question"`
	Hint   string `yaml:"hint"`
}

// Option configures Evaluate.
type Option func(*Options)

// Options holds evaluation hooks.
type Options struct {
	// OnFire is called each time a rule fires, with the label's combined CF
	// before and after folding that rule in. before is 0 for a new label.
	OnFire func(r Rule, before, after float64)
}

// DefaultOptions returns Options with a no-op OnFire hook.
func DefaultOptions() Options {
	return Options{OnFire: func(Rule, float64, float64) {}}
}

// WithObserver registers a hook invoked on every rule firing.
func WithObserver(fn func(r Rule, before, after float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFire = fn
		}
	}
}
