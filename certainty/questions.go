// SPDX-License-Identifier: MIT

package certainty

import (
	"fmt"
	"strings"
)

// ValidateQuestions checks a questionnaire against a rule set.
//
// Every question needs a non-empty unique ID and prompt, and every antecedent
// key of rs must be collected by some question; otherwise the rule could
// never fire from interactive input. Questions about keys no rule uses are
// allowed.
func ValidateQuestions(qs []Question, rs *RuleSet) error {
	if rs == nil {
		return ErrNilRuleSet
	}
	asked := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if q.ID == "" || q.Prompt == "" {
			return fmt.Errorf("%w: question #%d needs id and prompt", ErrInvalidQuestion, i)
		}
		if _, dup := asked[q.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidQuestion, q.ID)
		}
		asked[q.ID] = struct{}{}
	}
	for _, k := range rs.Keys() {
		if _, ok := asked[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnaskedFact, k)
		}
	}

	return nil
}

// ParseAnswer interprets a yes/no reply. ok is false for anything else,
// in which case the caller should ask again.
func ParseAnswer(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}

	return false, false
}
