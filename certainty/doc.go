// SPDX-License-Identifier: MIT

// Package certainty implements a forward rule engine with MYCIN-style
// certainty factors (CF).
//
// 🚀 What is a certainty factor?
//
//	A CF in [-1, 1] states how strongly a rule's conclusion follows from its
//	antecedents. When several rules conclude the same label, their factors
//	are folded with the combination law
//
//	    combine(a, b) = a + b - a·b
//
//	which is commutative, and associative for factors of the same sign.
//
// ✨ Key features:
//   - Rules are pure conjunctions of boolean facts; negation is expressed as a
//     separate fact key.
//   - Rule sets are validated once at load time (ErrInvalidRule) and are
//     immutable afterwards, so one RuleSet can serve many concurrent sessions.
//   - Evaluation walks rules in declaration order, so accumulation and tie
//     breaking are reproducible.
//   - Severity banding (Classify) is a separate pure function of the top
//     confidence, independent of the engine's result contract.
//
// ⚙️ Usage:
//
//	rs, err := certainty.NewRuleSet([]certainty.Rule{
//	    {ID: "R1", If: []string{"engine_wont_start", "no_sound"}, Then: "Starter motor problem", CF: 0.8},
//	    {ID: "R2", If: []string{"engine_wont_start", "clicking_sound"}, Then: "Weak battery", CF: 0.9},
//	})
//	if err != nil {
//	    // errors.Is(err, certainty.ErrInvalidRule)
//	}
//	ds, _ := certainty.Evaluate(facts.FromFlags("engine_wont_start", "clicking_sound"), rs)
//	sev := certainty.Classify(ds[0].Confidence)
//
// Action/cost quirk:
//
//	When several rules fire for the same label, the Diagnosis keeps the
//	action and cost of the LAST rule that fired (last-write-wins). This
//	mirrors the behaviour the rule bases were authored against.
//
// Complexity:
//
//   - Evaluate: O(R·A + L·log L) for R rules, A antecedents per rule and L
//     distinct labels.
package certainty
