// SPDX-License-Identifier: MIT

// Package fuzzy implements Mamdani fuzzy inference over triangular
// membership functions, with centroid defuzzification.
//
// 🚀 Pipeline
//
//	For every consequent variable, independently:
//	  1. Fuzzification   : μ(var, term, x) for each antecedent leaf used by the
//	                       rules that target this variable.
//	  2. Rule strength   : evaluate the antecedent tree bottom-up:
//	                       AND = min(children), OR = max(children).
//	  3. Clipping        : min(strength, μ_term(y)) at every sample y of the
//	                       consequent universe.
//	  4. Aggregation     : pointwise max over all clipped shapes.
//	  5. Centroid        : Σ y·μ(y) / Σ μ(y).
//
// ✨ Key features:
//   - Registry of linguistic variables with validated universes and terms.
//   - Expression trees built with Is, And and Or; rules are validated against
//     the registry once, in NewEngine.
//   - A failure in one consequent (ErrInputMissing, ErrUnderdetermined) never
//     hides the outputs of the others: Infer returns partial results plus an
//     errors.Join of *VariableError values.
//   - No hidden defaults: an all-zero aggregate is ErrUnderdetermined unless a
//     fallback was configured explicitly with WithFallback.
//   - Registry and Engine are read-only after construction and may be shared
//     by concurrent sessions.
//
// ⚙️ Usage:
//
//	reg := fuzzy.NewRegistry()
//	reg.MustAdd(fuzzy.Variable{
//	    Name: "temperature", Role: fuzzy.Antecedent,
//	    Universe: fuzzy.Universe{Min: 35, Max: 42, Step: 0.1},
//	    Terms: []fuzzy.Term{{Name: "high", Shape: fuzzy.Triangle{A: 37, B: 39, C: 42}}},
//	})
//	reg.MustAdd(fuzzy.Variable{
//	    Name: "flu_risk", Role: fuzzy.Consequent,
//	    Universe: fuzzy.Universe{Min: 0, Max: 100, Step: 1},
//	    Terms: []fuzzy.Term{{Name: "high", Shape: fuzzy.Triangle{A: 50, B: 75, C: 100}}},
//	})
//	eng, err := fuzzy.NewEngine(reg, []fuzzy.Rule{
//	    {If: fuzzy.Is("temperature", "high"), Then: fuzzy.Ref{Variable: "flu_risk", Term: "high"}},
//	}, fuzzy.WithFallback("flu_risk", 50))
//	res, err := eng.Infer(inputs) // inputs: facts.NumericReader
//
// Numeric notes:
//
//	The consequent universe Step is the sampling resolution; it directly
//	controls centroid precision. Samples are computed as Min + i·Step, never
//	by repeated addition, so results are reproducible bit for bit.
//
// Complexity:
//
//   - Infer: O(R·(L + N)) for R rules, L leaves per rule and N samples per
//     consequent universe.
package fuzzy
