// SPDX-License-Identifier: MIT

// Package lvlogic is a small expert-reasoning core: certainty-factor rules
// for yes/no evidence and Mamdani fuzzy inference for graded measurements,
// driven by YAML knowledge bases.
//
// 🚀 What is inside?
//
//	facts/      per-session store of boolean flags and finite numeric inputs
//	certainty/  IF-THEN rules with certainty factors, combined as a+b-a·b
//	fuzzy/      variables with triangular terms, AND=min / OR=max rules,
//	             max aggregation and discrete centroid defuzzification
//	profile/    symptom-overlap screening with a fuzzy urgency score
//	knowledge/  embedded YAML bases, discovery, validation and hot re-validation
//	session/    one caller-owned session per consultation, concurrent batches
//	report/     ASCII or Markdown tables with explanations
//
// ✨ Guarantees
//
//   - Rules fire in declaration order; results are reproducible.
//   - One output failing never hides another output.
//   - A fallback value is used only when configured, and is reported as such.
//
// Quick example:
//
//	lib, _ := knowledge.Default()
//	med, _ := lib.Fuzzy("medical")
//	st := facts.New()
//	_ = st.SetNumeric("temperature", 39.5)
//	_ = st.SetNumeric("cough", 8)
//	_ = st.SetNumeric("fatigue", 9)
//	res, err := med.Engine.Infer(st)
//
// The lvlogic command (cmd/lvlogic) wraps all of it:
//
//	go install github.com/katalvlaran/lvlogic/cmd/lvlogic@latest
package lvlogic
