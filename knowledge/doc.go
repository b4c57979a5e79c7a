// SPDX-License-Identifier: MIT

// Package knowledge loads expert-system knowledge bases from YAML.
//
// 🚀 What is a knowledge base?
//
//	A YAML document whose "kind" selects the reasoning engine it configures:
//
//	    certainty  IF-THEN rules with certainty factors, the questionnaire
//	               that collects their facts, and maintenance advice.
//	    fuzzy      linguistic variables, Mamdani rules, optional per-output
//	               fallbacks and named demonstration cases.
//	    profiles   disease profiles plus an optional link to a fuzzy base
//	               that scores urgency.
//
// ✨ Key features:
//   - Strict decoding: unknown fields are errors, so typos surface at load.
//   - Every base is validated through the engine constructors (RuleSet,
//     Engine, Matcher); a loaded base is ready to serve concurrent sessions.
//   - Built-in bases (car, medical, fever, diseases) are embedded in the
//     binary; Open loads any directory instead.
//   - Discover globs with ** patterns; Validate reports per-file results;
//     Watch re-validates a directory whenever its YAML files change.
//
// ⚙️ Usage:
//
//	lib, err := knowledge.Default()
//	car, err := lib.Certainty("car")
//	ds, err := certainty.Evaluate(store, car.Rules)
//
//	lib, err = knowledge.Open(os.DirFS("./kb"), knowledge.DefaultPattern)
package knowledge
