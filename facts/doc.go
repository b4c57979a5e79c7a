// SPDX-License-Identifier: MIT

// Package facts holds the observations of one reasoning session.
//
// A Store carries two independent kinds of facts:
//
//   - boolean symptom flags, read by the certainty-factor engine.
//     A flag that was never set reads as false; absence and "asserted false"
//     are indistinguishable on purpose.
//   - numeric measurements, read by the fuzzy inference engine.
//     There is no default: reading a measurement that was never supplied
//     returns ErrInputMissing naming the key.
//
// ⚙️ Usage:
//
//	st := facts.New()
//	st.Set("engine_wont_start", true)
//	st.SetNumeric("temperature", 39.5)
//
//	st.Get("no_sound")                // false, never fails
//	t, err := st.GetNumeric("cough")  // err wraps ErrInputMissing
//
// A Store belongs to exactly one session and is not safe for concurrent
// mutation. Rule sets and fuzzy registries are the shared, read-only half of
// a session; the Store is the private half.
package facts
