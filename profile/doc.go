// SPDX-License-Identifier: MIT

// Package profile screens a fact base against disease profiles.
//
// 🚀 What is a profile?
//
//	A Profile lists the symptoms of one condition, the subset that must be
//	present for it to be considered at all, known risk factors, treatments
//	and a coarse urgency label. Screening is a plain overlap score:
//
//	    match% = |present symptoms| / |profile symptoms| · 100
//
// ✨ Key features:
//   - Profiles whose required symptoms are not all asserted are skipped.
//   - Results are ordered by match percentage, descending; equal scores keep
//     profile declaration order.
//   - An optional fuzzy controller turns a crisp measurement (for example a
//     body temperature) into a 0..100 urgency score.
//   - The neutral urgency used when no measurement is available is an
//     explicit option (WithNeutralUrgency); without it the score is simply
//     marked as unknown.
//
// ⚙️ Usage:
//
//	m, err := profile.NewMatcher(profiles,
//	    profile.WithUrgency(feverEngine, "severity"),
//	    profile.WithNeutralUrgency(50),
//	)
//	ms, err := m.Match(store) // store: *facts.Store
package profile
