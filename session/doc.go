// SPDX-License-Identifier: MIT

// Package session ties one consultation's facts to the reasoning engines.
//
// A Session owns its Fact Store and an identifier for log correlation. The
// rule sets, fuzzy engines and matchers it consults are shared read-only
// configuration, so many sessions (and RunBatch workers) can use them at once.
//
// ⚙️ Usage:
//
//	s := session.New(session.WithLogger(logging.New("session")))
//	_ = s.Facts.SetNumeric("temperature", 39.5)
//	res, err := s.Assess(medical.Engine)
package session
