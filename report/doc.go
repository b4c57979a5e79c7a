// SPDX-License-Identifier: MIT

// Package report renders reasoning results as terminal or Markdown tables.
//
// ✨ Key features:
//   - One Printer per output stream; every method renders one section.
//   - ASCII mode draws box tables; Markdown mode emits GitHub tables.
//   - Fuzzification degrees at or below 0.01 are hidden and the rest are
//     rounded to three decimals, keeping explanations short.
//   - RiskBand maps a 0..100 output onto a linguistic band (80/60/40/20).
package report
