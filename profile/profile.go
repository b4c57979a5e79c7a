// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlogic/facts"
)

// Sentinel errors for profile loading and screening.
var (
	// ErrInvalidProfile indicates an unnamed profile, one without symptoms, or
	// a required symptom that is not among the profile's symptoms.
	ErrInvalidProfile = errors.New("profile: invalid profile")

	// ErrDuplicateProfile indicates two profiles with one name.
	ErrDuplicateProfile = errors.New("profile: duplicate profile")

	// ErrNilFacts is returned when Match receives nil facts.
	ErrNilFacts = errors.New("profile: facts are nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("profile: invalid option supplied")
)

// Profile describes one condition.
type Profile struct {
	Name        string   `yaml:"name"`
	Symptoms    []string `yaml:"symptoms"`
	Required    []string `yaml:"required"`
	RiskFactors []string `yaml:"risk_factors"`
	Treatments  []string `yaml:"treatments"`
	Urgency     string   `yaml:"urgency"`
}

// Validate checks the profile's internal consistency.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if len(p.Symptoms) == 0 {
		return fmt.Errorf("%w: %q has no symptoms", ErrInvalidProfile, p.Name)
	}
	known := make(map[string]struct{}, len(p.Symptoms))
	for _, s := range p.Symptoms {
		if s == "" {
			return fmt.Errorf("%w: %q lists an empty symptom", ErrInvalidProfile, p.Name)
		}
		known[s] = struct{}{}
	}
	for _, r := range p.Required {
		if _, ok := known[r]; !ok {
			return fmt.Errorf("%w: %q requires %q but does not list it", ErrInvalidProfile, p.Name, r)
		}
	}

	return nil
}

// Facts is the view of a fact base needed for screening: boolean symptoms
// plus the crisp measurements read by the urgency controller.
type Facts interface {
	facts.Reader
	facts.NumericReader
}

// Match is one screening result.
type Match struct {
	Profile string

	// Percent is matched/len(symptoms)·100.
	Percent float64

	// Matched lists present symptoms in profile order.
	Matched []string

	// RiskFactors lists the profile's risk factors that are asserted.
	RiskFactors []string

	Treatments []string
	Urgency    string

	// UrgencyScore is valid only when Scored is true.
	UrgencyScore float64
	Scored       bool

	// Defaulted marks a score taken from the neutral urgency option.
	Defaulted bool

	// UrgencyErr is why the controller gave no score: it wraps
	// fuzzy.ErrInputMissing when nothing was measured and
	// fuzzy.ErrUnderdetermined when the measurement fired no rule.
	UrgencyErr error
}

// Unmeasured reports whether the urgency controller failed only because its
// input was absent.
func (m Match) Unmeasured() bool { return errors.Is(m.UrgencyErr, facts.ErrInputMissing) }

// Reasons renders the matched symptoms as short sentences, e.g. "Has body ache".
func (m Match) Reasons() []string {
	out := make([]string, len(m.Matched))
	for i, s := range m.Matched {
		out[i] = "Has " + Humanize(s)
	}

	return out
}

// Humanize turns a fact key into words: "shortness_of_breath" → "shortness of breath".
func Humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
