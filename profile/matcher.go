// SPDX-License-Identifier: MIT

package profile

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvlogic/fuzzy"
)

// Option configures a Matcher.
type Option func(*Options)

// Options holds the urgency policy of a Matcher.
type Options struct {
	// Urgency, when set, maps crisp measurements to an urgency score.
	Urgency *fuzzy.Engine

	// Output names the consequent variable of Urgency read as the score.
	Output string

	// Neutral is the score used when Urgency cannot produce one.
	Neutral    float64
	HasNeutral bool

	err error
}

// DefaultOptions returns Options without a controller or neutral score.
func DefaultOptions() Options {
	return Options{}
}

// WithUrgency scores urgency with eng, reading consequent output.
func WithUrgency(eng *fuzzy.Engine, output string) Option {
	return func(o *Options) {
		if eng == nil || output == "" {
			o.err = fmt.Errorf("%w: urgency needs an engine and an output", ErrOptionViolation)

			return
		}
		o.Urgency, o.Output = eng, output
	}
}

// WithNeutralUrgency sets the score reported when no measurement is present
// or the controller is underdetermined.
func WithNeutralUrgency(score float64) Option {
	return func(o *Options) {
		if math.IsNaN(score) || score < 0 || score > 100 {
			o.err = fmt.Errorf("%w: neutral urgency %v outside [0, 100]", ErrOptionViolation, score)

			return
		}
		o.Neutral, o.HasNeutral = score, true
	}
}

// Matcher screens fact bases against a fixed profile list.
// It is read-only after NewMatcher and safe for concurrent use.
type Matcher struct {
	profiles []Profile
	opts     Options
}

// NewMatcher validates profiles and options.
func NewMatcher(profiles []Profile, opts ...Option) (*Matcher, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Urgency != nil {
		found := false
		for _, c := range o.Urgency.Consequents() {
			found = found || c == o.Output
		}
		if !found {
			return nil, fmt.Errorf("%w: urgency engine has no output %q", ErrOptionViolation, o.Output)
		}
	}

	seen := make(map[string]struct{}, len(profiles))
	ps := make([]Profile, len(profiles))
	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile #%d: %w", i, err)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProfile, p.Name)
		}
		seen[p.Name] = struct{}{}
		ps[i] = p
	}

	return &Matcher{profiles: ps, opts: o}, nil
}

// Profiles returns the screened profiles in declaration order.
func (m *Matcher) Profiles() []Profile {
	return append([]Profile(nil), m.profiles...)
}

// Match screens f against every profile.
//
// The result is empty (not nil) when no profile has all required symptoms.
// The urgency score is computed once per call and shared by every match.
func (m *Matcher) Match(f Facts) ([]Match, error) {
	if f == nil {
		return nil, ErrNilFacts
	}
	score, scored, defaulted, cause := m.urgency(f)

	out := make([]Match, 0, len(m.profiles))
	for _, p := range m.profiles {
		if !all(f, p.Required) {
			continue
		}
		var matched, risks []string
		for _, s := range p.Symptoms {
			if f.Get(s) {
				matched = append(matched, s)
			}
		}
		for _, r := range p.RiskFactors {
			if f.Get(r) {
				risks = append(risks, r)
			}
		}
		out = append(out, Match{
			Profile:      p.Name,
			Percent:      float64(len(matched)) / float64(len(p.Symptoms)) * 100,
			Matched:      matched,
			RiskFactors:  risks,
			Treatments:   append([]string(nil), p.Treatments...),
			Urgency:      p.Urgency,
			UrgencyScore: score,
			Scored:       scored,
			Defaulted:    defaulted,
			UrgencyErr:   cause,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })

	return out, nil
}

// urgency runs the controller, falling back to the neutral score if one is
// set. cause is the controller's failure for the output, kept even when the
// neutral score covers it.
func (m *Matcher) urgency(f Facts) (score float64, scored, defaulted bool, cause error) {
	if m.opts.Urgency != nil {
		res, err := m.opts.Urgency.Infer(f)
		if res != nil {
			if v, ok := res.Outputs[m.opts.Output]; ok {
				return v, true, res.Defaulted[m.opts.Output], nil
			}
			cause = res.Failed[m.opts.Output]
		}
		if cause == nil {
			cause = err
		}
	}
	if m.opts.HasNeutral {
		return m.opts.Neutral, true, true, cause
	}

	return 0, false, false, cause
}

func all(f Facts, keys []string) bool {
	for _, k := range keys {
		if !f.Get(k) {
			return false
		}
	}

	return true
}
