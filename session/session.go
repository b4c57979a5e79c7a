// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/fuzzy"
	"github.com/katalvlaran/lvlogic/profile"
)

// ErrNilEngine is returned when a consultation is given no engine.
var ErrNilEngine = errors.New("session: engine is nil")

// Session is one consultation.
type Session struct {
	ID     uuid.UUID
	Facts  *facts.Store
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger; the session id is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFacts starts the session from an existing store instead of an empty one.
func WithFacts(st *facts.Store) Option {
	return func(s *Session) {
		if st != nil {
			s.Facts = st
		}
	}
}

// WithID fixes the session id, e.g. to resume a logged consultation.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.ID = id }
}

// New returns a session with a fresh random id and an empty fact store.
func New(opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New(),
		Facts:  facts.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.ID.String()))

	return s
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Diagnose runs the certainty-factor engine over the session's flags.
// Each rule firing is logged at debug level.
func (s *Session) Diagnose(rs *certainty.RuleSet) ([]certainty.Diagnosis, error) {
	ds, err := certainty.Evaluate(s.Facts, rs, certainty.WithObserver(func(r certainty.Rule, before, after float64) {
		s.logger.Debug("rule fired",
			"rule", r.ID,
			"label", r.Then,
			"cf", r.CF,
			"before", before,
			"after", after)
	}))
	if err != nil {
		return nil, err
	}
	if len(ds) > 0 {
		s.logger.Info("diagnosis complete",
			"top", ds[0].Label,
			"confidence", ds[0].Confidence,
			"severity", certainty.Classify(ds[0].Confidence).String(),
			"labels", len(ds))
	} else {
		s.logger.Info("diagnosis complete", "labels", 0)
	}

	return ds, nil
}

// Assess runs fuzzy inference over the session's measurements.
//
// The result and error follow fuzzy.Engine.Infer: partial outputs are kept
// and each failed variable is logged at warn level.
func (s *Session) Assess(eng *fuzzy.Engine) (*fuzzy.Result, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	res, err := eng.Infer(s.Facts)
	if res == nil {
		return nil, err
	}
	for _, name := range eng.Consequents() {
		switch {
		case res.Defaulted[name]:
			s.logger.Debug("output defaulted", "variable", name, "value", res.Outputs[name])
		case res.Failed[name] != nil:
			s.logger.Warn("output unavailable", "variable", name, "error", res.Failed[name])
		default:
			s.logger.Debug("output", "variable", name, "value", res.Outputs[name])
		}
	}

	return res, err
}

// Screen matches the session's facts against disease profiles.
func (s *Session) Screen(m *profile.Matcher) ([]profile.Match, error) {
	if m == nil {
		return nil, ErrNilEngine
	}
	ms, err := m.Match(s.Facts)
	if err != nil {
		return nil, err
	}
	if len(ms) > 0 && ms[0].UrgencyErr != nil && !ms[0].Unmeasured() {
		s.logger.Warn("urgency unavailable, neutral score used", "error", ms[0].UrgencyErr)
	}
	s.logger.Info("screening complete", "matches", len(ms))

	return ms, nil
}
