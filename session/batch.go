// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlogic/fuzzy"
)

// Case is one named set of crisp inputs and asserted flags.
type Case struct {
	Name   string
	Inputs map[string]float64
	Flags  []string
}

// Outcome is the result of one Case. Err holds the case's own failure
// (bad input or an inference error); it never aborts the batch.
type Outcome struct {
	Case      string
	SessionID uuid.UUID
	Result    *fuzzy.Result
	Err       error
}

// RunBatch assesses every case in its own Session, at most workers at a time
// (0 means unlimited). Outcomes keep the order of cases. Only cancellation of
// ctx makes RunBatch itself fail.
func RunBatch(ctx context.Context, eng *fuzzy.Engine, cases []Case, workers int, logger *slog.Logger) ([]Outcome, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]Outcome, len(cases))

	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			s := New(WithLogger(logger.With(slog.String("case", c.Name))))
			out[i] = Outcome{Case: c.Name, SessionID: s.ID}
			if err := load(s, c); err != nil {
				out[i].Err = err

				return nil
			}
			out[i].Result, out[i].Err = s.Assess(eng)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func load(s *Session, c Case) error {
	for _, f := range c.Flags {
		if err := s.Facts.Set(f, true); err != nil {
			return err
		}
	}
	keys := make([]string, 0, len(c.Inputs))
	for k := range c.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Facts.SetNumeric(k, c.Inputs[k]); err != nil {
			return err
		}
	}

	return nil
}
