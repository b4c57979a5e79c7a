// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/knowledge"
	"github.com/katalvlaran/lvlogic/session"
)

type medicalFlags struct {
	base      string
	yes       []string
	feverTemp float64
}

func newMedicalCmd(a *app) *cobra.Command {
	fl := &medicalFlags{}
	cmd := &cobra.Command{
		Use:   "medical",
		Short: "Screen symptoms against disease profiles",
		Long: "Screen symptoms against disease profiles. Symptoms come from --yes and\n" +
			"--fever-temp, or from an interactive questionnaire when neither is given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMedical(cmd, a, fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.base, "base", "diseases", "Profiles knowledge base name")
	f.StringSliceVar(&fl.yes, "yes", nil, "Symptoms and risk factors that are present")
	f.Float64Var(&fl.feverTemp, "fever-temp", 0, "Measured body temperature in °C; asserts fever")

	return cmd
}

func runMedical(cmd *cobra.Command, a *app, fl *medicalFlags) error {
	lib, err := a.library()
	if err != nil {
		return err
	}
	kb, err := lib.Profiles(fl.base)
	if err != nil {
		return err
	}
	m, err := lib.Matcher(fl.base)
	if err != nil {
		return err
	}
	p, err := a.printer(cmd)
	if err != nil {
		return err
	}

	st := facts.FromFlags(fl.yes...)
	switch {
	case cmd.Flags().Changed("fever-temp"):
		if err = checkFever(lib, kb, fl.feverTemp); err != nil {
			return err
		}
		if err = st.SetNumeric("fever", fl.feverTemp); err != nil {
			return err
		}
		if err = st.Set("fever", true); err != nil {
			return err
		}
	case len(fl.yes) == 0:
		if err = askSymptoms(newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), kb.Questions, st); err != nil {
			return err
		}
	}

	s := session.New(session.WithFacts(st), session.WithLogger(a.log))
	ms, err := s.Screen(m)
	if err != nil {
		return err
	}
	if err = p.Heading("Symptom screening"); err != nil {
		return err
	}
	if err = p.Matches(ms); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "This is not a medical diagnosis. Consult a doctor.")

	return nil
}

// checkFever applies the bounds of the fever question and, when urgency is
// scored, the universe of the controller's fever input.
func checkFever(lib *knowledge.Library, kb *knowledge.Profiles, x float64) error {
	for _, q := range kb.Questions {
		if q.Numeric == "fever" && !q.InRange(x) {
			return fmt.Errorf("%w: fever=%v outside the %q question bounds", knowledge.ErrOutOfRange, x, q.ID)
		}
	}
	if u := kb.Urgency; u != nil {
		fz, err := lib.Fuzzy(u.Base)
		if err != nil {
			return err
		}
		if _, err = fz.Registry.Variable("fever"); err == nil {
			return fz.CheckInput("fever", x)
		}
	}

	return nil
}

func askSymptoms(ask *prompter, qs []knowledge.SymptomQuestion, st *facts.Store) error {
	for _, q := range qs {
		present, x, err := ask.symptom(q)
		if err != nil {
			return err
		}
		if err = st.Set(q.ID, present); err != nil {
			return err
		}
		if present && q.Numeric != "" {
			if err = st.SetNumeric(q.Numeric, x); err != nil {
				return err
			}
		}
	}

	return nil
}
