// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/session"
)

type carFlags struct {
	base        string
	yes         []string
	interactive bool
	make        string
	model       string
	year        int
	mileage     int
}

func newCarCmd(a *app) *cobra.Command {
	fl := &carFlags{}
	cmd := &cobra.Command{
		Use:   "car",
		Short: "Diagnose car faults from yes/no symptoms",
		Long: "Diagnose car faults with certainty factors. Symptoms come from --yes,\n" +
			"or from an interactive questionnaire when --yes is not given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCar(cmd, a, fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.base, "base", "car", "Certainty knowledge base name")
	f.StringSliceVar(&fl.yes, "yes", nil, "Symptoms that are present (fact ids)")
	f.BoolVarP(&fl.interactive, "interactive", "i", false, "Ask every question even when --yes is given")
	f.StringVar(&fl.make, "make", "", "Vehicle make")
	f.StringVar(&fl.model, "model", "", "Vehicle model")
	f.IntVar(&fl.year, "year", 0, "Vehicle year")
	f.IntVar(&fl.mileage, "mileage", -1, "Odometer reading in km (negative: unknown)")

	return cmd
}

func runCar(cmd *cobra.Command, a *app, fl *carFlags) error {
	lib, err := a.library()
	if err != nil {
		return err
	}
	kb, err := lib.Certainty(fl.base)
	if err != nil {
		return err
	}
	p, err := a.printer(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	st := facts.FromFlags(fl.yes...)
	if len(fl.yes) == 0 || fl.interactive {
		ask := newPrompter(cmd.InOrStdin(), out)
		for _, q := range kb.Questions {
			if st.Get(q.ID) {
				continue
			}
			v, err := ask.yesNo(q)
			if err != nil {
				return err
			}
			if err = st.Set(q.ID, v); err != nil {
				return err
			}
		}
	} else if err = checkFacts(fl.yes, kb.Rules.Keys()); err != nil {
		return err
	}

	if err = p.Heading("Car diagnosis"); err != nil {
		return err
	}
	if v := vehicle(fl); v != "" {
		fmt.Fprintf(out, "Vehicle: %s\n\n", v)
	}

	s := session.New(session.WithFacts(st), session.WithLogger(a.log))
	ds, err := s.Diagnose(kb.Rules)
	if err != nil {
		return err
	}
	if err = p.Diagnoses(ds, kb.Rules); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err = p.Heading("Maintenance advice"); err != nil {
		return err
	}
	// Unknown mileage (the default -1) skips the mileage band rather than
	// being read as 0 km and getting the low-mileage tips.
	if err = p.Advice(kb.Advice.For(fl.mileage, st)); err != nil {
		return err
	}
	if len(ds) == 0 {
		for _, tip := range kb.Advice.NoneFound {
			fmt.Fprintf(out, "  • %s\n", tip)
		}
	}

	return nil
}

func vehicle(fl *carFlags) string {
	var parts []string
	if fl.year > 0 {
		parts = append(parts, fmt.Sprint(fl.year))
	}
	for _, s := range []string{fl.make, fl.model} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	v := strings.Join(parts, " ")
	if fl.mileage >= 0 {
		if v != "" {
			v += ", "
		}
		v += fmt.Sprintf("%d km", fl.mileage)
	}

	return v
}

// checkFacts rejects fact ids that no rule mentions.
func checkFacts(given, known []string) error {
	idx := make(map[string]bool, len(known))
	for _, k := range known {
		idx[k] = true
	}
	for _, g := range given {
		if !idx[g] {
			return fmt.Errorf("unknown symptom %q (known: %s)", g, strings.Join(known, ", "))
		}
	}

	return nil
}
