// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/report"
	"github.com/katalvlaran/lvlogic/session"
)

type fuzzyFlags struct {
	base    string
	set     map[string]string
	temp    float64
	cough   float64
	fatigue float64
	explain bool
}

func newFuzzyCmd(a *app) *cobra.Command {
	fl := &fuzzyFlags{}
	cmd := &cobra.Command{
		Use:   "fuzzy",
		Short: "Score medical risk with Mamdani fuzzy inference",
		Example: "  lvlogic fuzzy --temperature 39.5 --cough 9 --fatigue 9 --explain\n" +
			"  lvlogic fuzzy --base fever --set fever=38.2",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFuzzy(cmd, a, fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.base, "base", "medical", "Fuzzy knowledge base name")
	f.StringToStringVar(&fl.set, "set", nil, "Crisp inputs as name=value pairs")
	f.Float64Var(&fl.temp, "temperature", 0, "Body temperature in °C")
	f.Float64Var(&fl.cough, "cough", 0, "Cough severity 0-10")
	f.Float64Var(&fl.fatigue, "fatigue", 0, "Fatigue level 0-10")
	f.BoolVar(&fl.explain, "explain", false, "Show fuzzification degrees and rule strengths")

	return cmd
}

// inputs merges --set with the named convenience flags that were given.
func (fl *fuzzyFlags) inputs(cmd *cobra.Command) (map[string]float64, error) {
	in := make(map[string]float64, len(fl.set)+3)
	for k, s := range fl.set {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", k, err)
		}
		in[k] = v
	}
	named := map[string]float64{"temperature": fl.temp, "cough": fl.cough, "fatigue": fl.fatigue}
	for k, v := range named {
		if cmd.Flags().Changed(k) {
			in[k] = v
		}
	}

	return in, nil
}

func runFuzzy(cmd *cobra.Command, a *app, fl *fuzzyFlags) error {
	lib, err := a.library()
	if err != nil {
		return err
	}
	kb, err := lib.Fuzzy(fl.base)
	if err != nil {
		return err
	}
	p, err := a.printer(cmd)
	if err != nil {
		return err
	}

	in, err := fl.inputs(cmd)
	if err != nil {
		return err
	}
	if len(in) == 0 {
		return fmt.Errorf("no inputs given; %s needs %v", kb.Name, kb.Engine.Inputs())
	}
	names := make([]string, 0, len(in))
	for k := range in {
		names = append(names, k)
	}
	sort.Strings(names)

	s := session.New(session.WithLogger(a.log))
	for _, k := range names {
		if err = kb.CheckInput(k, in[k]); err != nil {
			return err
		}
		if err = s.Facts.SetNumeric(k, in[k]); err != nil {
			return err
		}
	}

	res, ierr := s.Assess(kb.Engine)
	if res == nil {
		return ierr
	}
	if err = p.Heading(kb.Description); err != nil {
		return err
	}
	if fl.explain {
		if err = p.Degrees(kb.Registry, kb.Engine.Inputs(), in); err != nil {
			return err
		}
		if err = p.Strengths(kb.Engine.Rules(), res); err != nil {
			return err
		}
	}
	if err = p.Outputs(res, kb.Engine.Consequents(), kb); err != nil {
		return err
	}
	if name, v, ok := res.Primary(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Most likely: %s (%.1f, %s)\n", kb.Label(name), v, report.RiskBand(v))
	}
	// Per-output failures are already in the table; only a total failure is
	// reported as an error.
	if len(res.Outputs) == 0 && ierr != nil {
		return errors.Join(errors.New("no output could be computed"), ierr)
	}

	return nil
}
