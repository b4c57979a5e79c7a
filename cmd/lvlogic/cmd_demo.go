// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/session"
)

func newDemoCmd(a *app) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the sample cases of a fuzzy base concurrently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			kb, err := lib.Fuzzy(base)
			if err != nil {
				return err
			}
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			cases := make([]session.Case, len(kb.Cases))
			for i, c := range kb.Cases {
				cases[i] = session.Case{Name: c.Name, Inputs: c.Inputs}
			}
			outs, err := session.RunBatch(cmd.Context(), kb.Engine, cases, a.cfg.Batch.Workers, a.log)
			if err != nil {
				return err
			}
			if err = p.Heading(kb.Description); err != nil {
				return err
			}

			return p.Batch(outs, kb.Engine.Consequents())
		},
	}
	cmd.Flags().StringVar(&base, "base", "medical", "Fuzzy knowledge base name")

	return cmd
}
