// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/knowledge"
)

var errInvalidKB = errors.New("knowledge base validation failed")

func newKBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect and validate knowledge bases",
	}
	cmd.AddCommand(newKBListCmd(a), newKBValidateCmd(a), newKBWatchCmd(a))

	return cmd
}

// kbDirArg resolves the directory argument, falling back to the configured one.
func (a *app) kbDirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return a.cfg.Knowledge.Dir
}

func newKBListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the loaded knowledge bases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range []knowledge.Kind{knowledge.KindCertainty, knowledge.KindFuzzy, knowledge.KindProfiles} {
				for _, n := range lib.Names(k) {
					src, _ := lib.Source(k, n)
					fmt.Fprintf(out, "%-10s %-10s %s\n", k, n, src)
				}
			}

			return nil
		},
	}
}

func newKBValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate every knowledge base in a directory (default: embedded)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.kbDirArg(args)
			fsys := knowledge.Builtin()
			if dir != "" {
				fsys = os.DirFS(dir)
			}
			res, err := knowledge.Validate(fsys, a.cfg.Knowledge.Pattern)
			if err != nil {
				return err
			}
			if printResults(cmd.OutOrStdout(), res) > 0 {
				return errInvalidKB
			}

			return nil
		},
	}
}

func newKBWatchCmd(a *app) *cobra.Command {
	var debounce = knowledge.DefaultDebounce
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-validate a knowledge base directory on every change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.kbDirArg(args)
			if dir == "" {
				return errors.New("watch needs a directory (argument, --kb-dir or knowledge.dir)")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			a.log.Info("watching knowledge bases", "dir", dir, "debounce", debounce)

			return knowledge.Watch(ctx, dir, debounce,
				func(res []knowledge.FileResult) {
					if bad := printResults(cmd.OutOrStdout(), res); bad > 0 {
						a.log.Warn("knowledge bases invalid", "files", bad)
					}
				},
				func(err error) { a.log.Error("watch", "error", err) })
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "Quiet period before re-validating")

	return cmd
}

// printResults writes one line per file and returns the number of failures.
func printResults(out io.Writer, res []knowledge.FileResult) int {
	bad := 0
	for _, r := range res {
		if r.OK() {
			fmt.Fprintf(out, "ok    %-24s %s %s\n", r.Path, r.Kind, r.Name)

			continue
		}
		bad++
		fmt.Fprintf(out, "FAIL  %-24s %v\n", r.Path, r.Err)
	}
	fmt.Fprintf(out, "%d files, %d invalid\n", len(res), bad)

	return bad
}
