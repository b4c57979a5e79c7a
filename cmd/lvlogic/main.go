// SPDX-License-Identifier: MIT

// lvlogic is the command-line front end of the reasoning core.
//
// Usage:
//
//	lvlogic car     [--yes=<fact>,...] [--make=..] [--model=..] [--year=..] [--mileage=..]
//	lvlogic fuzzy   --temperature=<°C> --cough=<0-10> --fatigue=<0-10> [--explain]
//	lvlogic medical [--yes=<symptom>,...] [--fever-temp=<°C>]
//	lvlogic demo
//	lvlogic kb validate|watch [dir]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
