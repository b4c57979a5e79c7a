// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/knowledge"
)

var errNoInput = errors.New("input ended before the questionnaire finished")

// prompter asks questions on out and reads one answer per line from in.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}

		return "", errNoInput
	}

	return strings.TrimSpace(p.in.Text()), nil
}

// yesNo re-asks until the answer parses as yes or no.
func (p *prompter) yesNo(q certainty.Question) (bool, error) {
	prompt := q.Prompt
	if q.Hint != "" {
		prompt += " (" + q.Hint + ")"
	}
	for {
		s, err := p.line(prompt + " [y/n]: ")
		if err != nil {
			return false, err
		}
		if v, ok := certainty.ParseAnswer(s); ok {
			return v, nil
		}
		fmt.Fprintln(p.out, "Please answer 'yes' or 'no'.")
	}
}

// symptom asks a profile question. Numeric questions accept "no" or a
// number inside the question's range; present reports the symptom.
func (p *prompter) symptom(q knowledge.SymptomQuestion) (present bool, value float64, err error) {
	for {
		s, err := p.line(q.Prompt + " ")
		if err != nil {
			return false, 0, err
		}
		if v, ok := certainty.ParseAnswer(s); ok && (q.Numeric == "" || !v) {
			return v, 0, nil
		}
		if q.Numeric != "" {
			x, perr := strconv.ParseFloat(s, 64)
			if perr == nil && q.InRange(x) {
				return true, x, nil
			}
			fmt.Fprintln(p.out, "Please answer 'no' or a number in range.")

			continue
		}
		fmt.Fprintln(p.out, "Please answer 'yes' or 'no'.")
	}
}
