// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/fuzzy"
	"github.com/katalvlaran/lvlogic/knowledge"
	"github.com/katalvlaran/lvlogic/profile"
	"github.com/katalvlaran/lvlogic/session"
)

// MinDegree is the fuzzification degree at or below which a term is hidden.
const MinDegree = 0.01

// Printer writes report sections to one stream.
type Printer struct {
	w    io.Writer
	mode Mode
	top  int
}

// NewPrinter returns a Printer; top caps ranked sections (values < 1 mean 3).
func NewPrinter(w io.Writer, mode Mode, top int) *Printer {
	if top < 1 {
		top = 3
	}

	return &Printer{w: w, mode: mode, top: top}
}

func (p *Printer) emit(b *tableBuilder) error {
	_, err := fmt.Fprintln(p.w, b.String())

	return err
}

// Heading writes a section heading.
func (p *Printer) Heading(s string) error {
	var err error
	if p.mode == Markdown {
		_, err = fmt.Fprintf(p.w, "## %s\n\n", s)
	} else {
		_, err = fmt.Fprintf(p.w, "%s\n%s\n", s, strings.Repeat("=", len([]rune(s))))
	}

	return err
}

// Percent formats a confidence in [0, 1] as "98.0%".
func Percent(c float64) string { return fmt.Sprintf("%.1f%%", c*100) }

// Round3 rounds to three decimals.
func Round3(x float64) float64 { return math.Round(x*1000) / 1000 }

// RiskBand maps a 0..100 score onto a linguistic band.
func RiskBand(v float64) string {
	switch {
	case v >= 80:
		return "very high"
	case v >= 60:
		return "high"
	case v >= 40:
		return "medium"
	case v >= 20:
		return "low"
	default:
		return "very low"
	}
}

// Banner returns the overall assessment lines for a severity band.
func Banner(s certainty.Severity) []string {
	var head string
	switch s {
	case certainty.Urgent:
		head = "URGENT ATTENTION REQUIRED"
	case certainty.ScheduleSoon:
		head = "SCHEDULE REPAIR SOON"
	default:
		head = "MONITOR AND MAINTAIN"
	}

	return append([]string{head}, s.Advice()...)
}

// Diagnoses renders the ranked CF conclusions, then the rules behind the
// first top entries and the overall banner.
func (p *Printer) Diagnoses(ds []certainty.Diagnosis, rs *certainty.RuleSet) error {
	if len(ds) == 0 {
		_, err := fmt.Fprintln(p.w, "No specific problems identified.")

		return err
	}
	t := newTable(p.mode, "")
	t.header("#", "Problem", "Confidence", "Severity", "Action", "Estimated cost")
	t.alignRight(1, 3)
	for i, d := range ds {
		t.row(i+1, d.Label, Percent(d.Confidence), certainty.Classify(d.Confidence).String(), d.Action, d.Cost)
	}
	if err := p.emit(t); err != nil {
		return err
	}

	if rs != nil {
		r := newTable(p.mode, "Reasoning")
		r.header("Problem", "Rule", "Condition", "CF")
		for _, d := range ds[:min(p.top, len(ds))] {
			for _, rule := range rs.Explain(d) {
				r.row(d.Label, rule.ID, humanize(strings.Join(rule.If, " AND ")), rule.CF)
			}
		}
		if err := p.emit(r); err != nil {
			return err
		}
	}

	sev, _ := certainty.Top(ds)

	return p.lines(Banner(sev))
}

func (p *Printer) lines(ls []string) error {
	for i, l := range ls {
		prefix := "  • "
		if i == 0 {
			prefix = ""
		}
		if _, err := fmt.Fprintln(p.w, prefix+l); err != nil {
			return err
		}
	}

	return nil
}

// Labeler names variables for display.
type Labeler interface {
	Label(variable string) string
}

// Outputs renders the crisp outputs of a fuzzy result in variable order.
// Defaulted values and failures are marked in the last column.
func (p *Printer) Outputs(res *fuzzy.Result, order []string, names Labeler) error {
	t := newTable(p.mode, "")
	t.header("Output", "Condition", "Score", "Band", "Note")
	t.alignRight(3)
	for _, v := range order {
		label := v
		if names != nil {
			label = names.Label(v)
		}
		if err, failed := res.Failed[v]; failed {
			t.row(v, label, "-", "-", err.Error())

			continue
		}
		val := res.Outputs[v]
		note := ""
		if res.Defaulted[v] {
			note = "default (no rule fired)"
		}
		t.row(v, label, fmt.Sprintf("%.1f", val), RiskBand(val), note)
	}

	return p.emit(t)
}

// Degrees renders the fuzzification of each input: terms with degree
// above MinDegree, rounded to three decimals.
func (p *Printer) Degrees(reg *fuzzy.Registry, inputs []string, values map[string]float64) error {
	t := newTable(p.mode, "Fuzzification")
	t.header("Input", "Value", "Term", "Degree")
	for _, in := range inputs {
		x, ok := values[in]
		if !ok {
			continue
		}
		ds, err := reg.Fuzzify(in, x)
		if err != nil {
			return err
		}
		for _, d := range ds {
			if d.Value > MinDegree {
				t.row(in, x, d.Term, Round3(d.Value))
			}
		}
	}

	return p.emit(t)
}

// Strengths renders the rules that fired with positive strength.
func (p *Printer) Strengths(rules []fuzzy.Rule, res *fuzzy.Result) error {
	t := newTable(p.mode, "Rule activation")
	t.header("Rule", "Definition", "Strength")
	t.alignRight(3)
	for _, r := range rules {
		if s := res.Strengths[r.ID]; s > 0 {
			t.row(r.ID, r.String(), Round3(s))
		}
	}

	return p.emit(t)
}

// Matches renders profile screening results, the first top entries in full.
func (p *Printer) Matches(ms []profile.Match) error {
	if len(ms) == 0 {
		_, err := fmt.Fprintln(p.w, "No matching diseases found.\nRecommendation: Consult a doctor for accurate diagnosis.")

		return err
	}
	t := newTable(p.mode, "")
	t.header("#", "Condition", "Match", "Urgency", "Score", "Symptoms present", "Risk factors", "Treatments")
	t.alignRight(1, 3, 5)
	for i, m := range ms[:min(p.top, len(ms))] {
		score := "-"
		if m.Scored {
			score = fmt.Sprintf("%.1f/100", m.UrgencyScore)
			switch {
			case m.Defaulted && m.UrgencyErr != nil && !m.Unmeasured():
				score += " (neutral: no rule fired)"
			case m.Defaulted:
				score += " (neutral)"
			}
		}
		t.row(i+1, m.Profile, fmt.Sprintf("%.1f%%", m.Percent), m.Urgency, score,
			humanize(strings.Join(m.Matched, ", ")),
			humanize(strings.Join(m.RiskFactors, ", ")),
			strings.Join(m.Treatments, ", "))
	}

	return p.emit(t)
}

// Advice renders titled tip lists.
func (p *Printer) Advice(blocks []knowledge.AdviceBlock) error {
	for _, b := range blocks {
		if err := p.lines(append([]string{b.Title + ":"}, b.Tips...)); err != nil {
			return err
		}
	}

	return nil
}

// Batch renders one row per case: every output of order, then the primary
// conclusion. Cases without a result show their error instead; a starred
// value is a configured fallback.
func (p *Printer) Batch(outs []session.Outcome, order []string) error {
	t := newTable(p.mode, "")
	cols := append([]string{"Case"}, order...)
	t.header(append(cols, "Primary")...)
	for _, o := range outs {
		row := []any{o.Case}
		if o.Result == nil {
			for range order {
				row = append(row, "-")
			}
			t.row(append(row, fmt.Sprintf("error: %v", o.Err))...)

			continue
		}
		for _, v := range order {
			val, ok := o.Result.Outputs[v]
			switch {
			case !ok:
				row = append(row, "n/a")
			case o.Result.Defaulted[v]:
				row = append(row, fmt.Sprintf("%.1f*", val))
			default:
				row = append(row, fmt.Sprintf("%.1f", val))
			}
		}
		primary := "-"
		if name, val, ok := o.Result.Primary(); ok {
			primary = fmt.Sprintf("%s (%s)", name, RiskBand(val))
		}
		t.row(append(row, primary)...)
	}

	return p.emit(t)
}

func humanize(s string) string { return strings.ReplaceAll(s, "_", " ") }
