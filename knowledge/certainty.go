// SPDX-License-Identifier: MIT

package knowledge

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/facts"
)

// Certainty is a loaded certainty-factor knowledge base.
type Certainty struct {
	Name        string
	Description string
	Rules       *certainty.RuleSet
	Questions   []certainty.Question
	Advice      Advice
}

// Advice holds maintenance tips chosen by mileage and reported symptoms.
type Advice struct {
	// Mileage bands, highest first. The first band whose Above is below the
	// mileage applies; the last band is the catch-all.
	Mileage []MileageBand `yaml:"mileage"`

	Symptoms []SymptomAdvice `yaml:"symptoms"`

	// NoneFound is shown when no rule fires.
	NoneFound []string `yaml:"none_found"`
}

// MileageBand is the advice for mileages strictly above Above.
type MileageBand struct {
	Above int      `yaml:"above"`
	Title string   `yaml:"title"`
	Tips  []string `yaml:"tips"`
}

// SymptomAdvice applies when any of its facts is asserted.
type SymptomAdvice struct {
	Any   []string `yaml:"any"`
	Title string   `yaml:"title"`
	Tips  []string `yaml:"tips"`
}

// AdviceBlock is one titled group of tips.
type AdviceBlock struct {
	Title string
	Tips  []string
}

// For selects the advice for a vehicle with the given mileage and facts.
// A negative mileage means unknown and skips the mileage band.
func (a Advice) For(mileage int, f facts.Reader) []AdviceBlock {
	var out []AdviceBlock
	if mileage >= 0 && len(a.Mileage) > 0 {
		band := a.Mileage[len(a.Mileage)-1]
		for _, b := range a.Mileage {
			if mileage > b.Above {
				band = b

				break
			}
		}
		out = append(out, AdviceBlock{Title: band.Title, Tips: band.Tips})
	}
	for _, s := range a.Symptoms {
		for _, k := range s.Any {
			if f.Get(k) {
				out = append(out, AdviceBlock{Title: s.Title, Tips: s.Tips})

				break
			}
		}
	}

	return out
}

type certaintyDoc struct {
	Kind        string               `yaml:"kind"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Rules       []certainty.Rule     `yaml:"rules"`
	Questions   []certainty.Question `yaml:"questions"`
	Advice      Advice               `yaml:"advice"`
}

// LoadCertainty reads and validates a certainty document.
func LoadCertainty(r io.Reader) (*Certainty, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseCertainty(data)
}

// ParseCertainty is LoadCertainty over bytes.
func ParseCertainty(data []byte) (*Certainty, error) {
	var doc certaintyDoc
	if err := decodeStrict(data, KindCertainty, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: certainty base needs a name", ErrInvalidDocument)
	}
	rs, err := certainty.NewRuleSet(doc.Rules)
	if err != nil {
		return nil, fmt.Errorf("base %q: %w", doc.Name, err)
	}
	if len(doc.Questions) > 0 {
		if err := certainty.ValidateQuestions(doc.Questions, rs); err != nil {
			return nil, fmt.Errorf("base %q: %w", doc.Name, err)
		}
	}

	return &Certainty{
		Name:        doc.Name,
		Description: doc.Description,
		Rules:       rs,
		Questions:   doc.Questions,
		Advice:      doc.Advice,
	}, nil
}
