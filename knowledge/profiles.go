// SPDX-License-Identifier: MIT

package knowledge

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlogic/profile"
)

// Profiles is a loaded profile-screening knowledge base.
type Profiles struct {
	Name        string
	Description string
	Profiles    []profile.Profile
	Urgency     *Urgency
	Questions   []SymptomQuestion
}

// Urgency links a profiles base to the fuzzy base that scores urgency.
type Urgency struct {
	// Base names a fuzzy base in the same library.
	Base string `yaml:"base"`

	// Output names the consequent of Base read as the score.
	Output string `yaml:"output"`

	// Neutral, when set, is the score used without a measurement.
	Neutral *float64 `yaml:"neutral"`
}

// SymptomQuestion collects one symptom. When Numeric is set, a numeric
// answer is stored under that key and also asserts the symptom.
type SymptomQuestion struct {
	ID      string   `yaml:"id"`
	Prompt  string   `yaml:"question"`
	Numeric string   `yaml:"numeric"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
}

// InRange reports whether x is within the question's bounds, if any.
func (q SymptomQuestion) InRange(x float64) bool {
	if q.Min != nil && x < *q.Min {
		return false
	}
	if q.Max != nil && x > *q.Max {
		return false
	}

	return true
}

type profilesDoc struct {
	Kind        string            `yaml:"kind"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Urgency     *Urgency          `yaml:"urgency"`
	Profiles    []profile.Profile `yaml:"profiles"`
	Questions   []SymptomQuestion `yaml:"questions"`
}

// LoadProfiles reads and validates a profiles document. The urgency link is
// resolved later by Library.Matcher.
func LoadProfiles(r io.Reader) (*Profiles, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseProfiles(data)
}

// ParseProfiles is LoadProfiles over bytes.
func ParseProfiles(data []byte) (*Profiles, error) {
	var doc profilesDoc
	if err := decodeStrict(data, KindProfiles, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: profiles base needs a name", ErrInvalidDocument)
	}
	if _, err := profile.NewMatcher(doc.Profiles); err != nil {
		return nil, fmt.Errorf("base %q: %w", doc.Name, err)
	}
	if u := doc.Urgency; u != nil && (u.Base == "" || u.Output == "") {
		return nil, fmt.Errorf("%w: base %q: urgency needs base and output", ErrInvalidDocument, doc.Name)
	}
	seen := make(map[string]struct{}, len(doc.Questions))
	for _, q := range doc.Questions {
		if q.ID == "" || q.Prompt == "" {
			return nil, fmt.Errorf("%w: base %q: question needs id and text", ErrInvalidDocument, doc.Name)
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: base %q: duplicate question %q", ErrInvalidDocument, doc.Name, q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	return &Profiles{
		Name:        doc.Name,
		Description: doc.Description,
		Profiles:    doc.Profiles,
		Urgency:     doc.Urgency,
		Questions:   doc.Questions,
	}, nil
}
