// SPDX-License-Identifier: MIT

package knowledge

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlogic/fuzzy"
)

// Fuzzy is a loaded fuzzy knowledge base.
type Fuzzy struct {
	Name        string
	Description string
	Registry    *fuzzy.Registry
	Engine      *fuzzy.Engine

	// Fallback lists the explicit per-output defaults configured in YAML.
	Fallback map[string]float64

	// Cases are named input sets shipped with the base for demonstration.
	Cases []Case

	labels map[string]string
	units  map[string]string
}

// Case is a named set of crisp inputs.
type Case struct {
	Name   string             `yaml:"name"`
	Inputs map[string]float64 `yaml:"inputs"`
}

// Label returns the display label of a variable, or its name.
func (f *Fuzzy) Label(variable string) string {
	if l, ok := f.labels[variable]; ok && l != "" {
		return l
	}

	return variable
}

// Unit returns the unit annotation of a variable, possibly empty.
func (f *Fuzzy) Unit(variable string) string { return f.units[variable] }

// CheckInput rejects x outside the universe of an input variable.
// The engine itself accepts any finite value; this is the input boundary.
func (f *Fuzzy) CheckInput(variable string, x float64) error {
	v, err := f.Registry.Variable(variable)
	if err != nil {
		return err
	}
	if !v.Universe.Contains(x) {
		return fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrOutOfRange, variable, x, v.Universe.Min, v.Universe.Max)
	}

	return nil
}

type variableDoc struct {
	Name     string         `yaml:"name"`
	Role     string         `yaml:"role"`
	Label    string         `yaml:"label"`
	Unit     string         `yaml:"unit"`
	Universe fuzzy.Universe `yaml:"universe"`
	Terms    []termDoc      `yaml:"terms"`
}

type termDoc struct {
	Name string    `yaml:"name"`
	Tri  []float64 `yaml:"tri"`
}

// exprDoc is one antecedent node: a leaf (var/is) or a list under all/any.
type exprDoc struct {
	Var string    `yaml:"var"`
	Is  string    `yaml:"is"`
	All []exprDoc `yaml:"all"`
	Any []exprDoc `yaml:"any"`
}

type fuzzyRuleDoc struct {
	ID   string    `yaml:"id"`
	If   exprDoc   `yaml:"if"`
	Then fuzzy.Ref `yaml:"then"`
}

type fuzzyDoc struct {
	Kind        string             `yaml:"kind"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Variables   []variableDoc      `yaml:"variables"`
	Rules       []fuzzyRuleDoc     `yaml:"rules"`
	Fallback    map[string]float64 `yaml:"fallback"`
	Cases       []Case             `yaml:"cases"`
}

func (d exprDoc) build() (fuzzy.Expr, error) {
	leaf := d.Var != "" || d.Is != ""
	switch {
	case leaf && len(d.All) == 0 && len(d.Any) == 0:
		return fuzzy.Is(d.Var, d.Is), nil
	case !leaf && len(d.All) > 0 && len(d.Any) == 0:
		kids, err := buildAll(d.All)
		if err != nil {
			return nil, err
		}

		return fuzzy.And(kids...), nil
	case !leaf && len(d.Any) > 0 && len(d.All) == 0:
		kids, err := buildAll(d.Any)
		if err != nil {
			return nil, err
		}

		return fuzzy.Or(kids...), nil
	default:
		return nil, fmt.Errorf("%w: condition must be exactly one of var/is, all or any", ErrInvalidDocument)
	}
}

func buildAll(ds []exprDoc) ([]fuzzy.Expr, error) {
	out := make([]fuzzy.Expr, len(ds))
	for i, d := range ds {
		e, err := d.build()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}

	return out, nil
}

func parseRole(s string) (fuzzy.Role, error) {
	switch s {
	case "antecedent", "input":
		return fuzzy.Antecedent, nil
	case "consequent", "output":
		return fuzzy.Consequent, nil
	default:
		return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidDocument, s)
	}
}

// LoadFuzzy reads and validates a fuzzy document. opts are applied after the
// fallbacks declared in the document, so they may override them.
func LoadFuzzy(r io.Reader, opts ...fuzzy.Option) (*Fuzzy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseFuzzy(data, opts...)
}

// ParseFuzzy is LoadFuzzy over bytes.
func ParseFuzzy(data []byte, opts ...fuzzy.Option) (*Fuzzy, error) {
	var doc fuzzyDoc
	if err := decodeStrict(data, KindFuzzy, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: fuzzy base needs a name", ErrInvalidDocument)
	}

	kb := &Fuzzy{
		Name:        doc.Name,
		Description: doc.Description,
		Registry:    fuzzy.NewRegistry(),
		Fallback:    make(map[string]float64, len(doc.Fallback)),
		Cases:       doc.Cases,
		labels:      make(map[string]string),
		units:       make(map[string]string),
	}
	for _, vd := range doc.Variables {
		role, err := parseRole(vd.Role)
		if err != nil {
			return nil, fmt.Errorf("base %q variable %q: %w", doc.Name, vd.Name, err)
		}
		v := fuzzy.Variable{Name: vd.Name, Role: role, Universe: vd.Universe}
		for _, td := range vd.Terms {
			if len(td.Tri) != 3 {
				return nil, fmt.Errorf("%w: base %q variable %q term %q: tri needs 3 points, got %d",
					ErrInvalidDocument, doc.Name, vd.Name, td.Name, len(td.Tri))
			}
			v.Terms = append(v.Terms, fuzzy.Term{
				Name:  td.Name,
				Shape: fuzzy.Triangle{A: td.Tri[0], B: td.Tri[1], C: td.Tri[2]},
			})
		}
		if err := kb.Registry.Add(v); err != nil {
			return nil, fmt.Errorf("base %q: %w", doc.Name, err)
		}
		kb.labels[vd.Name] = vd.Label
		kb.units[vd.Name] = vd.Unit
	}

	rules := make([]fuzzy.Rule, len(doc.Rules))
	for i, rd := range doc.Rules {
		cond, err := rd.If.build()
		if err != nil {
			return nil, fmt.Errorf("base %q rule #%d: %w", doc.Name, i+1, err)
		}
		rules[i] = fuzzy.Rule{ID: rd.ID, If: cond, Then: rd.Then}
	}

	all := make([]fuzzy.Option, 0, len(opts)+1)
	if len(doc.Fallback) > 0 {
		all = append(all, fuzzy.WithFallbacks(doc.Fallback))
		for k, v := range doc.Fallback {
			kb.Fallback[k] = v
		}
	}
	all = append(all, opts...)
	eng, err := fuzzy.NewEngine(kb.Registry, rules, all...)
	if err != nil {
		return nil, fmt.Errorf("base %q: %w", doc.Name, err)
	}
	kb.Engine = eng

	for _, c := range kb.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: base %q has an unnamed case", ErrInvalidDocument, doc.Name)
		}
		for _, in := range sortedNames(c.Inputs) {
			if err := kb.CheckInput(in, c.Inputs[in]); err != nil {
				return nil, fmt.Errorf("base %q case %q: %w", doc.Name, c.Name, err)
			}
		}
	}

	return kb, nil
}
