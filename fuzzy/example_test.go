package fuzzy_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/fuzzy"
)

// ExampleEngine_Infer runs a one-rule controller.
//
// Scenario:
//
//	fever: high = (38, 39.5, 42) over 35..42
//	severity: high = (60, 100, 100) over 0..100
//	IF fever IS high THEN severity IS high
//
// At 39.5 the rule fires fully and the centroid of the right shoulder
// (60..100, peak at 100) is reported on the 1-unit grid.
func ExampleEngine_Infer() {
	reg := fuzzy.NewRegistry()
	reg.MustAdd(fuzzy.Variable{
		Name: "fever", Role: fuzzy.Antecedent,
		Universe: fuzzy.Universe{Min: 35, Max: 42, Step: 0.1},
		Terms:    []fuzzy.Term{{Name: "high", Shape: fuzzy.Triangle{A: 38, B: 39.5, C: 42}}},
	})
	reg.MustAdd(fuzzy.Variable{
		Name: "severity", Role: fuzzy.Consequent,
		Universe: fuzzy.Universe{Min: 0, Max: 100, Step: 1},
		Terms:    []fuzzy.Term{{Name: "high", Shape: fuzzy.Triangle{A: 60, B: 100, C: 100}}},
	})
	eng, err := fuzzy.NewEngine(reg, []fuzzy.Rule{
		{ID: "hot", If: fuzzy.Is("fever", "high"), Then: fuzzy.Ref{Variable: "severity", Term: "high"}},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	st := facts.New()
	_ = st.SetNumeric("fever", 39.5)
	res, err := eng.Infer(st)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("strength(hot) = %.2f\n", res.Strengths["hot"])
	fmt.Printf("severity = %.2f\n", res.Outputs["severity"])

	// Output:
	// strength(hot) = 1.00
	// severity = 87.00
}

// ExampleWithFallback contrasts an underdetermined output with and without
// an explicit fallback.
func ExampleWithFallback() {
	reg := fuzzy.NewRegistry()
	reg.MustAdd(fuzzy.Variable{
		Name: "x", Role: fuzzy.Antecedent,
		Universe: fuzzy.Universe{Min: 0, Max: 10, Step: 1},
		Terms:    []fuzzy.Term{{Name: "big", Shape: fuzzy.Triangle{A: 5, B: 10, C: 10}}},
	})
	reg.MustAdd(fuzzy.Variable{
		Name: "y", Role: fuzzy.Consequent,
		Universe: fuzzy.Universe{Min: 0, Max: 100, Step: 1},
		Terms:    []fuzzy.Term{{Name: "big", Shape: fuzzy.Triangle{A: 50, B: 100, C: 100}}},
	})
	rules := []fuzzy.Rule{{If: fuzzy.Is("x", "big"), Then: fuzzy.Ref{Variable: "y", Term: "big"}}}
	st := facts.New()
	_ = st.SetNumeric("x", 1)

	strict, _ := fuzzy.NewEngine(reg, rules)
	_, err := strict.Infer(st)
	fmt.Println("strict:", errors.Is(err, fuzzy.ErrUnderdetermined))

	lenient, _ := fuzzy.NewEngine(reg, rules, fuzzy.WithFallback("y", 50))
	res, _ := lenient.Infer(st)
	fmt.Println("lenient:", res.Outputs["y"], res.Defaulted["y"])

	// Output:
	// strict: true
	// lenient: 50 true
}
