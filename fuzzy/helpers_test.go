package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/fuzzy"
)

const tol = 1e-9

func tri(a, b, c float64) fuzzy.Triangle { return fuzzy.Triangle{A: a, B: b, C: c} }

func then(v, t string) fuzzy.Ref { return fuzzy.Ref{Variable: v, Term: t} }

// medicalRegistry builds the three-input, three-output medical risk model.
func medicalRegistry(t testing.TB) *fuzzy.Registry {
	t.Helper()
	reg := fuzzy.NewRegistry()
	risk := fuzzy.Universe{Min: 0, Max: 100, Step: 1}
	vars := []fuzzy.Variable{
		{Name: "temperature", Role: fuzzy.Antecedent, Universe: fuzzy.Universe{Min: 35, Max: 42, Step: 0.1}, Terms: []fuzzy.Term{
			{Name: "low", Shape: tri(35, 35, 37)},
			{Name: "normal", Shape: tri(36, 37, 38)},
			{Name: "high", Shape: tri(37, 39, 42)},
			{Name: "very_high", Shape: tri(38.5, 41, 42)},
		}},
		{Name: "cough", Role: fuzzy.Antecedent, Universe: fuzzy.Universe{Min: 0, Max: 10, Step: 1}, Terms: []fuzzy.Term{
			{Name: "none", Shape: tri(0, 0, 2)},
			{Name: "mild", Shape: tri(1, 3, 5)},
			{Name: "moderate", Shape: tri(4, 6, 8)},
			{Name: "severe", Shape: tri(7, 10, 10)},
		}},
		{Name: "fatigue", Role: fuzzy.Antecedent, Universe: fuzzy.Universe{Min: 0, Max: 10, Step: 1}, Terms: []fuzzy.Term{
			{Name: "low", Shape: tri(0, 0, 4)},
			{Name: "medium", Shape: tri(3, 5, 7)},
			{Name: "high", Shape: tri(6, 10, 10)},
		}},
		{Name: "flu_risk", Role: fuzzy.Consequent, Universe: risk, Terms: []fuzzy.Term{
			{Name: "very_low", Shape: tri(0, 0, 25)},
			{Name: "low", Shape: tri(0, 25, 50)},
			{Name: "medium", Shape: tri(25, 50, 75)},
			{Name: "high", Shape: tri(50, 75, 100)},
			{Name: "very_high", Shape: tri(75, 100, 100)},
		}},
		{Name: "covid_risk", Role: fuzzy.Consequent, Universe: risk, Terms: []fuzzy.Term{
			{Name: "very_low", Shape: tri(0, 0, 20)},
			{Name: "low", Shape: tri(10, 30, 50)},
			{Name: "medium", Shape: tri(40, 60, 80)},
			{Name: "high", Shape: tri(70, 85, 100)},
			{Name: "very_high", Shape: tri(90, 100, 100)},
		}},
		{Name: "cold_risk", Role: fuzzy.Consequent, Universe: risk, Terms: []fuzzy.Term{
			{Name: "very_low", Shape: tri(0, 0, 30)},
			{Name: "low", Shape: tri(20, 40, 60)},
			{Name: "medium", Shape: tri(50, 65, 80)},
			{Name: "high", Shape: tri(70, 85, 100)},
			{Name: "very_high", Shape: tri(90, 100, 100)},
		}},
	}
	for _, v := range vars {
		require.NoError(t, reg.Add(v))
	}

	return reg
}

func medicalRules() []fuzzy.Rule {
	return []fuzzy.Rule{
		{ID: "r1", If: fuzzy.And(fuzzy.Is("temperature", "high"), fuzzy.Is("cough", "severe")), Then: then("flu_risk", "very_high")},
		{ID: "r2", If: fuzzy.And(fuzzy.Is("temperature", "high"), fuzzy.Is("cough", "moderate")), Then: then("flu_risk", "high")},
		{ID: "r3", If: fuzzy.And(fuzzy.Is("temperature", "normal"), fuzzy.Is("cough", "severe"), fuzzy.Is("fatigue", "high")), Then: then("flu_risk", "high")},
		{ID: "r4", If: fuzzy.And(fuzzy.Is("temperature", "normal"), fuzzy.Is("cough", "mild")), Then: then("flu_risk", "medium")},
		{ID: "r5", If: fuzzy.Or(fuzzy.Is("temperature", "low"), fuzzy.Is("cough", "none")), Then: then("flu_risk", "very_low")},
		{ID: "r6", If: fuzzy.And(fuzzy.Is("temperature", "very_high"), fuzzy.Is("fatigue", "high")), Then: then("covid_risk", "very_high")},
		{ID: "r7", If: fuzzy.And(fuzzy.Is("temperature", "high"), fuzzy.Is("cough", "moderate")), Then: then("covid_risk", "high")},
		{ID: "r8", If: fuzzy.And(fuzzy.Is("temperature", "normal"), fuzzy.Is("fatigue", "medium")), Then: then("covid_risk", "medium")},
		{ID: "r9", If: fuzzy.And(fuzzy.Is("temperature", "normal"), fuzzy.Is("cough", "mild")), Then: then("cold_risk", "high")},
		{ID: "r10", If: fuzzy.And(fuzzy.Is("temperature", "low"), fuzzy.Is("cough", "moderate")), Then: then("cold_risk", "medium")},
	}
}

func medicalEngine(t testing.TB, opts ...fuzzy.Option) *fuzzy.Engine {
	t.Helper()
	eng, err := fuzzy.NewEngine(medicalRegistry(t), medicalRules(), opts...)
	require.NoError(t, err)

	return eng
}

func patient(t testing.TB, temperature, cough, fatigue float64) *facts.Store {
	t.Helper()
	st := facts.New()
	require.NoError(t, st.SetNumeric("temperature", temperature))
	require.NoError(t, st.SetNumeric("cough", cough))
	require.NoError(t, st.SetNumeric("fatigue", fatigue))

	return st
}
