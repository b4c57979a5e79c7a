package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlogic/fuzzy"
)

func TestRegistry_AddAndLookup(t *testing.T) {
	reg := medicalRegistry(t)
	assert.Equal(t, 6, reg.Len())
	assert.Equal(t, []string{"temperature", "cough", "fatigue", "flu_risk", "covid_risk", "cold_risk"}, reg.Names())

	v, err := reg.Variable("cough")
	require.NoError(t, err)
	assert.Equal(t, fuzzy.Antecedent, v.Role)
	require.Len(t, v.Terms, 4)

	// The returned copy must not alias registry storage.
	v.Terms[0].Name = "mutated"
	again, _ := reg.Variable("cough")
	assert.Equal(t, "none", again.Terms[0].Name)

	_, err = reg.Variable("nope")
	assert.ErrorIs(t, err, fuzzy.ErrUnknownVariable)
}

func TestRegistry_RejectsDuplicatesAndInvalid(t *testing.T) {
	reg := medicalRegistry(t)
	v, _ := reg.Variable("cough")
	assert.ErrorIs(t, reg.Add(v), fuzzy.ErrDuplicateVariable)

	bad := fuzzy.Variable{Name: "bad", Role: fuzzy.Antecedent, Universe: fuzzy.Universe{Min: 0, Max: 1, Step: 1}}
	assert.ErrorIs(t, reg.Add(bad), fuzzy.ErrInvalidVariable)
	assert.Panics(t, func() { reg.MustAdd(bad) })
}

func TestRegistry_Membership(t *testing.T) {
	reg := medicalRegistry(t)

	mu, err := reg.Membership("temperature", "high", 39.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5/3, mu, 1e-12)

	mu, err = reg.Membership("temperature", "very_high", 39.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, mu, 1e-12)

	// Values outside the universe are not rejected here.
	mu, err = reg.Membership("cough", "severe", 12)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mu)

	_, err = reg.Membership("cough", "violent", 5)
	assert.ErrorIs(t, err, fuzzy.ErrUnknownTerm)
	_, err = reg.Membership("sneeze", "mild", 5)
	assert.ErrorIs(t, err, fuzzy.ErrUnknownVariable)
}

func TestRegistry_Fuzzify(t *testing.T) {
	reg := medicalRegistry(t)
	ds, err := reg.Fuzzify("fatigue", 9)
	require.NoError(t, err)
	require.Len(t, ds, 3)
	assert.Equal(t, "low", ds[0].Term)
	assert.Equal(t, 0.0, ds[0].Value)
	assert.Equal(t, 0.0, ds[1].Value)
	assert.InDelta(t, 0.75, ds[2].Value, 1e-12)

	_, err = reg.Fuzzify("nope", 1)
	assert.ErrorIs(t, err, fuzzy.ErrUnknownVariable)
}
