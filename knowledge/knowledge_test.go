package knowledge_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlogic/certainty"
	"github.com/katalvlaran/lvlogic/facts"
	"github.com/katalvlaran/lvlogic/fuzzy"
	"github.com/katalvlaran/lvlogic/knowledge"
	"github.com/katalvlaran/lvlogic/profile"
)

const tol = 1e-9

func TestDefault_LoadsBuiltins(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"car"}, lib.Names(knowledge.KindCertainty))
	assert.Equal(t, []string{"fever", "medical"}, lib.Names(knowledge.KindFuzzy))
	assert.Equal(t, []string{"diseases"}, lib.Names(knowledge.KindProfiles))
	assert.Nil(t, lib.Names("other"))

	car, err := lib.Certainty("car")
	require.NoError(t, err)
	assert.Equal(t, 10, car.Rules.Len())
	assert.Len(t, car.Questions, 18)
	assert.Len(t, car.Rules.Keys(), 18)

	src, ok := lib.Source(knowledge.KindCertainty, "car")
	assert.True(t, ok)
	assert.Equal(t, "car.yaml", src)

	_, err = lib.Fuzzy("nope")
	assert.ErrorIs(t, err, knowledge.ErrNotFound)
	_, err = lib.Certainty("nope")
	assert.ErrorIs(t, err, knowledge.ErrNotFound)
	_, err = lib.Profiles("nope")
	assert.ErrorIs(t, err, knowledge.ErrNotFound)
}

// TestDefault_CarWeakBattery exercises the embedded rules end to end.
func TestDefault_CarWeakBattery(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)
	car, err := lib.Certainty("car")
	require.NoError(t, err)

	ds, err := certainty.Evaluate(facts.FromFlags("engine_wont_start", "clicking_sound", "brake_noise", "vibration_while_braking"), car.Rules)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "Weak battery", ds[0].Label)
	assert.InDelta(t, 0.9, ds[0].Confidence, tol)
	assert.Equal(t, "RS 3000-8000", ds[0].Cost)
	assert.Equal(t, "Worn brake pads", ds[1].Label)
	assert.Equal(t, certainty.Urgent, certainty.Classify(ds[0].Confidence))
}

// TestDefault_MedicalSevereFlu matches the hand-built engine results.
func TestDefault_MedicalSevereFlu(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)
	med, err := lib.Fuzzy("medical")
	require.NoError(t, err)

	assert.Equal(t, []string{"flu_risk", "covid_risk", "cold_risk"}, med.Engine.Consequents())
	assert.Equal(t, "Influenza", med.Label("flu_risk"))
	assert.Equal(t, "temperature", med.Label("temperature"))
	assert.Equal(t, "°C", med.Unit("temperature"))
	require.Len(t, med.Cases, 5)
	assert.Equal(t, "Severe Flu", med.Cases[0].Name)

	st := facts.New()
	for k, v := range med.Cases[0].Inputs {
		require.NoError(t, st.SetNumeric(k, v))
	}
	res, err := med.Engine.Infer(st)
	require.NoError(t, err, "fallbacks are configured in the base")
	assert.InDelta(t, 89.703564727955, res.Outputs["flu_risk"], tol)
	assert.InDelta(t, 96.17647058823533, res.Outputs["covid_risk"], tol)
	assert.Equal(t, 50.0, res.Outputs["cold_risk"])
	assert.True(t, res.Defaulted["cold_risk"])
}

func TestFuzzy_CheckInput(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)
	med, err := lib.Fuzzy("medical")
	require.NoError(t, err)

	require.NoError(t, med.CheckInput("temperature", 35))
	require.NoError(t, med.CheckInput("temperature", 42))
	assert.ErrorIs(t, med.CheckInput("temperature", 43), knowledge.ErrOutOfRange)
	assert.ErrorIs(t, med.CheckInput("cough", -1), knowledge.ErrOutOfRange)
	assert.ErrorIs(t, med.CheckInput("sneeze", 1), fuzzy.ErrUnknownVariable)
}

func TestDefault_DiseaseMatcher(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)
	m, err := lib.Matcher("diseases")
	require.NoError(t, err)
	assert.Len(t, m.Profiles(), 4)

	st := facts.FromFlags("fever", "cough", "fatigue")
	require.NoError(t, st.SetNumeric("fever", 39.5))
	ms, err := m.Match(st)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "Influenza", ms[0].Profile)
	assert.InDelta(t, 87.0, ms[0].UrgencyScore, tol)
	assert.False(t, ms[0].Defaulted)

	ms, err = m.Match(facts.FromFlags("fever", "cough"))
	require.NoError(t, err)
	assert.True(t, ms[0].Defaulted)
	assert.Equal(t, 50.0, ms[0].UrgencyScore)

	kb, err := lib.Profiles("diseases")
	require.NoError(t, err)
	require.NotEmpty(t, kb.Questions)
	assert.Equal(t, "fever", kb.Questions[0].Numeric)
	assert.True(t, kb.Questions[0].InRange(38.5))
	assert.False(t, kb.Questions[0].InRange(50))
	assert.True(t, kb.Questions[2].InRange(1e9), "no bounds")
}

func TestAdvice_For(t *testing.T) {
	lib, err := knowledge.Default()
	require.NoError(t, err)
	car, err := lib.Certainty("car")
	require.NoError(t, err)

	blocks := car.Advice.For(120000, facts.FromFlags("brake_noise"))
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0].Title, "High mileage")
	assert.Equal(t, "Brake safety", blocks[1].Title)

	blocks = car.Advice.For(60000, facts.New())
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Title, "Medium mileage")

	blocks = car.Advice.For(0, facts.FromFlags("high_fuel_consumption"))
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0].Title, "Low mileage")
	assert.Equal(t, "Fuel efficiency", blocks[1].Title)

	assert.Empty(t, car.Advice.For(-1, facts.New()))
	assert.Len(t, car.Advice.NoneFound, 3)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"no kind", "name: x\n", knowledge.ErrUnknownKind},
		{"bad kind", "kind: neural\nname: x\n", knowledge.ErrUnknownKind},
		{"not yaml", "kind: [\n", knowledge.ErrInvalidDocument},
		{"unknown field", "kind: certainty\nname: x\nrulez: []\n", knowledge.ErrInvalidDocument},
		{"no name", "kind: certainty\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n", knowledge.ErrInvalidDocument},
		{"cf out of range", "kind: certainty\nname: x\nrules:\n  - {id: A, if: [x], then: P, cf: 1.5}\n", certainty.ErrInvalidRule},
		{"empty antecedent", "kind: certainty\nname: x\nrules:\n  - {id: A, if: [], then: P, cf: 0.5}\n", certainty.ErrInvalidRule},
		{"unasked fact", "kind: certainty\nname: x\nrules:\n  - {id: A, if: [x, y], then: P, cf: 0.5}\nquestions:\n  - {id: x, question: \"X?\"}\n", certainty.ErrUnaskedFact},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := knowledge.ParseCertainty([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := knowledge.ParseFuzzy([]byte("kind: certainty\nname: x\n"))
	assert.ErrorIs(t, err, knowledge.ErrKindMismatch)
	_, err = knowledge.LoadProfiles(strings.NewReader("kind: fuzzy\nname: x\n"))
	assert.ErrorIs(t, err, knowledge.ErrKindMismatch)
}

const tinyFuzzy = `kind: fuzzy
name: tiny
variables:
  - name: x
    role: input
    universe: {min: 0, max: 10, step: 1}
    terms:
      - {name: big, tri: [5, 10, 10]}
  - name: y
    role: output
    universe: {min: 0, max: 100, step: 1}
    terms:
      - {name: big, tri: [50, 100, 100]}
rules:
  - if: %s
    then: {var: y, is: big}
`

func TestParseFuzzy_Errors(t *testing.T) {
	ok := strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1)
	kb, err := knowledge.ParseFuzzy([]byte(ok))
	require.NoError(t, err)
	assert.Equal(t, "rule1", kb.Engine.Rules()[0].ID)
	assert.Empty(t, kb.Fallback)

	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"leaf and list", strings.Replace(tinyFuzzy, "%s", "{var: x, is: big, all: [{var: x, is: big}]}", 1), knowledge.ErrInvalidDocument},
		{"all and any", strings.Replace(tinyFuzzy, "%s", "{all: [{var: x, is: big}], any: [{var: x, is: big}]}", 1), knowledge.ErrInvalidDocument},
		{"empty condition", strings.Replace(tinyFuzzy, "%s", "{}", 1), knowledge.ErrInvalidDocument},
		{"unknown term", strings.Replace(tinyFuzzy, "%s", "{var: x, is: huge}", 1), fuzzy.ErrUnknownTerm},
		{"bad role", strings.Replace(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1), "role: input", "role: sideways", 1), knowledge.ErrInvalidDocument},
		{"two points", strings.Replace(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1), "tri: [5, 10, 10]", "tri: [5, 10]", 1), knowledge.ErrInvalidDocument},
		{"unordered tri", strings.Replace(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1), "tri: [5, 10, 10]", "tri: [10, 5, 10]", 1), fuzzy.ErrInvalidTerm},
		{"zero step", strings.Replace(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1), "step: 1}\n    terms:\n      - {name: big, tri: [5", "step: 0}\n    terms:\n      - {name: big, tri: [5", 1), fuzzy.ErrInvalidUniverse},
		{"fallback on unknown", strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1) + "fallback: {z: 1}\n", fuzzy.ErrUnknownVariable},
		{"case out of range", strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1) + "cases:\n  - {name: c, inputs: {x: 11}}\n", knowledge.ErrOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := knowledge.ParseFuzzy([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseFuzzy_OptionsOverrideDocument(t *testing.T) {
	doc := strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1) + "fallback: {y: 10}\n"
	kb, err := knowledge.LoadFuzzy(strings.NewReader(doc), fuzzy.WithFallback("y", 20))
	require.NoError(t, err)
	assert.Equal(t, 10.0, kb.Fallback["y"])

	st := facts.New()
	require.NoError(t, st.SetNumeric("x", 0))
	res, err := kb.Engine.Infer(st)
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Outputs["y"])
}

func TestParseProfiles_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"required not listed", "kind: profiles\nname: p\nprofiles:\n  - {name: A, symptoms: [x], required: [y]}\n", profile.ErrInvalidProfile},
		{"half urgency", "kind: profiles\nname: p\nurgency: {base: fever}\nprofiles:\n  - {name: A, symptoms: [x]}\n", knowledge.ErrInvalidDocument},
		{"duplicate question", "kind: profiles\nname: p\nprofiles:\n  - {name: A, symptoms: [x]}\nquestions:\n  - {id: x, question: X?}\n  - {id: x, question: X again?}\n", knowledge.ErrInvalidDocument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := knowledge.ParseProfiles([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDiscoverAndOpen(t *testing.T) {
	fsys := fstest.MapFS{
		"a/tiny.yaml":    {Data: []byte(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1))},
		"b/c/car.yml":    {Data: []byte("kind: certainty\nname: mini\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n")},
		"notes.txt":      {Data: []byte("ignored")},
		"b/profile.yaml": {Data: []byte("kind: profiles\nname: p\nurgency: {base: tiny, output: y}\nprofiles:\n  - {name: A, symptoms: [x]}\n")},
	}

	paths, err := knowledge.Discover(fsys, knowledge.DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/tiny.yaml", "b/c/car.yml", "b/profile.yaml"}, paths)

	_, err = knowledge.Discover(fsys, "[")
	assert.Error(t, err)

	lib, err := knowledge.Open(fsys, knowledge.DefaultPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"mini"}, lib.Names(knowledge.KindCertainty))
	_, err = lib.Matcher("p")
	require.NoError(t, err)
}

func TestOpen_LinkAndDuplicateErrors(t *testing.T) {
	broken := fstest.MapFS{
		"p.yaml": {Data: []byte("kind: profiles\nname: p\nurgency: {base: missing, output: y}\nprofiles:\n  - {name: A, symptoms: [x]}\n")},
	}
	_, err := knowledge.Open(broken, knowledge.DefaultPattern)
	assert.ErrorIs(t, err, knowledge.ErrNotFound)

	wrongOutput := fstest.MapFS{
		"a.yaml": {Data: []byte(strings.Replace(tinyFuzzy, "%s", "{var: x, is: big}", 1))},
		"p.yaml": {Data: []byte("kind: profiles\nname: p\nurgency: {base: tiny, output: nope}\nprofiles:\n  - {name: A, symptoms: [x]}\n")},
	}
	_, err = knowledge.Open(wrongOutput, knowledge.DefaultPattern)
	assert.Error(t, err)

	dup := fstest.MapFS{
		"a.yaml": {Data: []byte("kind: certainty\nname: same\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n")},
		"b.yaml": {Data: []byte("kind: certainty\nname: same\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n")},
	}
	_, err = knowledge.Open(dup, knowledge.DefaultPattern)
	assert.ErrorIs(t, err, knowledge.ErrDuplicateBase)
}

func TestValidate_ReportsEveryFile(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml":   {Data: []byte("kind: certainty\nname: ok\nrules:\n  - {id: A, if: [x], then: P, cf: 0.5}\n")},
		"bad.yaml":    {Data: []byte("kind: certainty\nname: bad\nrules:\n  - {id: A, if: [x], then: P, cf: 2}\n")},
		"orphan.yaml": {Data: []byte("kind: profiles\nname: p\nurgency: {base: none, output: y}\nprofiles:\n  - {name: A, symptoms: [x]}\n")},
	}
	res, err := knowledge.Validate(fsys, knowledge.DefaultPattern)
	require.NoError(t, err)
	require.Len(t, res, 3)

	byPath := map[string]knowledge.FileResult{}
	for _, r := range res {
		byPath[r.Path] = r
	}
	assert.True(t, byPath["good.yaml"].OK())
	assert.Equal(t, "ok", byPath["good.yaml"].Name)
	assert.Equal(t, knowledge.KindCertainty, byPath["good.yaml"].Kind)
	assert.ErrorIs(t, byPath["bad.yaml"].Err, certainty.ErrInvalidRule)
	assert.ErrorIs(t, byPath["orphan.yaml"].Err, knowledge.ErrNotFound)
	assert.Equal(t, knowledge.KindProfiles, byPath["orphan.yaml"].Kind)
}

func TestValidate_Builtin(t *testing.T) {
	res, err := knowledge.Validate(knowledge.Builtin(), knowledge.DefaultPattern)
	require.NoError(t, err)
	require.Len(t, res, 4)
	for _, r := range res {
		assert.True(t, r.OK(), "%s: %v", r.Path, r.Err)
	}
}
