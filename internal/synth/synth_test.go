package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

func generate(seed int64, n int) []Person {
	s := New(seed)
	people := make([]Person, n)
	for i := range people {
		people[i] = s.Person()
	}
	return people
}

func TestSameSeedSamePeople(t *testing.T) {
	a := generate(42, 200)
	b := generate(42, 200)
	require.Equal(t, a, b)

	c := generate(43, 200)
	assert.NotEqual(t, a, c)
}

func TestNumericAttributesWithinRange(t *testing.T) {
	cat := catalog.Default()
	for i, p := range generate(7, 2000) {
		for _, spec := range cat.Attributes() {
			if spec.Kind != catalog.Numeric {
				continue
			}
			v, ok := p.Numeric(spec.Name)
			require.True(t, ok, "numeric accessor missing for %s", spec.Name)
			if !spec.InRange(v) {
				t.Fatalf("person %d: %s = %v outside [%v, %v]", i, spec.Name, v, spec.Min, spec.Max)
			}
		}
	}
}

func TestCategoricalAttributesAllowed(t *testing.T) {
	cat := catalog.Default()
	for i, p := range generate(11, 1000) {
		for _, spec := range cat.Attributes() {
			if spec.Kind != catalog.Categorical {
				continue
			}
			v, ok := p.Categorical(spec.Name)
			require.True(t, ok, "categorical accessor missing for %s", spec.Name)
			if !spec.Allows(v) {
				t.Fatalf("person %d: %s = %q not allowed", i, spec.Name, v)
			}
		}
	}
}

func TestBMIDerivedFromStoredValues(t *testing.T) {
	for _, p := range generate(3, 1000) {
		want := p.Weight / math.Pow(p.Height/100, 2)
		assert.InDelta(t, want, p.BMI, 1e-6)
	}
}

func TestExperienceSentinels(t *testing.T) {
	var sawNone, sawHistory bool
	for _, p := range generate(5, 1000) {
		if p.SportYears == 0 {
			sawNone = true
			assert.Equal(t, []string{catalog.NoSport}, p.PreviousSports)
			assert.Equal(t, catalog.NoSport, p.BestSport)
			assert.Equal(t, catalog.InjuryNone, p.Injury)
			continue
		}
		sawHistory = true
		require.NotEmpty(t, p.PreviousSports)
		assert.LessOrEqual(t, len(p.PreviousSports), 4)
		assert.LessOrEqual(t, len(p.PreviousSports), p.SportYears)
		assert.Contains(t, p.PreviousSports, p.BestSport)

		seen := map[string]bool{}
		for _, sp := range p.PreviousSports {
			assert.False(t, seen[sp], "duplicate previous sport %s", sp)
			seen[sp] = true
		}
		if p.SportYears <= 5 {
			assert.Contains(t, []string{catalog.InjuryNone, catalog.InjuryMinor}, p.Injury)
		}
		if p.SportYears <= 10 {
			assert.NotEqual(t, catalog.InjurySevere, p.Injury)
		}
		assert.LessOrEqual(t, p.SportYears, p.Age-10)
		assert.LessOrEqual(t, p.SportYears, 30)
	}
	assert.True(t, sawNone)
	assert.True(t, sawHistory)
}

func TestBodyTypeFollowsBMIBand(t *testing.T) {
	for _, p := range generate(9, 1000) {
		switch {
		case p.BMI < 20:
			assert.NotEqual(t, catalog.Endomorph, p.BodyType)
		case p.BMI >= 25:
			assert.NotEqual(t, catalog.Ectomorph, p.BodyType)
		}
	}
}

func TestAgeMultiplier(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{12, 0.8}, {17, 0.8}, {18, 1.0}, {24, 1.0}, {25, 0.9}, {34, 0.9}, {35, 0.75}, {50, 0.75},
	}
	for _, tt := range tests {
		if got := ageMultiplier(tt.age); got != tt.want {
			t.Errorf("ageMultiplier(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	src := newSource(1)
	values := []string{"a", "b", "c"}
	weights := []float64{0.5, 0.3, 0.2}

	got := src.sample(values, weights, 3)
	assert.ElementsMatch(t, values, got)
	assert.Equal(t, []string{"a", "b", "c"}, values, "input slice must not be modified")

	assert.Len(t, src.sample(values, weights, 10), 3)
}

func TestWeightedRespectsZeroWeight(t *testing.T) {
	src := newSource(99)
	for range 500 {
		assert.NotEqual(t, "never", src.weighted([]string{"never", "always"}, []float64{0, 1}))
	}
}

func TestIntRangeInclusive(t *testing.T) {
	src := newSource(4)
	seen := map[int]bool{}
	for range 1000 {
		v := src.intRange(0, 3)
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, 5, src.intRange(5, 5))
}

func TestField(t *testing.T) {
	p := Person{
		Age:            23,
		Height:         181,
		Weight:         72.4,
		BodyType:       catalog.Mesomorph,
		PreviousSports: []string{"Futbol", "Tenis"},
		SportYears:     6,
	}
	tests := []struct {
		name string
		want string
	}{
		{catalog.AttrAge, "23"},
		{catalog.AttrHeight, "181"},
		{catalog.AttrWeight, "72.4"},
		{catalog.AttrBodyType, catalog.Mesomorph},
		{catalog.AttrPreviousSports, "['Futbol', 'Tenis']"},
		{catalog.AttrSportYears, "6"},
	}
	for _, tt := range tests {
		if got := p.Field(tt.name); got != tt.want {
			t.Errorf("Field(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
