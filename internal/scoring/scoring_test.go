package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

func activity(t *testing.T, name string) catalog.ActivityProfile {
	t.Helper()
	a, ok := catalog.Default().Activity(name)
	require.True(t, ok, "activity %s missing", name)
	return a
}

func athlete() synth.Person {
	p := DefaultPerson()
	p.Speed = 7
	p.Endurance = 6
	p.Coordination = 5
	p.Height = 190
	p.Weight = 65
	p.BMI = synth.ComputeBMI(p.Height, p.Weight)
	return p
}

func TestActivityScore(t *testing.T) {
	tests := []struct {
		name     string
		activity string
		mutate   func(p *synth.Person)
		want     float64
	}{
		{"team player in team sport", catalog.Football, func(p *synth.Person) {
			p.TeamPref = catalog.PrefTeam
		}, 74.5},
		{"individual player in team sport", catalog.Football, func(p *synth.Person) {
			p.TeamPref = catalog.PrefIndividual
		}, 67.3},
		{"non preferred body type", catalog.Football, func(p *synth.Person) {
			p.TeamPref = catalog.PrefTeam
			p.BodyType = catalog.Ectomorph
		}, 56.4},
		{"height and weight normalization", catalog.Running, func(p *synth.Person) {
			p.BodyType = catalog.Ectomorph
		}, 74.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := athlete()
			tt.mutate(&p)
			assert.Equal(t, tt.want, ActivityScore(&p, activity(t, tt.activity)))
		})
	}
}

func TestTeamPreference(t *testing.T) {
	tests := []struct {
		pref     string
		activity string
		want     float64
	}{
		{catalog.PrefTeam, catalog.Football, 8},
		{catalog.PrefMixed, catalog.Basketball, 8},
		{catalog.PrefIndividual, catalog.Volleyball, 4},
		{catalog.PrefIndividual, catalog.Tennis, 8},
		{catalog.PrefMixed, catalog.Boxing, 8},
		{catalog.PrefTeam, catalog.Swimming, 4},
	}
	for _, tt := range tests {
		if got := TeamPreference(tt.pref, tt.activity); got != tt.want {
			t.Errorf("TeamPreference(%q, %q) = %v, want %v", tt.pref, tt.activity, got, tt.want)
		}
	}
}

func TestBodyTypeBonus(t *testing.T) {
	wrestling := activity(t, catalog.Wrestling)
	assert.Equal(t, 15.0, BodyTypeBonus(catalog.Endomorph, wrestling))
	assert.Equal(t, 15.0, BodyTypeBonus(catalog.Mesomorph, wrestling))
	assert.Equal(t, 5.0, BodyTypeBonus(catalog.Ectomorph, wrestling))
}

func TestHeightWeightContributionClamped(t *testing.T) {
	p := DefaultPerson()
	tests := []struct {
		feature string
		height  float64
		weight  float64
		want    float64
	}{
		{catalog.AttrHeight, 160, 70, 5},
		{catalog.AttrHeight, 220, 70, 9},
		{catalog.AttrHeight, 140, 70, 5 - 40.0/30},
		{catalog.AttrWeight, 170, 80, 5},
		{catalog.AttrWeight, 170, 40, 5 + 80.0/30},
		{catalog.AttrWeight, 170, 150, 5 - 140.0/30},
	}
	for _, tt := range tests {
		p.Height, p.Weight = tt.height, tt.weight
		got, ok := FeatureContribution(&p, tt.feature, catalog.Running)
		require.True(t, ok)
		assert.InDelta(t, tt.want, got, 1e-9, "%s h=%v w=%v", tt.feature, tt.height, tt.weight)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 10.0)
	}
}

func TestClamp10(t *testing.T) {
	assert.Equal(t, 10.0, clamp10(11))
	assert.Equal(t, 0.0, clamp10(-0.3))
	assert.Equal(t, 4.2, clamp10(4.2))
}

func TestActivityWithoutKeyFeatures(t *testing.T) {
	p := DefaultPerson()
	a := catalog.ActivityProfile{Name: "Satranç", PreferredBodyTypes: []string{catalog.Mesomorph}}
	assert.Equal(t, 100.0, ActivityScore(&p, a))

	a.PreferredBodyTypes = nil
	assert.Equal(t, 33.3, ActivityScore(&p, a))
}

func TestScoresInRangeForGeneratedPeople(t *testing.T) {
	s := synth.New(21)
	scorer := New(catalog.Default())
	for range 500 {
		p := s.Person()
		scores := scorer.Score(&p)
		require.Len(t, scores, 10)
		for _, sc := range scores {
			require.GreaterOrEqual(t, sc.Value, 0.0)
			require.LessOrEqual(t, sc.Value, 100.0)
		}
	}
}

func TestBestTieBreaksByCatalogOrder(t *testing.T) {
	scores := Scores{{"A", 50}, {"B", 60}, {"C", 60}, {"D", 10}}
	name, value := scores.Best()
	assert.Equal(t, "B", name)
	assert.Equal(t, 60.0, value)

	name, value = Scores{}.Best()
	assert.Empty(t, name)
	assert.Zero(t, value)
}

func TestScoresLookup(t *testing.T) {
	scores := Scores{{"A", 50}, {"B", 60}}
	v, ok := scores.Get("B")
	assert.True(t, ok)
	assert.Equal(t, 60.0, v)
	_, ok = scores.Get("Z")
	assert.False(t, ok)
	assert.Equal(t, map[string]float64{"A": 50, "B": 60}, scores.Map())
}

func TestPredict(t *testing.T) {
	pr := NewPredictor(catalog.Default())

	p := DefaultPerson()
	p.Strength = 9
	p.Reaction = 9
	p.Speed = 8
	p.Endurance = 8
	p.BMI = 0

	pred, err := pr.Predict(p)
	require.NoError(t, err)
	assert.Equal(t, catalog.Boxing, pred.Activity)
	assert.Len(t, pred.Scores, 10)
	best, _ := pred.Scores.Get(pred.Activity)
	assert.Equal(t, best, pred.Score)
}

func TestPredictRejectsOutOfRange(t *testing.T) {
	pr := NewPredictor(catalog.Default())

	p := DefaultPerson()
	p.Height = 300
	_, err := pr.Predict(p)
	require.Error(t, err)

	p = DefaultPerson()
	p.TeamPref = "Solo"
	_, err = pr.Predict(p)
	require.Error(t, err)
}

func TestPredictRejectsValuesOutsideCatalog(t *testing.T) {
	pr := NewPredictor(catalog.Default())

	tests := []struct {
		name string
		set  func(p *synth.Person)
	}{
		{"region", func(p *synth.Person) { p.Region = "Şehir" }},
		{"bone density", func(p *synth.Person) { p.BoneDensity = "bogus" }},
		{"hand", func(p *synth.Person) { p.Hand = "Foot" }},
		{"injury", func(p *synth.Person) { p.Injury = "Catastrophic" }},
		{"mother", func(p *synth.Person) { p.MotherActivity = "Olimpik" }},
		{"economy", func(p *synth.Person) { p.Economy = "Zengin" }},
		{"facility", func(p *synth.Person) { p.Facility = "Yok" }},
		{"best sport", func(p *synth.Person) { p.BestSport = "Curling" }},
		{"previous sports", func(p *synth.Person) { p.PreviousSports = []string{catalog.Football, "Curling"} }},
		{"no previous sports", func(p *synth.Person) { p.PreviousSports = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPerson()
			tt.set(&p)
			_, err := pr.Predict(p)
			require.ErrorIs(t, err, ErrUnknownValue)
		})
	}
}

func TestScorerDoesNotCopyCatalogPerRecord(t *testing.T) {
	s := New(catalog.Default())
	p := DefaultPerson()
	allocs := testing.AllocsPerRun(100, func() { s.Score(&p) })
	assert.LessOrEqual(t, allocs, 1.0)
}
