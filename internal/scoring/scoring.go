// Package scoring computes per-activity compatibility scores.
//
// For every key feature of an activity a contribution in [0, 10] is added and
// 10 is added to the attainable maximum. Height and weight are normalized
// around fixed midpoints, team preference scores 8 or 4 depending on whether
// it matches the activity's team or individual character, and every other
// feature contributes its raw 1-10 value. A body-type bonus of 15 (preferred)
// or 5 (otherwise) out of 15 is added last. The final score is
// score/max*100 rounded to one decimal.
package scoring

import (
	"math"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

const (
	featureMax = 10.0

	bodyTypeMax       = 15.0
	bodyTypePreferred = 15.0
	bodyTypeOther     = 5.0

	prefMatch    = 8.0
	prefMismatch = 4.0

	heightMid    = 160.0
	weightTarget = 80.0
	spread       = 30.0
)

// Score is the compatibility of one person with one activity.
type Score struct {
	Activity string  `json:"activity"`
	Value    float64 `json:"score"`
}

// Scores holds one Score per catalog activity, in catalog order.
type Scores []Score

// Map returns the scores keyed by activity name.
func (s Scores) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, sc := range s {
		m[sc.Activity] = sc.Value
	}
	return m
}

// Get returns the score of the named activity.
func (s Scores) Get(activity string) (float64, bool) {
	for _, sc := range s {
		if sc.Activity == activity {
			return sc.Value, true
		}
	}
	return 0, false
}

// Best returns the highest scoring activity. On equal scores the activity
// that comes first in catalog order wins. Best of an empty set is ("", 0).
func (s Scores) Best() (string, float64) {
	if len(s) == 0 {
		return "", 0
	}
	best := s[0]
	for _, sc := range s[1:] {
		if sc.Value > best.Value {
			best = sc
		}
	}
	return best.Activity, best.Value
}

// Scorer scores people against a catalog.
type Scorer struct {
	activities []catalog.ActivityProfile
}

// New creates a Scorer over cat.
func New(cat *catalog.Catalog) *Scorer {
	return &Scorer{activities: cat.Activities()}
}

// Score computes the score of p for every activity in the catalog.
func (s *Scorer) Score(p *synth.Person) Scores {
	out := make(Scores, len(s.activities))
	for i, a := range s.activities {
		out[i] = Score{Activity: a.Name, Value: ActivityScore(p, a)}
	}
	return out
}

// ActivityScore computes the score of p for a single activity.
func ActivityScore(p *synth.Person, a catalog.ActivityProfile) float64 {
	var score, maxScore float64
	for _, f := range a.KeyFeatures {
		c, ok := FeatureContribution(p, f, a.Name)
		if !ok {
			continue
		}
		score += c
		maxScore += featureMax
	}

	score += BodyTypeBonus(p.BodyType, a)
	maxScore += bodyTypeMax

	if maxScore == 0 {
		return 0
	}
	return math.Round(score/maxScore*100*10) / 10
}

// FeatureContribution returns the 0-10 contribution of one key feature.
// ok is false for attributes the person cannot express numerically.
func FeatureContribution(p *synth.Person, feature, activity string) (float64, bool) {
	switch feature {
	case catalog.AttrHeight:
		return clamp10(5 + (p.Height-heightMid)/spread*2), true
	case catalog.AttrWeight:
		return clamp10(5 + (weightTarget-p.Weight)/spread*2), true
	case catalog.AttrTeamPref:
		return TeamPreference(p.TeamPref, activity), true
	}
	return p.Numeric(feature)
}

// TeamPreference scores how well a preference suits the activity: team
// activities reward team or mixed players, all others individual or mixed.
func TeamPreference(pref, activity string) float64 {
	if catalog.IsTeamActivity(activity) {
		if pref == catalog.PrefTeam || pref == catalog.PrefMixed {
			return prefMatch
		}
		return prefMismatch
	}
	if pref == catalog.PrefIndividual || pref == catalog.PrefMixed {
		return prefMatch
	}
	return prefMismatch
}

// BodyTypeBonus returns 15 for a preferred body type and 5 otherwise.
func BodyTypeBonus(bodyType string, a catalog.ActivityProfile) float64 {
	if a.Prefers(bodyType) {
		return bodyTypePreferred
	}
	return bodyTypeOther
}

func clamp10(v float64) float64 {
	return math.Max(0, math.Min(featureMax, v))
}
