package scoring

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/synth"
)

// Prediction is the scorer's answer for a single ad hoc person.
type Prediction struct {
	Activity string  `json:"activity"`
	Score    float64 `json:"score"`
	Scores   Scores  `json:"scores"`
}

// DefaultPerson returns the values used for attributes an interactive caller
// did not supply. Height and weight sit at the input form's defaults.
func DefaultPerson() synth.Person {
	p := synth.Person{
		Age:            25,
		Sex:            catalog.SexMale,
		Height:         170,
		Weight:         70,
		BodyType:       catalog.Mesomorph,
		Muscle:         25,
		Fat:            15,
		BoneDensity:    catalog.LevelMedium,
		Speed:          5,
		Strength:       5,
		Endurance:      5,
		Flexibility:    5,
		Coordination:   5,
		Balance:        5,
		Reaction:       5,
		FamilyHistory:  catalog.HistoryNo,
		MotherActivity: catalog.ParentActive,
		FatherActivity: catalog.ParentActive,
		Hand:           catalog.HandRight,
		SportYears:     5,
		PreviousSports: []string{catalog.Football},
		BestSport:      catalog.Football,
		Injury:         catalog.InjuryNone,
		Stress:         5,
		TeamPref:       catalog.PrefIndividual,
		Drive:          5,
		Concentration:  5,
		Region:         catalog.DefaultRegion,
		Economy:        catalog.LevelMedium,
		Facility:       catalog.AccessMedium,
	}
	p.BMI = synth.ComputeBMI(p.Height, p.Weight)
	return p
}

// ErrUnknownValue is returned for categorical values the catalog does not list.
var ErrUnknownValue = errors.New("value not in catalog")

// Predictor is the scoring fallback used when no trained model is available.
type Predictor struct {
	scorer     *Scorer
	attributes []catalog.AttributeSpec
	validate   *validator.Validate
}

// NewPredictor creates a Predictor over cat.
func NewPredictor(cat *catalog.Catalog) *Predictor {
	return &Predictor{scorer: New(cat), attributes: cat.Attributes(), validate: validator.New()}
}

// Predict validates p, re-derives its BMI and returns the best activity
// together with every activity score.
func (pr *Predictor) Predict(p synth.Person) (*Prediction, error) {
	if err := pr.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid person: %w", err)
	}
	if err := pr.checkCategories(&p); err != nil {
		return nil, fmt.Errorf("invalid person: %w", err)
	}
	p.BMI = synth.ComputeBMI(p.Height, p.Weight)

	scores := pr.scorer.Score(&p)
	best, score := scores.Best()
	return &Prediction{Activity: best, Score: score, Scores: scores}, nil
}

func (pr *Predictor) checkCategories(p *synth.Person) error {
	for _, spec := range pr.attributes {
		switch spec.Kind {
		case catalog.Categorical:
			v, ok := p.Categorical(spec.Name)
			if ok && !spec.Allows(v) {
				return fmt.Errorf("%s=%q: %w", spec.Name, v, ErrUnknownValue)
			}
		case catalog.MultiCategorical:
			if spec.Name != catalog.AttrPreviousSports {
				continue
			}
			if len(p.PreviousSports) == 0 {
				return fmt.Errorf("%s is empty: %w", spec.Name, ErrUnknownValue)
			}
			for _, v := range p.PreviousSports {
				if !spec.Allows(v) {
					return fmt.Errorf("%s=%q: %w", spec.Name, v, ErrUnknownValue)
				}
			}
		}
	}
	return nil
}
