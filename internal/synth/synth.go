// Package synth generates person records by chaining seven conditional
// sampling stages. Each stage reads what the earlier stages produced.
//
// A Synthesizer owns its random source; two synthesizers built from the same
// seed produce the same sequence of people. Values that leave their catalog
// range are clamped, never reported.
package synth

import (
	"math"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

// Synthesizer produces Person values from a seeded random source.
type Synthesizer struct {
	rnd *source
	cat *catalog.Catalog
}

// New creates a Synthesizer seeded with seed over the built-in catalog.
func New(seed int64) *Synthesizer {
	return NewWithCatalog(seed, catalog.Default())
}

// NewWithCatalog creates a Synthesizer that clamps against cat.
func NewWithCatalog(seed int64, cat *catalog.Catalog) *Synthesizer {
	return &Synthesizer{rnd: newSource(seed), cat: cat}
}

// Person synthesizes the next person.
func (s *Synthesizer) Person() Person {
	var p Person
	s.demographic(&p)
	s.physical(&p)
	s.performance(&p)
	s.genetic(&p)
	s.experience(&p)
	s.psychological(&p)
	s.environmental(&p)
	return p
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *Synthesizer) clamp(name string, v float64) float64 {
	return s.cat.Clamp(name, v)
}

func (s *Synthesizer) demographic(p *Person) {
	p.Age = s.rnd.intRange(12, 50)
	p.Sex = s.rnd.choice([]string{catalog.SexMale, catalog.SexFemale})

	var height, weight float64
	if p.Sex == catalog.SexMale {
		height = s.rnd.normal(173.7, 7.5)
		weight = (height - 100) * 0.85
	} else {
		height = s.rnd.normal(161.4, 6.5)
		weight = (height - 100) * 0.8
	}

	switch {
	case p.Age < 18:
		weight *= 0.85
	case p.Age > 35:
		weight *= 1.1
	}

	p.Height = math.Round(s.clamp(catalog.AttrHeight, height))
	p.Weight = round1(s.clamp(catalog.AttrWeight, weight+s.rnd.uniform(-10, 10)))
	// Derived from the stored values so bmi always agrees with boy and kilo.
	p.BMI = ComputeBMI(p.Height, p.Weight)
}

func (s *Synthesizer) physical(p *Person) {
	var muscle, fat float64
	switch {
	case p.BMI < 20:
		p.BodyType = s.rnd.weighted([]string{catalog.Ectomorph, catalog.Mesomorph}, []float64{0.7, 0.3})
		muscle = s.rnd.uniform(15, 25)
		fat = s.rnd.uniform(5, 15)
	case p.BMI < 25:
		p.BodyType = s.rnd.weighted(bodyTypes, []float64{0.2, 0.6, 0.2})
		muscle = s.rnd.uniform(20, 35)
		fat = s.rnd.uniform(10, 20)
	default:
		p.BodyType = s.rnd.weighted([]string{catalog.Mesomorph, catalog.Endomorph}, []float64{0.4, 0.6})
		muscle = s.rnd.uniform(25, 40)
		fat = s.rnd.uniform(15, 30)
	}

	if p.Sex == catalog.SexFemale {
		muscle *= 0.8
		fat *= 1.2
	}
	if p.Age > 30 {
		muscle *= 0.95
		fat *= 1.1
	}

	p.Muscle = round1(s.clamp(catalog.AttrMuscle, muscle))
	p.Fat = round1(s.clamp(catalog.AttrFat, fat))
	p.BoneDensity = s.rnd.choice([]string{catalog.LevelLow, catalog.LevelMedium, catalog.LevelHigh})
}

// performanceBase holds the body-type baselines for speed, strength,
// endurance and flexibility.
type performanceBase struct {
	speed, strength, endurance, flexibility float64
}

var performanceBases = map[string]performanceBase{
	catalog.Ectomorph: {speed: 7, strength: 5, endurance: 8, flexibility: 7},
	catalog.Mesomorph: {speed: 6, strength: 8, endurance: 6, flexibility: 6},
	catalog.Endomorph: {speed: 4, strength: 7, endurance: 5, flexibility: 5},
}

func ageMultiplier(age int) float64 {
	switch {
	case age < 18:
		return 0.8
	case age < 25:
		return 1.0
	case age < 35:
		return 0.9
	default:
		return 0.75
	}
}

func (s *Synthesizer) performance(p *Person) {
	base := performanceBases[p.BodyType]
	mult := ageMultiplier(p.Age)

	if p.Sex == catalog.SexFemale {
		base.strength *= 0.8
		base.flexibility *= 1.2
	}
	muscleMult := p.Muscle / 25

	p.Speed = s.trait(catalog.AttrSpeed, base.speed*mult+s.rnd.uniform(-1, 1))
	p.Strength = s.trait(catalog.AttrStrength, base.strength*mult*muscleMult+s.rnd.uniform(-1, 1))
	p.Endurance = s.trait(catalog.AttrEndurance, base.endurance*mult+s.rnd.uniform(-1, 1))
	p.Flexibility = s.trait(catalog.AttrFlexibility, base.flexibility*mult+s.rnd.uniform(-1, 1))
	p.Coordination = s.trait(catalog.AttrCoordination, s.rnd.uniform(4, 8)*mult)
	p.Balance = s.trait(catalog.AttrBalance, s.rnd.uniform(4, 8)*mult)
	p.Reaction = s.trait(catalog.AttrReaction, s.rnd.uniform(4, 8)*mult)
}

func (s *Synthesizer) trait(name string, v float64) float64 {
	return round1(s.clamp(name, v))
}

var parentLevels = []string{catalog.ParentSedentary, catalog.ParentActive, catalog.ParentAthlete}

var bodyTypes = catalog.BodyTypes()

func (s *Synthesizer) genetic(p *Person) {
	p.FamilyHistory = s.rnd.weighted([]string{catalog.HistoryNo, catalog.HistoryYes}, []float64{0.75, 0.25})

	if p.FamilyHistory == catalog.HistoryYes {
		p.MotherActivity = s.rnd.weighted(parentLevels, []float64{0.40, 0.45, 0.15})
		p.FatherActivity = s.rnd.weighted(parentLevels, []float64{0.25, 0.55, 0.20})
	} else {
		p.MotherActivity = s.rnd.weighted(parentLevels, []float64{0.65, 0.30, 0.05})
		p.FatherActivity = s.rnd.weighted(parentLevels, []float64{0.50, 0.40, 0.10})
	}

	p.Hand = s.rnd.weighted([]string{catalog.HandRight, catalog.HandLeft}, []float64{0.90, 0.10})
}

// Sports practised before, weighted by national popularity.
var (
	pastSportPool = []string{
		"Futbol", "Basketbol", "Voleybol", "Yüzme", "Atletizm",
		"Tenis", "Güreş", "Bisiklet", "Jimnastik", "Boks",
	}
	pastSportWeights = []float64{0.30, 0.15, 0.12, 0.10, 0.08, 0.07, 0.06, 0.05, 0.04, 0.03}
)

func (s *Synthesizer) experience(p *Person) {
	spec, _ := s.cat.Attribute(catalog.AttrSportYears)
	maxYears := max(0, p.Age-10)
	if spec.Max > 0 {
		maxYears = min(maxYears, int(spec.Max))
	}
	p.SportYears = s.rnd.intRange(0, maxYears)

	if p.SportYears == 0 {
		p.PreviousSports = []string{catalog.NoSport}
		p.BestSport = catalog.NoSport
		p.Injury = catalog.InjuryNone
		return
	}

	n := min(s.rnd.intRange(1, 4), p.SportYears)
	p.PreviousSports = s.rnd.sample(pastSportPool, pastSportWeights, n)
	p.BestSport = s.rnd.choice(p.PreviousSports)

	injuries := []string{catalog.InjuryNone, catalog.InjuryMinor}
	if p.SportYears > 5 {
		injuries = append(injuries, catalog.InjuryModerate)
	}
	if p.SportYears > 10 {
		injuries = append(injuries, catalog.InjurySevere)
	}
	p.Injury = s.rnd.choice(injuries)
}

func (s *Synthesizer) psychological(p *Person) {
	stressBase := math.Min(8, 4+float64(p.Age-12)*0.1)
	p.Stress = s.trait(catalog.AttrStress, stressBase+s.rnd.uniform(-2, 2))

	p.TeamPref = s.rnd.choice([]string{catalog.PrefIndividual, catalog.PrefTeam, catalog.PrefMixed})

	avg := (p.Speed + p.Strength + p.Endurance) / 3
	p.Drive = s.trait(catalog.AttrDrive, avg*0.8+s.rnd.uniform(-2, 2))

	p.Concentration = s.trait(catalog.AttrConcentration, s.rnd.uniform(4, 8))
}

var (
	regions         = catalog.Regions()
	regionWeights   = []float64{0.25, 0.15, 0.12, 0.18, 0.12, 0.08, 0.10}
	economyLevels   = []string{catalog.LevelLow, catalog.LevelMedium, catalog.LevelHigh}
	economyWeights  = []float64{0.35, 0.50, 0.15}
	facilityLevels  = []string{catalog.AccessHard, catalog.AccessMedium, catalog.AccessEasy}
	facilityWeights = []float64{0.30, 0.45, 0.25}
)

func (s *Synthesizer) environmental(p *Person) {
	p.Region = s.rnd.weighted(regions, regionWeights)
	p.Economy = s.rnd.weighted(economyLevels, economyWeights)
	p.Facility = s.rnd.weighted(facilityLevels, facilityWeights)
}
