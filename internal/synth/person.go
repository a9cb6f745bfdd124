package synth

import (
	"strconv"
	"strings"

	"github.com/sbenjam1n/talentgen/internal/catalog"
)

// Person is one synthesized attribute set. Field tags carry the catalog
// attribute names.
type Person struct {
	Age    int     `json:"yas" validate:"gte=12,lte=50"`
	Sex    string  `json:"cinsiyet" validate:"oneof=Erkek Kadın"`
	Height float64 `json:"boy" validate:"gte=140,lte=220"`
	Weight float64 `json:"kilo" validate:"gte=40,lte=150"`
	BMI    float64 `json:"bmi"`

	BodyType    string  `json:"vucut_tipi" validate:"oneof=Ektomorf Mezomorf Endomorf"`
	Muscle      float64 `json:"kas_orani" validate:"gte=15,lte=45"`
	Fat         float64 `json:"yag_orani" validate:"gte=5,lte=35"`
	BoneDensity string  `json:"kemik_yogunlugu"`

	Speed        float64 `json:"hiz" validate:"gte=1,lte=10"`
	Strength     float64 `json:"kuvvet" validate:"gte=1,lte=10"`
	Endurance    float64 `json:"dayaniklilik" validate:"gte=1,lte=10"`
	Flexibility  float64 `json:"esneklik" validate:"gte=1,lte=10"`
	Coordination float64 `json:"koordinasyon" validate:"gte=1,lte=10"`
	Balance      float64 `json:"denge" validate:"gte=1,lte=10"`
	Reaction     float64 `json:"reaksiyon_hizi" validate:"gte=1,lte=10"`

	FamilyHistory  string `json:"ailevi_spor_gecmisi"`
	MotherActivity string `json:"anne_spor_durumu"`
	FatherActivity string `json:"baba_spor_durumu"`
	Hand           string `json:"dominant_el"`

	SportYears     int      `json:"spor_yili" validate:"gte=0,lte=30"`
	PreviousSports []string `json:"onceki_sporlar"`
	BestSport      string   `json:"en_basarili_spor"`
	Injury         string   `json:"yaralanma_gecmisi"`

	Stress        float64 `json:"stres_toleransi" validate:"gte=1,lte=10"`
	TeamPref      string  `json:"takım_oyunu_tercihi" validate:"oneof=Bireysel Takım Karma"`
	Drive         float64 `json:"yarışma_tutkusu" validate:"gte=1,lte=10"`
	Concentration float64 `json:"konsantrasyon" validate:"gte=1,lte=10"`

	Region   string `json:"coğrafi_konum"`
	Economy  string `json:"ekonomik_durum"`
	Facility string `json:"tesis_erisimi"`
}

// ComputeBMI derives the body mass index from height (cm) and weight (kg).
func ComputeBMI(heightCM, weightKG float64) float64 {
	m := heightCM / 100
	return weightKG / (m * m)
}

// Numeric returns the value of a numeric or derived attribute.
func (p *Person) Numeric(name string) (float64, bool) {
	switch name {
	case catalog.AttrAge:
		return float64(p.Age), true
	case catalog.AttrHeight:
		return p.Height, true
	case catalog.AttrWeight:
		return p.Weight, true
	case catalog.AttrBMI:
		return p.BMI, true
	case catalog.AttrMuscle:
		return p.Muscle, true
	case catalog.AttrFat:
		return p.Fat, true
	case catalog.AttrSpeed:
		return p.Speed, true
	case catalog.AttrStrength:
		return p.Strength, true
	case catalog.AttrEndurance:
		return p.Endurance, true
	case catalog.AttrFlexibility:
		return p.Flexibility, true
	case catalog.AttrCoordination:
		return p.Coordination, true
	case catalog.AttrBalance:
		return p.Balance, true
	case catalog.AttrReaction:
		return p.Reaction, true
	case catalog.AttrSportYears:
		return float64(p.SportYears), true
	case catalog.AttrStress:
		return p.Stress, true
	case catalog.AttrDrive:
		return p.Drive, true
	case catalog.AttrConcentration:
		return p.Concentration, true
	}
	return 0, false
}

// Categorical returns the value of a single-valued categorical attribute.
func (p *Person) Categorical(name string) (string, bool) {
	switch name {
	case catalog.AttrSex:
		return p.Sex, true
	case catalog.AttrBodyType:
		return p.BodyType, true
	case catalog.AttrBoneDensity:
		return p.BoneDensity, true
	case catalog.AttrFamilyHistory:
		return p.FamilyHistory, true
	case catalog.AttrMotherActivity:
		return p.MotherActivity, true
	case catalog.AttrFatherActivity:
		return p.FatherActivity, true
	case catalog.AttrHand:
		return p.Hand, true
	case catalog.AttrBestSport:
		return p.BestSport, true
	case catalog.AttrInjury:
		return p.Injury, true
	case catalog.AttrTeamPref:
		return p.TeamPref, true
	case catalog.AttrRegion:
		return p.Region, true
	case catalog.AttrEconomy:
		return p.Economy, true
	case catalog.AttrFacility:
		return p.Facility, true
	}
	return "", false
}

// Field encodes one attribute as text: numbers in shortest decimal form,
// categories verbatim, multi-valued attributes as a bracketed literal list.
func (p *Person) Field(name string) string {
	if name == catalog.AttrPreviousSports {
		return FormatList(p.PreviousSports)
	}
	if name == catalog.AttrAge {
		return strconv.Itoa(p.Age)
	}
	if name == catalog.AttrSportYears {
		return strconv.Itoa(p.SportYears)
	}
	if v, ok := p.Numeric(name); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	v, _ := p.Categorical(name)
	return v
}

// FormatList renders values as ['a', 'b'].
func FormatList(values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(v)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}
