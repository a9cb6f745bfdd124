package catalog

import "slices"

// Attribute names. These are the column headers of the persisted dataset and
// must stay stable across releases; the training pipeline keys on them.
const (
	AttrAge    = "yas"
	AttrSex    = "cinsiyet"
	AttrHeight = "boy"
	AttrWeight = "kilo"
	AttrBMI    = "bmi"

	AttrBodyType    = "vucut_tipi"
	AttrMuscle      = "kas_orani"
	AttrFat         = "yag_orani"
	AttrBoneDensity = "kemik_yogunlugu"

	AttrSpeed        = "hiz"
	AttrStrength     = "kuvvet"
	AttrEndurance    = "dayaniklilik"
	AttrFlexibility  = "esneklik"
	AttrCoordination = "koordinasyon"
	AttrBalance      = "denge"
	AttrReaction     = "reaksiyon_hizi"

	AttrFamilyHistory  = "ailevi_spor_gecmisi"
	AttrMotherActivity = "anne_spor_durumu"
	AttrFatherActivity = "baba_spor_durumu"
	AttrHand           = "dominant_el"

	AttrSportYears     = "spor_yili"
	AttrPreviousSports = "onceki_sporlar"
	AttrBestSport      = "en_basarili_spor"
	AttrInjury         = "yaralanma_gecmisi"

	AttrStress        = "stres_toleransi"
	AttrTeamPref      = "takım_oyunu_tercihi"
	AttrDrive         = "yarışma_tutkusu"
	AttrConcentration = "konsantrasyon"

	AttrRegion   = "coğrafi_konum"
	AttrEconomy  = "ekonomik_durum"
	AttrFacility = "tesis_erisimi"

	// ColRecommended holds the arg-max activity; it is the label column.
	ColRecommended = "tavsiye_edilen_spor"
)

// Categorical values.
const (
	SexMale   = "Erkek"
	SexFemale = "Kadın"

	Ectomorph = "Ektomorf"
	Mesomorph = "Mezomorf"
	Endomorph = "Endomorf"

	LevelLow    = "Düşük"
	LevelMedium = "Orta"
	LevelHigh   = "Yüksek"

	HistoryNo  = "Yok"
	HistoryYes = "Var"

	ParentSedentary = "Sedanter"
	ParentActive    = "Aktif"
	ParentAthlete   = "Sporcu"

	HandRight = "Sağ"
	HandLeft  = "Sol"
	HandBoth  = "Ambidekstır"

	InjuryNone     = "Yok"
	InjuryMinor    = "Hafif"
	InjuryModerate = "Orta"
	InjurySevere   = "Ağır"

	PrefIndividual = "Bireysel"
	PrefTeam       = "Takım"
	PrefMixed      = "Karma"

	AccessHard   = "Zor"
	AccessMedium = "Orta"
	AccessEasy   = "Kolay"

	// NoSport marks an empty experience history.
	NoSport = "Hiçbiri"
)

// Activity names, in catalog order.
const (
	Football   = "Futbol"
	Running    = "Koşu/Atletizm"
	Basketball = "Basketbol"
	Volleyball = "Voleybol"
	Swimming   = "Yüzme"
	Wrestling  = "Güreş"
	Tennis     = "Tenis"
	Cycling    = "Bisiklet"
	Gymnastics = "Jimnastik"
	Boxing     = "Boks"
)

// DefaultRegion is the first region of the sampling table.
const DefaultRegion = "Marmara"

var (
	regions = []string{
		DefaultRegion, "Ege", "Akdeniz", "İç Anadolu", "Karadeniz", "Doğu Anadolu", "Güneydoğu Anadolu",
	}

	bodyTypes = []string{Ectomorph, Mesomorph, Endomorph}

	// Athletics is recorded as a single discipline here, unlike the
	// activity catalog.
	pastSports = []string{
		"Futbol", "Basketbol", "Voleybol", "Tenis", "Yüzme",
		"Atletizm", "Jimnastik", "Boks", "Güreş", "Bisiklet", NoSport,
	}

	teamActivities = []string{Football, Basketball, Volleyball}
)

// Regions returns the seven geographic regions in sampling-table order.
func Regions() []string { return slices.Clone(regions) }

// BodyTypes returns the body-type categories.
func BodyTypes() []string { return slices.Clone(bodyTypes) }

// PastSports returns the vocabulary of the experience history fields.
func PastSports() []string { return slices.Clone(pastSports) }

// TeamActivities returns the fixed subset of activities played in teams.
func TeamActivities() []string { return slices.Clone(teamActivities) }

// IsTeamActivity reports whether the activity belongs to the team subset.
func IsTeamActivity(name string) bool {
	return slices.Contains(teamActivities, name)
}
