package catalog

var defaultAttributes = []AttributeSpec{
	{Name: AttrAge, Kind: Numeric, Group: Demographic, Min: 12, Max: 50, Description: "Age (years)", Importance: High},
	{Name: AttrSex, Kind: Categorical, Group: Demographic, Values: []string{SexMale, SexFemale}, Description: "Sex", Importance: Medium},
	{Name: AttrHeight, Kind: Numeric, Group: Demographic, Min: 140, Max: 220, Description: "Height (cm)", Importance: High},
	{Name: AttrWeight, Kind: Numeric, Group: Demographic, Min: 40, Max: 150, Description: "Weight (kg)", Importance: High},
	{Name: AttrBMI, Kind: Derived, Group: Demographic, Description: "Body mass index, kilo / (boy/100)^2", Importance: High},

	{Name: AttrBodyType, Kind: Categorical, Group: Physical, Values: bodyTypes, Description: "Body type", Importance: High},
	{Name: AttrMuscle, Kind: Numeric, Group: Physical, Min: 15, Max: 45, Description: "Muscle mass (%)", Importance: High},
	{Name: AttrFat, Kind: Numeric, Group: Physical, Min: 5, Max: 35, Description: "Body fat (%)", Importance: Medium},
	{Name: AttrBoneDensity, Kind: Categorical, Group: Physical, Values: []string{LevelLow, LevelMedium, LevelHigh}, Description: "Bone density", Importance: Medium},

	{Name: AttrSpeed, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Speed (1-10)", Importance: High},
	{Name: AttrStrength, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Strength (1-10)", Importance: High},
	{Name: AttrEndurance, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Endurance (1-10)", Importance: High},
	{Name: AttrFlexibility, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Flexibility (1-10)", Importance: Medium},
	{Name: AttrCoordination, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Coordination (1-10)", Importance: High},
	{Name: AttrBalance, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Balance (1-10)", Importance: Medium},
	{Name: AttrReaction, Kind: Numeric, Group: Performance, Min: 1, Max: 10, Description: "Reaction speed (1-10)", Importance: Medium},

	{Name: AttrFamilyHistory, Kind: Categorical, Group: Genetic, Values: []string{HistoryNo, HistoryYes}, Description: "Professional athlete in the family", Importance: Medium},
	{Name: AttrMotherActivity, Kind: Categorical, Group: Genetic, Values: []string{ParentSedentary, ParentActive, ParentAthlete}, Description: "Mother's activity level", Importance: Low},
	{Name: AttrFatherActivity, Kind: Categorical, Group: Genetic, Values: []string{ParentSedentary, ParentActive, ParentAthlete}, Description: "Father's activity level", Importance: Low},
	{Name: AttrHand, Kind: Categorical, Group: Genetic, Values: []string{HandRight, HandLeft, HandBoth}, Description: "Dominant hand", Importance: Low},

	{Name: AttrSportYears, Kind: Numeric, Group: Experience, Min: 0, Max: 30, Description: "Total sports experience (years)", Importance: High},
	{Name: AttrPreviousSports, Kind: MultiCategorical, Group: Experience, Values: pastSports, Description: "Sports practised before", Importance: Medium},
	{Name: AttrBestSport, Kind: Categorical, Group: Experience, Values: pastSports, Description: "Most successful sport", Importance: High},
	{Name: AttrInjury, Kind: Categorical, Group: Experience, Values: []string{InjuryNone, InjuryMinor, InjuryModerate, InjurySevere}, Description: "Sports injury history", Importance: Medium},

	{Name: AttrStress, Kind: Numeric, Group: Psychological, Min: 1, Max: 10, Description: "Stress tolerance (1-10)", Importance: Medium},
	{Name: AttrTeamPref, Kind: Categorical, Group: Psychological, Values: []string{PrefIndividual, PrefTeam, PrefMixed}, Description: "Team play preference", Importance: High},
	{Name: AttrDrive, Kind: Numeric, Group: Psychological, Min: 1, Max: 10, Description: "Competitive drive (1-10)", Importance: Medium},
	{Name: AttrConcentration, Kind: Numeric, Group: Psychological, Min: 1, Max: 10, Description: "Concentration (1-10)", Importance: Medium},

	{Name: AttrRegion, Kind: Categorical, Group: Environmental, Values: regions, Description: "Geographic region", Importance: Low},
	{Name: AttrEconomy, Kind: Categorical, Group: Environmental, Values: []string{LevelLow, LevelMedium, LevelHigh}, Description: "Socioeconomic status", Importance: Low},
	{Name: AttrFacility, Kind: Categorical, Group: Environmental, Values: []string{AccessHard, AccessMedium, AccessEasy}, Description: "Access to sports facilities", Importance: Low},
}

var defaultActivities = []ActivityProfile{
	{
		Name:               Football,
		KeyFeatures:        []string{AttrSpeed, AttrEndurance, AttrCoordination, AttrTeamPref},
		PreferredBodyTypes: []string{Mesomorph},
		Description:        "The most popular sport in Turkey",
		PopularityWeight:   0.30,
	},
	{
		Name:               Running,
		KeyFeatures:        []string{AttrSpeed, AttrEndurance, AttrHeight, AttrWeight},
		PreferredBodyTypes: []string{Ectomorph},
		Description:        "Running and track and field",
		PopularityWeight:   0.15,
	},
	{
		Name:               Basketball,
		KeyFeatures:        []string{AttrHeight, AttrSpeed, AttrCoordination, AttrTeamPref},
		PreferredBodyTypes: []string{Ectomorph, Mesomorph},
		Description:        "Second most popular team sport",
		PopularityWeight:   0.12,
	},
	{
		Name:               Volleyball,
		KeyFeatures:        []string{AttrHeight, AttrSpeed, AttrCoordination, AttrTeamPref},
		PreferredBodyTypes: []string{Ectomorph},
		Description:        "Especially popular among women",
		PopularityWeight:   0.10,
	},
	{
		Name:               Swimming,
		KeyFeatures:        []string{AttrHeight, AttrEndurance, AttrStrength, AttrFlexibility},
		PreferredBodyTypes: []string{Ectomorph, Mesomorph},
		Description:        "Popular in coastal regions",
		PopularityWeight:   0.08,
	},
	{
		Name:               Wrestling,
		KeyFeatures:        []string{AttrStrength, AttrEndurance, AttrBalance, AttrFlexibility},
		PreferredBodyTypes: []string{Mesomorph, Endomorph},
		Description:        "Traditional national sport",
		PopularityWeight:   0.08,
	},
	{
		Name:               Tennis,
		KeyFeatures:        []string{AttrSpeed, AttrCoordination, AttrFlexibility, AttrReaction},
		PreferredBodyTypes: []string{Mesomorph},
		Description:        "Popular in upper income groups",
		PopularityWeight:   0.06,
	},
	{
		Name:               Cycling,
		KeyFeatures:        []string{AttrEndurance, AttrStrength, AttrBalance},
		PreferredBodyTypes: []string{Ectomorph, Mesomorph},
		Description:        "Popular as recreation",
		PopularityWeight:   0.05,
	},
	{
		Name:               Gymnastics,
		KeyFeatures:        []string{AttrFlexibility, AttrCoordination, AttrBalance, AttrStrength},
		PreferredBodyTypes: []string{Ectomorph},
		Description:        "Popular at young ages",
		PopularityWeight:   0.04,
	},
	{
		Name:               Boxing,
		KeyFeatures:        []string{AttrStrength, AttrSpeed, AttrReaction, AttrEndurance},
		PreferredBodyTypes: []string{Mesomorph},
		Description:        "Traditional combat sport",
		PopularityWeight:   0.03,
	},
}

var builtin = mustNew(defaultAttributes, defaultActivities)

// Default returns the built-in catalog.
func Default() *Catalog {
	return builtin
}

func mustNew(attributes []AttributeSpec, activities []ActivityProfile) *Catalog {
	c, err := New(attributes, activities)
	if err != nil {
		panic("catalog: invalid built-in catalog: " + err.Error())
	}
	return c
}
