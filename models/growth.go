package models

// GrowthIndicators summarise recent economic trends for a metro area.
type GrowthIndicators struct {
	EmploymentGrowth string
	GDPGrowth        string
	PopulationTrend  string
}

// GrowthArea is one economically growing metro area within a state.
type GrowthArea struct {
	Area       string
	Cities     []string
	Indicators GrowthIndicators
	KeySectors []string
}
