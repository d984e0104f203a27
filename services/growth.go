package services

import (
	"fmt"
	"sort"
	"strings"

	"vrm-crawler/models"
)

// growthAreasData maps state codes to their top growing metro areas, based
// on recent employment growth, GDP growth, and population trends.
var growthAreasData = map[string][]models.GrowthArea{
	"VA": {
		{
			Area:   "Northern Virginia",
			Cities: []string{"Arlington", "Alexandria", "Fairfax"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "High",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Technology", "Government", "Professional Services"},
		},
		{
			Area:   "Richmond Metro",
			Cities: []string{"Richmond", "Henrico", "Chesterfield"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Medium",
				GDPGrowth:        "Medium",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Finance", "Healthcare", "Manufacturing"},
		},
	},
	"TX": {
		{
			Area:   "Austin Metro",
			Cities: []string{"Austin", "Round Rock", "Cedar Park"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Very High",
				GDPGrowth:        "Very High",
				PopulationTrend:  "Rapidly Growing",
			},
			KeySectors: []string{"Technology", "Healthcare", "Education"},
		},
		{
			Area:   "Dallas-Fort Worth",
			Cities: []string{"Dallas", "Fort Worth", "Plano", "Irving"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "High",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Technology", "Finance", "Healthcare"},
		},
		{
			Area:   "Houston Metro",
			Cities: []string{"Houston", "The Woodlands", "Sugar Land"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "High",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Energy", "Healthcare", "Aerospace"},
		},
	},
	"NC": {
		{
			Area:   "Research Triangle",
			Cities: []string{"Raleigh", "Durham", "Chapel Hill", "Cary"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Very High",
				GDPGrowth:        "High",
				PopulationTrend:  "Rapidly Growing",
			},
			KeySectors: []string{"Technology", "Research", "Healthcare"},
		},
		{
			Area:   "Charlotte Metro",
			Cities: []string{"Charlotte", "Concord", "Gastonia"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "High",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Finance", "Technology", "Healthcare"},
		},
	},
	"FL": {
		{
			Area:   "Tampa Bay",
			Cities: []string{"Tampa", "St. Petersburg", "Clearwater"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "High",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Healthcare", "Finance", "Tourism"},
		},
		{
			Area:   "Orlando Metro",
			Cities: []string{"Orlando", "Kissimmee", "Sanford"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "Medium",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Tourism", "Technology", "Healthcare"},
		},
		{
			Area:   "Miami Metro",
			Cities: []string{"Miami", "Fort Lauderdale", "West Palm Beach"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Medium",
				GDPGrowth:        "Medium",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Finance", "Tourism", "International Trade"},
		},
	},
	"CA": {
		{
			Area:   "Bay Area",
			Cities: []string{"San Francisco", "San Jose", "Oakland", "Fremont"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "High",
				GDPGrowth:        "Very High",
				PopulationTrend:  "Stable",
			},
			KeySectors: []string{"Technology", "Finance", "Professional Services"},
		},
		{
			Area:   "Sacramento Metro",
			Cities: []string{"Sacramento", "Roseville", "Folsom"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Medium",
				GDPGrowth:        "Medium",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Government", "Healthcare", "Agriculture"},
		},
		{
			Area:   "Inland Empire",
			Cities: []string{"Riverside", "San Bernardino", "Ontario"},
			Indicators: models.GrowthIndicators{
				EmploymentGrowth: "Medium",
				GDPGrowth:        "Medium",
				PopulationTrend:  "Growing",
			},
			KeySectors: []string{"Logistics", "Manufacturing", "Healthcare"},
		},
	},
}

// GrowthAreas returns the economically growing areas for a state. The
// lookup is case-insensitive; unknown states return an empty slice.
func GrowthAreas(state string) []models.GrowthArea {
	return growthAreasData[strings.ToUpper(state)]
}

// SupportedStates lists the states with growth area data, sorted.
func SupportedStates() []string {
	states := make([]string, 0, len(growthAreasData))
	for state := range growthAreasData {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// FormatGrowthAreas renders a state's growth areas for console display.
func FormatGrowthAreas(state string) string {
	areas := GrowthAreas(state)
	if len(areas) == 0 {
		return fmt.Sprintf("No growth area data available for state: %s", state)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n=== Economically Growing Areas in %s ===\n\n", strings.ToUpper(state))

	for i, area := range areas {
		fmt.Fprintf(&b, "%d. %s\n", i+1, area.Area)
		fmt.Fprintf(&b, "   Cities: %s\n", strings.Join(area.Cities, ", "))
		fmt.Fprintf(&b, "   Growth Indicators:\n")
		fmt.Fprintf(&b, "     - Employment Growth: %s\n", area.Indicators.EmploymentGrowth)
		fmt.Fprintf(&b, "     - GDP Growth: %s\n", area.Indicators.GDPGrowth)
		fmt.Fprintf(&b, "     - Population Trend: %s\n", area.Indicators.PopulationTrend)
		fmt.Fprintf(&b, "   Key Sectors: %s\n\n", strings.Join(area.KeySectors, ", "))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
