// Package region holds the continent/country/region catalog every route
// and system is cross-checked against: a route's Region field must name
// a known region, and a region's country must name a known country.
// Grounded on original_source/regions.py's continents.csv/countries.csv/
// regions.csv trio.
package region

// Continent is one row of continents.csv: a short code and a display name.
type Continent struct {
	Code string
	Name string
}

// Country is one row of countries.csv: a short code and a display name.
type Country struct {
	Code string
	Name string
}

// Region is one row of regions.csv: a short code, display name, the
// country and continent codes it belongs to, and a free-form region
// type (e.g. "state", "province", "territory").
type Region struct {
	Code          string
	Name          string
	CountryCode   string
	ContinentCode string
	Type          string
}
