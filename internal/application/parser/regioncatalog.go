package parser

import (
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/region"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// ParseContinents reads continents.csv: two semicolon fields per line
// (code;name), header discarded.
func ParseContinents(path string, collector *shared.ErrorCollector) ([]region.Continent, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var continents []region.Continent
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != 2 {
			collector.Addf("%s:%d: expected 2 fields, got %d", path, lineNo, len(fields))
			continue
		}
		continents = append(continents, region.Continent{Code: strings.TrimSpace(fields[0]), Name: strings.TrimSpace(fields[1])})
	}
	return continents, nil
}

// ParseCountries reads countries.csv: two semicolon fields per line
// (code;name), header discarded.
func ParseCountries(path string, collector *shared.ErrorCollector) ([]region.Country, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var countries []region.Country
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != 2 {
			collector.Addf("%s:%d: expected 2 fields, got %d", path, lineNo, len(fields))
			continue
		}
		countries = append(countries, region.Country{Code: strings.TrimSpace(fields[0]), Name: strings.TrimSpace(fields[1])})
	}
	return countries, nil
}

// ParseRegions reads regions.csv: five semicolon fields per line
// (code;name;country;continent;type), header discarded. Every region's
// country and continent code must already appear in countries/continents;
// a region naming an unknown one is recorded as a fatal error via
// collector and skipped rather than aborting the whole file.
func ParseRegions(path string, countries []region.Country, continents []region.Continent, collector *shared.ErrorCollector) ([]region.Region, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	countrySet := make(map[string]bool, len(countries))
	for _, c := range countries {
		countrySet[c.Code] = true
	}
	continentSet := make(map[string]bool, len(continents))
	for _, c := range continents {
		continentSet[c.Code] = true
	}

	var regions []region.Region
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != 5 {
			collector.Addf("%s:%d: expected 5 fields, got %d", path, lineNo, len(fields))
			continue
		}
		code := strings.TrimSpace(fields[0])
		countryCode := strings.TrimSpace(fields[2])
		continentCode := strings.TrimSpace(fields[3])
		if !countrySet[countryCode] {
			collector.Addf("%s:%d: region %s names unknown country %q", path, lineNo, code, countryCode)
			continue
		}
		if !continentSet[continentCode] {
			collector.Addf("%s:%d: region %s names unknown continent %q", path, lineNo, code, continentCode)
			continue
		}
		regions = append(regions, region.Region{
			Code:          code,
			Name:          strings.TrimSpace(fields[1]),
			CountryCode:   countryCode,
			ContinentCode: continentCode,
			Type:          strings.TrimSpace(fields[4]),
		})
	}
	return regions, nil
}
