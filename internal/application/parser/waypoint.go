package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

// osmURLPattern pulls the lat and lon query parameters out of an OSM-style
// URL; the captured substrings are handed to strconv.ParseFloat, which
// itself rejects multiple decimal points, misplaced signs, and illegal
// characters: the malformed-URL cases this format needs to catch.
var osmURLPattern = regexp.MustCompile(`lat=([^&]*)&lon=([^&]*)`)

// ParsedLine is one successfully tokenized (but not yet validated)
// waypoint-file line: a label, zero or more alternate labels, and a URL.
type ParsedLine struct {
	Label     string
	AltLabels []string
	URL       string
}

// tokenizeLine splits a waypoint-file line on runs of whitespace into a
// ParsedLine, or ok=false if the line has fewer than two tokens (a label
// and a URL are both required).
func tokenizeLine(line string) (ParsedLine, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return ParsedLine{}, false
	}
	return ParsedLine{
		Label:     tokens[0],
		AltLabels: tokens[1 : len(tokens)-1],
		URL:       tokens[len(tokens)-1],
	}, true
}

// parseOSMURL extracts (lat, lng) from an OSM-style URL. It returns
// ok=false if the URL does not carry a well-formed lat/lon pair.
func parseOSMURL(url string) (lat, lng float64, ok bool) {
	m := osmURLPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// Correlate is the insertion hook a waypoint file parse applies to every
// successfully-constructed waypoint: colocation lookup, near-miss query,
// quadtree insertion, and near-miss back-linking, as one atomic step.
type Correlate func(w *network.Waypoint)

// ParseWaypointFile reads root's .wpt file, appending each valid point to
// route (in file order) and calling correlate on it. A line whose URL
// fails the OSM grammar yields a MALFORMED_URL datacheck entry and is
// skipped entirely: no point is appended, no segment is formed to it.
func ParseWaypointFile(path, root string, route *network.Route, correlate Correlate) ([]*datacheck.Entry, error) {
	lines, err := openLines(path)
	if err != nil {
		return nil, err
	}

	var entries []*datacheck.Entry
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parsed, ok := tokenizeLine(line)
		if !ok {
			entries = append(entries, datacheck.New(root, "", "", "", datacheck.MalformedURL, line))
			continue
		}

		lat, lng, ok := parseOSMURL(parsed.URL)
		if !ok {
			entries = append(entries, datacheck.New(root, parsed.Label, "", "", datacheck.MalformedURL, parsed.URL))
			continue
		}

		w, err := network.NewWaypoint(route, parsed.Label, parsed.AltLabels, lat, lng)
		if err != nil {
			entries = append(entries, datacheck.New(root, parsed.Label, "", "", datacheck.MalformedURL, err.Error()))
			continue
		}

		route.AppendPoint(w)
		correlate(w)
	}
	return entries, nil
}
