// Package travelermatcher resolves traveler list-file lines to canonical
// route/waypoint-range pairs, credits clinched segments, and augments
// credit across concurrency groups. Grounded on
// original_source/siteupdate's traveler-list resolution and
// read_data.py's route-name lookup map.
package travelermatcher

import (
	"fmt"
	"log"
	"strings"

	"github.com/travelmapping/hwdata/internal/application/parser"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

// routeEntry is one indexed name for a Route: whether it is the route's
// canonical name (region + base name/banner/abbrev) or one of its
// deprecated alternate names.
type routeEntry struct {
	route      *network.Route
	deprecated bool
}

// RouteIndex maps "lower(region + \" \" + name)" to a Route, built once
// from every Route's canonical name and every alternate name so either
// form resolves to the same Route.
type RouteIndex struct {
	byKey map[string]routeEntry
}

// BuildRouteIndex indexes every route of every system by region-qualified
// canonical name and by every alternate name.
func BuildRouteIndex(systems []*network.HighwaySystem) *RouteIndex {
	idx := &RouteIndex{byKey: make(map[string]routeEntry)}
	for _, sys := range systems {
		for _, r := range sys.Routes {
			idx.byKey[routeKey(r.Region, r.CanonicalName())] = routeEntry{route: r}
			for _, alt := range r.AltNames {
				idx.byKey[routeKey(r.Region, alt)] = routeEntry{route: r, deprecated: true}
			}
		}
	}
	return idx
}

func routeKey(region, name string) string {
	return strings.ToLower(region + " " + name)
}

// Lookup resolves a region + route token to a Route, or nil if unknown.
// A match through a deprecated alternate name is logged but accepted.
func (idx *RouteIndex) Lookup(region, token string) *network.Route {
	entry, ok := idx.byKey[routeKey(region, token)]
	if !ok {
		return nil
	}
	if entry.deprecated {
		log.Printf("route token %q %q matched deprecated alternate name for %s", region, token, entry.route.Root)
	}
	return entry.route
}

// stripLabel case-folds label and strips a leading "+" or "*", the form
// used to compare list-file labels against point labels.
func stripLabel(label string) string {
	return strings.ToLower(strings.TrimLeft(label, "+*"))
}

// matchIndex returns the index of the point on r whose primary or
// alternate label case-insensitively (leading +/* stripped) equals
// target, or -1.
func matchIndex(r *network.Route, target string) int {
	target = stripLabel(target)
	for i, w := range r.Points {
		if stripLabel(w.Label) == target {
			return i
		}
		for _, alt := range w.AltLabels {
			if strings.ToLower(strings.TrimLeft(alt, "+")) == target {
				return i
			}
		}
	}
	return -1
}

// MatchLine resolves one ListLine against idx and, on success, credits t
// with every segment in the inclusive-exclusive waypoint range the two
// labels bound, then augments credit across concurrency groups. Errors
// are logged, never fatal.
func MatchLine(line parser.ListLine, idx *RouteIndex, t *traveler.Traveler) {
	r := idx.Lookup(line.Region, line.RouteToken)
	if r == nil {
		log.Printf("traveler %s line %d: unknown route %q %q", t.Name, line.SourceLine, line.Region, line.RouteToken)
		return
	}
	if r.System != nil && r.System.Level == network.LevelDevel {
		log.Printf("traveler %s line %d: route %s is devel, skipped", t.Name, line.SourceLine, r.Root)
		return
	}

	startIdx := matchIndex(r, line.StartLabel)
	endIdx := matchIndex(r, line.EndLabel)
	matched := 0
	if startIdx >= 0 {
		matched++
	}
	if endIdx >= 0 {
		matched++
	}
	if matched != 2 {
		log.Printf("traveler %s line %d: expected exactly 2 label matches on %s, got %d", t.Name, line.SourceLine, r.Root, matched)
		return
	}

	lo, hi := startIdx, endIdx
	if lo > hi {
		lo, hi = hi, lo
	}

	var credited []*network.HighwaySegment
	for i := lo; i < hi; i++ {
		seg := r.Segments[i]
		if t.Credit(seg) {
			credited = append(credited, seg)
		}
		r.LabelsInUse[stripLabel(r.Points[i].Label)] = true
	}
	r.LabelsInUse[stripLabel(r.Points[hi].Label)] = true

	augmentConcurrency(credited, t)
}

// augmentConcurrency credits every member of a credited segment's
// concurrency group whose owning system is active or preview.
func augmentConcurrency(credited []*network.HighwaySegment, t *traveler.Traveler) {
	for _, s := range credited {
		if s.Concurrent == nil {
			continue
		}
		for _, mate := range s.Concurrent.Members {
			if mate.Route == nil || mate.Route.System == nil {
				continue
			}
			if mate.Route.System.ActiveOrPreview() {
				t.Credit(mate)
			}
		}
	}
}

// MatchAll resolves every line for one traveler via MatchLine. It returns
// nothing; per-line problems are logged by MatchLine.
func MatchAll(lines []parser.ListLine, idx *RouteIndex, t *traveler.Traveler) {
	for _, line := range lines {
		MatchLine(line, idx, t)
	}
}

// FormatMatchSummary is a small human-readable summary line, used by the
// CLI's per-traveler progress output.
func FormatMatchSummary(t *traveler.Traveler, lineCount int) string {
	return fmt.Sprintf("%s: %d list lines, %d segments clinched", t.Name, lineCount, t.ClinchedCount())
}
