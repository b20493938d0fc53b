// Package validator runs the fixed catalog of geometry and label
// data-quality checks; false-positive reconciliation of the resulting
// entries is datacheck.Reconcile. Grounded on
// original_source/datachecks.py for the code list, and on
// original_source/read_data.py's per-route validation walk for the
// geometry checks' thresholds.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/geo"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

const (
	longSegmentMiles    = 20.0
	visibleDistanceMiles = 10.0
	sharpAngleDegrees    = 135.0
)

var (
	labelInvalidChar = regexp.MustCompile(`[^A-Za-z0-9()/+*_\-.]`)
	busWithI         = regexp.MustCompile(`^I-\d*Bus$`)
	looksHidden      = regexp.MustCompile(`^X\d{6}$`)
)

// ValidateRoute runs every geometry and label check against r: geometry
// in one walk of its point list plus one over index triples for angles,
// labels in a second walk of its point list, appending a datacheck.Entry
// per violation.
func ValidateRoute(r *network.Route) []*datacheck.Entry {
	var entries []*datacheck.Entry
	entries = append(entries, validateGeometry(r)...)
	entries = append(entries, validateLabels(r)...)
	return entries
}

func validateGeometry(r *network.Route) []*datacheck.Entry {
	var entries []*datacheck.Entry

	seen := make(map[[2]float64]*network.Waypoint)
	accumulatedVisible := 0.0
	suppressVisible := r.System != nil && r.System.Level == network.LevelActive

	for i, w := range r.Points {
		if w.OutOfBounds {
			entries = append(entries, datacheck.New(r.Root, w.Label, "", "", datacheck.OutOfBounds, ""))
		}

		key := [2]float64{w.Lat, w.Lng}
		if prior, ok := seen[key]; ok {
			entries = append(entries, datacheck.New(r.Root, prior.Label, w.Label, "", datacheck.DuplicateCoords,
				fmt.Sprintf("(%.6f,%.6f)", w.Lat, w.Lng)))
		} else {
			seen[key] = w
		}

		if i > 0 {
			prev := r.Points[i-1]
			d := geo.Distance(prev.Lat, prev.Lng, w.Lat, w.Lng)
			if d > longSegmentMiles {
				entries = append(entries, datacheck.New(r.Root, prev.Label, w.Label, "", datacheck.LongSegment,
					fmt.Sprintf("%.2f", d)))
			}
			if !suppressVisible {
				if !w.Hidden {
					accumulatedVisible += d
					if accumulatedVisible > visibleDistanceMiles {
						entries = append(entries, datacheck.New(r.Root, prev.Label, w.Label, "", datacheck.VisibleDistance,
							fmt.Sprintf("%.2f", accumulatedVisible)))
					}
					accumulatedVisible = 0
				} else {
					accumulatedVisible += d
				}
			}
		}
	}

	for i := 1; i < len(r.Points)-1; i++ {
		pred, mid, succ := r.Points[i-1], r.Points[i], r.Points[i+1]
		if mid.SameCoords(pred) || mid.SameCoords(succ) {
			entries = append(entries, datacheck.New(r.Root, pred.Label, mid.Label, succ.Label, datacheck.BadAngle, ""))
			continue
		}
		angle := geo.Angle(pred.Lat, pred.Lng, mid.Lat, mid.Lng, succ.Lat, succ.Lng)
		if angle > sharpAngleDegrees {
			entries = append(entries, datacheck.New(r.Root, pred.Label, mid.Label, succ.Label, datacheck.SharpAngle,
				fmt.Sprintf("%.2f", angle)))
		}
	}

	return entries
}

func validateLabels(r *network.Route) []*datacheck.Entry {
	var entries []*datacheck.Entry

	seenLabels := make(map[string]string) // stripped label -> original

	allLabels := func(w *network.Waypoint) []string {
		labels := []string{w.Label}
		labels = append(labels, w.AltLabels...)
		return labels
	}

	for i, w := range r.Points {
		for _, label := range allLabels(w) {
			stripped := strings.ToLower(strings.TrimLeft(label, "+*"))
			if prior, ok := seenLabels[stripped]; ok {
				entries = append(entries, datacheck.New(r.Root, prior, label, "", datacheck.DuplicateLabel, ""))
			} else {
				seenLabels[stripped] = label
			}

			if labelSelfRef(r, label) {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelSelfref, ""))
			}
			if strings.Count(label, "_") > 1 {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelUnderscores, ""))
			}
			if idx := strings.Index(label, "_"); idx >= 0 && len(label)-idx-1 > 5 {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LongUnderscore, ""))
			}
			if strings.Count(label, "/") > 1 {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelSlashes, ""))
			}
			if !balancedParens(label) {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelParens, ""))
			}
			if labelInvalidChar.MatchString(label) {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelInvalidChar, ""))
			}
			if idx := strings.Index(label, "_"); idx >= 0 && strings.Contains(label[idx:], "/") {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.NonterminalUnderscore, ""))
			}
			if busWithI.MatchString(label) {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.BusWithI, ""))
			}
			if looksHidden.MatchString(label) && !strings.HasPrefix(label, "+") {
				entries = append(entries, datacheck.New(r.Root, label, "", "", datacheck.LabelLooksHidden, ""))
			}
		}

		if i == 0 || i == len(r.Points)-1 {
			if w.Hidden {
				entries = append(entries, datacheck.New(r.Root, w.Label, "", "", datacheck.HiddenTerminus, ""))
			}
		}
	}

	return entries
}

// labelSelfRef matches a visible label that equals, or is prefixed by,
// the route's own canonical name in one of the patterns this check
// flags: "name_suffix", "name/..." (any text after the slash), or bare
// equality.
func labelSelfRef(r *network.Route, label string) bool {
	if strings.HasPrefix(label, "+") {
		return false
	}
	canonical := r.CanonicalName()
	if label == canonical {
		return true
	}
	if strings.HasPrefix(label, canonical+"_") {
		return true
	}
	if strings.HasPrefix(label, canonical+"/") {
		return true
	}
	if len(canonical) > 0 && canonical[len(canonical)-1] >= '0' && canonical[len(canonical)-1] <= '9' {
		rest := strings.TrimPrefix(label, canonical)
		if rest != label && strings.HasPrefix(rest, "/") {
			if _, err := fmt.Sscanf(rest[1:], "%d", new(int)); err == nil {
				return true
			}
		}
	}
	return false
}

func balancedParens(s string) bool {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
