// Package network holds the five tightly-coupled highway-data entities:
// Waypoint, HighwaySegment, Route, ConnectedRoute, and HighwaySystem.
// Waypoint holds a back-reference to its owning Route and Route owns its
// Waypoints, so the cluster lives in one package rather than forcing an
// artificial split across packages that would otherwise import each
// other cyclically; Go's garbage collector handles the resulting
// reference cycles directly, so an arena-of-stable-IDs indirection layer
// is not needed here.
package network

import (
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// Group is a colocation or near-miss group: a shared, ordered list of
// Waypoints referenced by every member. Every member's Colocation (or
// NearMiss) field points at the same *Group, so appending a new member
// is visible to all of them.
type Group struct {
	Members []*Waypoint
}

// Waypoint is a single named point on a route: a primary label, zero or
// more alternate labels, a latitude/longitude pair, and references back
// to its owning Route and to the colocation/near-miss groups it
// participates in.
type Waypoint struct {
	Label       string
	AltLabels   []string
	Lat         float64
	Lng         float64
	Hidden      bool
	Valid       bool // false for points rejected by a malformed URL
	OutOfBounds bool
	Route       *Route
	Index       int // position within Route.Points
	Colocation  *Group
	NearMiss    *Group
}

// NewWaypoint constructs a Waypoint. The caller (the .wpt parser) owns
// URL-grammar validation; NewWaypoint only rejects an empty label and
// flags (without rejecting) out-of-bounds coordinates.
func NewWaypoint(route *Route, label string, altLabels []string, lat, lng float64) (*Waypoint, error) {
	if label == "" {
		return nil, shared.NewValidationError("label", "cannot be empty")
	}
	return &Waypoint{
		Label:       label,
		AltLabels:   altLabels,
		Lat:         lat,
		Lng:         lng,
		Hidden:      strings.HasPrefix(label, "+"),
		Valid:       true,
		OutOfBounds: lat < -90 || lat > 90 || lng < -180 || lng > 180,
		Route:       route,
	}, nil
}

// Key is the "root@label" sort key used everywhere deterministic
// ordering is required (colocation groups, quadtree buckets, datacheck
// entries).
func (w *Waypoint) Key() string {
	root := ""
	if w.Route != nil {
		root = w.Route.Root
	}
	return root + "@" + w.Label
}

func (w *Waypoint) String() string {
	return w.Key()
}

// SameCoords reports exact (bit-for-bit) coordinate equality, the only
// identity test used for colocation.
func (w *Waypoint) SameCoords(other *Waypoint) bool {
	return w.Lat == other.Lat && w.Lng == other.Lng
}

// NearbyWithin reports whether other is within tolerance of w on each
// axis independently, the test used for near-miss detection.
func (w *Waypoint) NearbyWithin(other *Waypoint, tolerance float64) bool {
	return absF(w.Lat-other.Lat) < tolerance && absF(w.Lng-other.Lng) < tolerance
}

// StrippedLabel returns the label with a leading "+" or "*" stripped and
// case-folded, as used by label datachecks and traveler matching.
func (w *Waypoint) StrippedLabel() string {
	return strings.ToLower(strings.TrimLeft(w.Label, "+*"))
}

// NumColocated returns the size of the colocation group, or 1 if w is
// not colocated with anything.
func (w *Waypoint) NumColocated() int {
	if w.Colocation == nil {
		return 1
	}
	return len(w.Colocation.Members)
}

// AddColocation links w and other into the same colocation group,
// creating one if neither already has one.
func AddColocation(existing, newcomer *Waypoint) {
	if existing.Colocation == nil {
		existing.Colocation = &Group{Members: []*Waypoint{existing}}
	}
	existing.Colocation.Members = append(existing.Colocation.Members, newcomer)
	newcomer.Colocation = existing.Colocation
}

// AddNearMiss cross-links w and other into each other's near-miss list.
// Near-miss groups, unlike colocation groups, are not merged transitively
// into one shared list: each waypoint keeps its own Group of neighbors,
// appended to symmetrically.
func AddNearMiss(a, b *Waypoint) {
	if a.NearMiss == nil {
		a.NearMiss = &Group{}
	}
	if b.NearMiss == nil {
		b.NearMiss = &Group{}
	}
	a.NearMiss.Members = append(a.NearMiss.Members, b)
	b.NearMiss.Members = append(b.NearMiss.Members, a)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
