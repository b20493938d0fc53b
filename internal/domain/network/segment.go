package network

import "github.com/travelmapping/hwdata/internal/domain/geo"

// ConcurrencyGroup is the shared, ordered list of segments whose
// endpoints are pairwise colocated: an equivalence class of shared
// pavement. Every member segment's Concurrent field points at the same
// *ConcurrencyGroup.
type ConcurrencyGroup struct {
	Members []*HighwaySegment
}

// HighwaySegment connects two adjacent Waypoints within one Route.
type HighwaySegment struct {
	Waypoint1  *Waypoint
	Waypoint2  *Waypoint
	Route      *Route
	Concurrent *ConcurrencyGroup
	ClinchedBy map[string]bool // traveler name set
}

// NewSegment builds a segment between two adjacent points of route r.
func NewSegment(w1, w2 *Waypoint, r *Route) *HighwaySegment {
	return &HighwaySegment{
		Waypoint1:  w1,
		Waypoint2:  w2,
		Route:      r,
		ClinchedBy: make(map[string]bool),
	}
}

func (s *HighwaySegment) String() string {
	return s.Waypoint1.Label + " to " + s.Waypoint2.Label + " via " + s.Route.Root
}

// HasEndpoints reports whether {a, b} are this segment's endpoints in
// either order, the match used by concurrency discovery.
func (s *HighwaySegment) HasEndpoints(a, b *Waypoint) bool {
	return (s.Waypoint1 == a && s.Waypoint2 == b) || (s.Waypoint1 == b && s.Waypoint2 == a)
}

// Length returns the segment's length in miles.
func (s *HighwaySegment) Length() float64 {
	return geo.Distance(s.Waypoint1.Lat, s.Waypoint1.Lng, s.Waypoint2.Lat, s.Waypoint2.Lng)
}

// AddClinchedBy records that traveler has clinched this segment,
// reporting whether this is a new credit (false if already clinched).
func (s *HighwaySegment) AddClinchedBy(traveler string) bool {
	if s.ClinchedBy[traveler] {
		return false
	}
	s.ClinchedBy[traveler] = true
	return true
}

// ConcurrencyCounts returns the four concurrency-count denominators used
// by the mileage aggregator: overall, active-or-preview, active-only, and
// system-local (see package mileage). A segment with no concurrency
// group counts 1 in every bucket.
func (s *HighwaySegment) ConcurrencyCounts() (overall, activePreview, activeOnly, systemLocal int) {
	if s.Concurrent == nil {
		return 1, 1, 1, 1
	}
	for _, m := range s.Concurrent.Members {
		overall++
		sys := m.Route.System
		if sys == nil {
			continue
		}
		if sys.ActiveOrPreview() {
			activePreview++
		}
		if sys.Level == LevelActive {
			activeOnly++
		}
		if sys == s.Route.System {
			systemLocal++
		}
	}
	return
}

// MergeConcurrency merges s1 and s2 into one concurrency group: if
// neither has a group yet, a new one is created containing exactly the
// two segments; otherwise the unseen segment is appended to whichever
// group already exists. Safe to call when s1 == s2's group already
// (no-op via the membership check).
func MergeConcurrency(s1, s2 *HighwaySegment) {
	switch {
	case s1.Concurrent == nil && s2.Concurrent == nil:
		g := &ConcurrencyGroup{Members: []*HighwaySegment{s1, s2}}
		s1.Concurrent = g
		s2.Concurrent = g
	case s1.Concurrent != nil && s2.Concurrent == nil:
		s1.Concurrent.Members = append(s1.Concurrent.Members, s2)
		s2.Concurrent = s1.Concurrent
	case s1.Concurrent == nil && s2.Concurrent != nil:
		s2.Concurrent.Members = append(s2.Concurrent.Members, s1)
		s1.Concurrent = s2.Concurrent
	default:
		if s1.Concurrent == s2.Concurrent {
			return
		}
		if !containsSegment(s1.Concurrent.Members, s2) {
			s1.Concurrent.Members = append(s1.Concurrent.Members, s2)
			s2.Concurrent = s1.Concurrent
		}
	}
}

func containsSegment(list []*HighwaySegment, target *HighwaySegment) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
