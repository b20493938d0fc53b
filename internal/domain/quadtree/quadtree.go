// Package quadtree is the spatial index over every Waypoint in the
// corpus. It supports exact-coordinate lookup (for colocation) and
// radius-bounded near-miss enumeration.
//
// A node is terminal iff it holds a bucket and no children; otherwise it
// is refined and has all four children and no bucket. The child-quadrant
// test is strict "<" against both midpoints so the midpoint lines belong
// to exactly one child: NW = (lat >= mid, lng < mid), NE = (lat >= mid,
// lng >= mid), SW = (lat < mid, lng < mid), SE = (lat < mid, lng >= mid).
// This is the authoritative rule; the other variant the legacy script
// sometimes exhibited is not reproduced.
package quadtree

import (
	"sort"

	"github.com/travelmapping/hwdata/internal/domain/network"
)

// maxBucketSize is the largest number of distinct coordinate pairs a
// terminal node may hold before it is refined.
const maxBucketSize = 50

// Node is one quadtree node, covering the axis-aligned box
// [MinLat,MaxLat) x [MinLng,MaxLng).
type Node struct {
	MinLat, MinLng, MaxLat, MaxLng float64
	MidLat, MidLng                 float64

	nw, ne, sw, se *Node
	bucket         []*network.Waypoint
	uniqueLocs     int
}

// NewRoot creates the quadtree root over the full lat/lng universe.
func NewRoot() *Node {
	return newNode(-90, -180, 90, 180)
}

func newNode(minLat, minLng, maxLat, maxLng float64) *Node {
	return &Node{
		MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng,
		MidLat: (minLat + maxLat) / 2,
		MidLng: (minLng + maxLng) / 2,
		bucket: []*network.Waypoint{},
	}
}

// IsTerminal reports whether n holds a bucket rather than children.
func (n *Node) IsTerminal() bool {
	return n.bucket != nil
}

// childFor returns the child quadrant that would contain (lat, lng).
func (n *Node) childFor(lat, lng float64) *Node {
	if lat < n.MidLat {
		if lng < n.MidLng {
			return n.sw
		}
		return n.se
	}
	if lng < n.MidLng {
		return n.nw
	}
	return n.ne
}

// Insert adds w to the tree, refining nodes as needed once a terminal
// bucket would exceed maxBucketSize distinct coordinate pairs.
func (n *Node) Insert(w *network.Waypoint) {
	if !n.IsTerminal() {
		n.childFor(w.Lat, w.Lng).Insert(w)
		return
	}
	if n.waypointAtSamePoint(w) == nil {
		n.uniqueLocs++
	}
	n.bucket = append(n.bucket, w)
	if n.uniqueLocs > maxBucketSize {
		n.refine()
	}
}

// refine splits a terminal node into four children and redistributes its
// bucket's points into them using the node's midpoint split.
func (n *Node) refine() {
	n.nw = newNode(n.MidLat, n.MinLng, n.MaxLat, n.MidLng)
	n.ne = newNode(n.MidLat, n.MidLng, n.MaxLat, n.MaxLng)
	n.sw = newNode(n.MinLat, n.MinLng, n.MidLat, n.MidLng)
	n.se = newNode(n.MinLat, n.MidLng, n.MidLat, n.MaxLng)

	points := n.bucket
	n.bucket = nil
	n.uniqueLocs = 0
	for _, p := range points {
		n.childFor(p.Lat, p.Lng).Insert(p)
	}
}

// waypointAtSamePoint scans (or descends to find) a stored point with
// identical coordinates to w.
func (n *Node) waypointAtSamePoint(w *network.Waypoint) *network.Waypoint {
	if n.IsTerminal() {
		for _, p := range n.bucket {
			if p.SameCoords(w) {
				return p
			}
		}
		return nil
	}
	return n.childFor(w.Lat, w.Lng).waypointAtSamePoint(w)
}

// LookupExact returns a previously inserted point with identical
// coordinates to w, or nil.
func (n *Node) LookupExact(w *network.Waypoint) *network.Waypoint {
	return n.waypointAtSamePoint(w)
}

// NearMiss returns every stored point within tolerance of w on both axes
// (independently), excluding w itself and anything exactly colocated
// with it.
func (n *Node) NearMiss(w *network.Waypoint, tolerance float64) []*network.Waypoint {
	if n.IsTerminal() {
		var out []*network.Waypoint
		for _, p := range n.bucket {
			if p == w {
				continue
			}
			if p.SameCoords(w) {
				continue
			}
			if p.NearbyWithin(w, tolerance) {
				out = append(out, p)
			}
		}
		return out
	}

	lookNorth := w.Lat+tolerance >= n.MidLat
	lookSouth := w.Lat-tolerance <= n.MidLat
	lookEast := w.Lng+tolerance >= n.MidLng
	lookWest := w.Lng-tolerance <= n.MidLng

	var out []*network.Waypoint
	if lookNorth && lookWest {
		out = append(out, n.nw.NearMiss(w, tolerance)...)
	}
	if lookNorth && lookEast {
		out = append(out, n.ne.NearMiss(w, tolerance)...)
	}
	if lookSouth && lookWest {
		out = append(out, n.sw.NearMiss(w, tolerance)...)
	}
	if lookSouth && lookEast {
		out = append(out, n.se.NearMiss(w, tolerance)...)
	}
	return out
}

// Size returns the number of Waypoints stored in the tree.
func (n *Node) Size() int {
	if n.IsTerminal() {
		return len(n.bucket)
	}
	return n.nw.Size() + n.ne.Size() + n.sw.Size() + n.se.Size()
}

// TotalNodes returns the number of nodes (terminal and refined) in the
// tree, counting itself.
func (n *Node) TotalNodes() int {
	if n.IsTerminal() {
		return 1
	}
	return 1 + n.nw.TotalNodes() + n.ne.TotalNodes() + n.sw.TotalNodes() + n.se.TotalNodes()
}

// PointList returns every Waypoint stored in the tree.
func (n *Node) PointList() []*network.Waypoint {
	if n.IsTerminal() {
		return n.bucket
	}
	var all []*network.Waypoint
	all = append(all, n.ne.PointList()...)
	all = append(all, n.nw.PointList()...)
	all = append(all, n.se.PointList()...)
	all = append(all, n.sw.PointList()...)
	return all
}

// Sort orders every terminal bucket lexicographically by "root@label" so
// downstream iteration is deterministic across runs.
func (n *Node) Sort() {
	if n.IsTerminal() {
		sort.Slice(n.bucket, func(i, j int) bool {
			return n.bucket[i].Key() < n.bucket[j].Key()
		})
		return
	}
	n.ne.Sort()
	n.nw.Sort()
	n.se.Sort()
	n.sw.Sort()
}

// IsValid checks the terminal/refined invariant recursively: a terminal
// node has <= maxBucketSize unique coordinate pairs and no children; a
// refined node has all four children and no bucket.
func (n *Node) IsValid() bool {
	if n.IsTerminal() {
		return n.uniqueLocs <= maxBucketSize && n.nw == nil && n.ne == nil && n.sw == nil && n.se == nil
	}
	if n.nw == nil || n.ne == nil || n.sw == nil || n.se == nil {
		return false
	}
	return n.nw.IsValid() && n.ne.IsValid() && n.sw.IsValid() && n.se.IsValid()
}
