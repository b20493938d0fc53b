// Package correlator links colocated waypoints and detects near misses
// at insertion time, and forms concurrency groups as a later
// single-threaded pass once every route is parsed. Grounded on
// original_source/siteupdate's waypoint-insertion correlation step and
// nmp.py's near-miss bookkeeping.
package correlator

import (
	"sort"
	"sync"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/quadtree"
)

// NearMissTolerance is the default tolerance, in degrees on each axis,
// used for near-miss detection; NewIndexWithTolerance overrides it.
const NearMissTolerance = 0.0005

// Index bundles the quadtree with the mutex that must guard every
// insertion so that colocation lookup, near-miss query, insertion, and
// near-miss back-linking happen atomically. Index also owns the shared
// data-check entry list: both resources need to be guarded by the same
// mutex, since a malformed-URL finding and a waypoint's
// colocation/near-miss linking can race across worker-pool goroutines
// during the parallel read phase.
type Index struct {
	mu         sync.Mutex
	tree       *quadtree.Node
	datachecks []*datacheck.Entry
	tolerance  float64
}

// NewIndex builds an empty Index over a fresh quadtree root, using the
// package default near-miss tolerance.
func NewIndex() *Index {
	return NewIndexWithTolerance(NearMissTolerance)
}

// NewIndexWithTolerance builds an empty Index with a caller-supplied
// near-miss tolerance, letting a deployment tighten or loosen the
// default without recompiling.
func NewIndexWithTolerance(tolerance float64) *Index {
	return &Index{tree: quadtree.NewRoot(), tolerance: tolerance}
}

// Tree exposes the underlying quadtree for read-only traversal once every
// insertion has completed (e.g. for Sort, PointList, Size).
func (idx *Index) Tree() *quadtree.Node {
	return idx.tree
}

// AddDatacheck appends e to the shared finding list under the same mutex
// that guards quadtree insertion. Safe to call from a worker goroutine.
func (idx *Index) AddDatacheck(e *datacheck.Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.datachecks = append(idx.datachecks, e)
}

// AddDatachecks appends every entry in es under the same mutex.
func (idx *Index) AddDatachecks(es []*datacheck.Entry) {
	if len(es) == 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.datachecks = append(idx.datachecks, es...)
}

// Datachecks returns a copy of every entry recorded so far.
func (idx *Index) Datachecks() []*datacheck.Entry {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make([]*datacheck.Entry, len(idx.datachecks))
	copy(out, idx.datachecks)
	return out
}

// InsertAndCorrelate performs one waypoint's colocation lookup, near-miss
// query, quadtree insertion, and near-miss back-linking as a single
// critical section. Safe to call concurrently from a worker pool.
func (idx *Index) InsertAndCorrelate(w *network.Waypoint) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if prior := idx.tree.LookupExact(w); prior != nil {
		network.AddColocation(prior, w)
	}

	for _, neighbor := range idx.tree.NearMiss(w, idx.tolerance) {
		network.AddNearMiss(w, neighbor)
	}

	idx.tree.Insert(w)
}

// SortGroups orders every colocation group's members by root@label, as
// required for deterministic downstream iteration.
func SortGroups(points []*network.Waypoint) {
	seen := make(map[*network.Group]bool)
	for _, w := range points {
		if w.Colocation == nil || seen[w.Colocation] {
			continue
		}
		seen[w.Colocation] = true
		sort.Slice(w.Colocation.Members, func(i, j int) bool {
			return w.Colocation.Members[i].Key() < w.Colocation.Members[j].Key()
		})
	}
}

// FormConcurrencies walks every segment of every route, discovering
// sibling segments on other routes whose endpoints
// are pairwise colocated and merge them into a shared concurrency group.
// Must run after every route has been fully parsed and every waypoint
// correlated, since it walks completed colocation groups.
func FormConcurrencies(routes []*network.Route) {
	for _, r := range routes {
		for _, s := range r.Segments {
			a, b := s.Waypoint1, s.Waypoint2
			if a.Colocation == nil || b.Colocation == nil {
				continue
			}
			for _, aPrime := range a.Colocation.Members {
				if aPrime.Route == r {
					continue
				}
				for _, bPrime := range b.Colocation.Members {
					if bPrime.Route != aPrime.Route {
						continue
					}
					if sPrime := aPrime.Route.FindSegmentByWaypoints(aPrime, bPrime); sPrime != nil {
						network.MergeConcurrency(s, sPrime)
					}
				}
			}
		}
	}
}
