package parser

import (
	"path/filepath"
	"sync"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// SystemJob is one unit of work for the waypoint-reading worker pool: a
// HighwaySystem whose routes' .wpt files live under WptDir.
type SystemJob struct {
	System *network.HighwaySystem
	WptDir string
}

// jobStack is the shared mutable stack workers pop from; popping is the
// only contention point besides the correlator.Index itself.
type jobStack struct {
	mu    sync.Mutex
	items []*SystemJob
}

func (s *jobStack) pop() *SystemJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return nil
	}
	last := len(s.items) - 1
	job := s.items[last]
	s.items = s.items[:last]
	return job
}

// ReadSystemsConcurrently runs a worker pool of the given size over jobs.
// Each worker pops one SystemJob at a time from the shared stack and
// reads every route of that system's .wpt file serially; per-route state
// (the Route itself) is never touched by more than one worker, and the
// only state shared across workers, the quadtree and the data-check
// list (both owned by index), is guarded by index's own mutex. workers
// <= 0 is treated as 1 (single-threaded).
func ReadSystemsConcurrently(jobs []*SystemJob, workers int, index *correlator.Index, collector *shared.ErrorCollector) {
	if workers <= 0 {
		workers = 1
	}
	stack := &jobStack{items: jobs}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job := stack.pop()
				if job == nil {
					return
				}
				readSystem(job, index, collector)
			}
		}()
	}
	wg.Wait()
}

func readSystem(job *SystemJob, index *correlator.Index, collector *shared.ErrorCollector) {
	for _, route := range job.System.Routes {
		path := filepath.Join(job.WptDir, route.Root+".wpt")
		entries, err := ParseWaypointFile(path, route.Root, route, index.InsertAndCorrelate)
		if err != nil {
			collector.Addf("%s: %v", path, err)
			continue
		}
		index.AddDatachecks(entries)
		if len(route.Points) < 2 {
			collector.Addf("%s: route %s has fewer than 2 valid points", path, route.Root)
		}
	}
}
