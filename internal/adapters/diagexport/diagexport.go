// Package diagexport writes the two diagnostic logs a correlation run
// produces: the datacheck log (one line per Entry, its canonical
// six-field string form) and the near-miss-point log (one line per
// waypoint with near misses, listing its neighbors). Line formats
// grounded on original_source/nmp.py's nmpline/nmpnmpline construction.
// Both logs are always gzip-compressed, using the compression library the rest
// of the pack (Ljubo32-acars-parser's go.mod) already depends on rather
// than stdlib compress/gzip, to stay consistent with the ecosystem
// choice made everywhere else logs are compressed in this codebase.
package diagexport

import (
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

// WriteDatacheckLog writes one canonical six-field line per entry,
// skipping reconciled false positives, gzip-compressed.
func WriteDatacheckLog(w io.Writer, entries []*datacheck.Entry) error {
	gz := gzip.NewWriter(w)

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.FalsePositive {
			continue
		}
		lines = append(lines, e.String())
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(gz, line); err != nil {
			return fmt.Errorf("failed to write datacheck log line: %w", err)
		}
	}
	return gz.Close()
}

// WriteNearMissLog writes one line per waypoint with a near-miss group,
// in a "<point> NMP <neighbor> <neighbor> ..." form (root@label keys
// only; no coordinates and no FP/LI flags), sorted for deterministic
// output, gzip-compressed.
func WriteNearMissLog(w io.Writer, points []*network.Waypoint) error {
	gz := gzip.NewWriter(w)

	lines := make([]string, 0)
	for _, wp := range points {
		if wp.NearMiss == nil || len(wp.NearMiss.Members) == 0 {
			continue
		}
		neighbors := make([]*network.Waypoint, len(wp.NearMiss.Members))
		copy(neighbors, wp.NearMiss.Members)
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].Key() < neighbors[j].Key() })

		line := wp.Key() + " NMP"
		for _, n := range neighbors {
			line += " " + n.Key()
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(gz, line); err != nil {
			return fmt.Errorf("failed to write near-miss log line: %w", err)
		}
	}
	return gz.Close()
}
