// Package parser reads the catalog, waypoint, connected-route, and
// traveler-list file families into the domain model. Grounded on
// original_source/read_data.py for field layouts and the
// header/comment/field-count conventions.
package parser

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// openLines opens path and returns every line with trailing newline
// stripped, or an error if the file cannot be read.
func openLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// ParseSystems reads the system catalog file: six semicolon fields per
// line, a discarded header, "#"-prefixed comment lines (warned, not
// fatal), and field-count mismatches recorded via collector and skipped.
func ParseSystems(path string, collector *shared.ErrorCollector) ([]*network.HighwaySystem, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var systems []*network.HighwaySystem
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			log.Printf("%s:%d: comment line ignored", path, lineNo)
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != 6 {
			collector.Addf("%s:%d: expected 6 fields, got %d", path, lineNo, len(fields))
			continue
		}
		tier, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			collector.Addf("%s:%d: bad tier %q", path, lineNo, fields[4])
			continue
		}
		level := network.Level(strings.TrimSpace(fields[5]))
		systems = append(systems, network.NewHighwaySystem(
			strings.TrimSpace(fields[0]),
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			strings.TrimSpace(fields[3]),
			tier,
			level,
		))
	}
	return systems, nil
}

// ParseRouteCatalog reads a per-system route list: eight semicolon fields
// per line (system;region;route;banner;abbrev;city;root;altroutenames),
// with altroutenames comma-separated. The header line is discarded.
func ParseRouteCatalog(path string, system *network.HighwaySystem, collector *shared.ErrorCollector) ([]*network.Route, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var routes []*network.Route
	for i, line := range lines[1:] {
		lineNo := i + 2
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != 8 {
			collector.Addf("%s:%d: expected 8 fields, got %d", path, lineNo, len(fields))
			continue
		}
		var altNames []string
		if alt := strings.TrimSpace(fields[7]); alt != "" {
			altNames = strings.Split(alt, ",")
		}
		routes = append(routes, network.NewRoute(
			system,
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			strings.TrimSpace(fields[3]),
			strings.TrimSpace(fields[4]),
			strings.TrimSpace(fields[5]),
			strings.TrimSpace(fields[6]),
			altNames,
		))
	}
	return routes, nil
}

// ParseConnectedRoutes reads a system's _con.csv file: five semicolon
// fields per line (system;route;banner;groupname;roots), where roots is a
// comma-separated list of roots already defined for system. A root not
// found in system is recorded as a fatal error via collector.
func ParseConnectedRoutes(path string, system *network.HighwaySystem, collector *shared.ErrorCollector) ([]*network.ConnectedRoute, error) {
	lines, err := openLines(path)
	if err != nil {
		collector.Addf("%s: %v", path, err)
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var connected []*network.ConnectedRoute
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
		roots := strings.Split(strings.TrimSpace(fields[4]), ",")
		var routes []*network.Route
		ok := true
		for _, root := range roots {
			root = strings.TrimSpace(root)
			r := system.RouteByRoot(root)
			if r == nil {
				collector.Add(shared.NewFatalError(fmt.Sprintf("%s:%d: connected route references unknown root %q", path, lineNo, root)))
				ok = false
				continue
			}
			routes = append(routes, r)
		}
		if !ok || len(routes) == 0 {
			continue
		}
		connected = append(connected, network.NewConnectedRoute(
			system,
			strings.TrimSpace(fields[1]),
			strings.TrimSpace(fields[2]),
			strings.TrimSpace(fields[3]),
			routes,
		))
	}
	return connected, nil
}
