// Package statsexport dumps the mileage totals the application/mileage
// pipeline computes to CSV, the format the original tool's stats pages
// are generated from. No pack dependency covers CSV, so this is built on
// encoding/csv directly (justified in DESIGN.md).
package statsexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/travelmapping/hwdata/internal/application/mileage"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

// WriteRegionTotals writes one row per region: overall, active+preview,
// and active-only mileage.
func WriteRegionTotals(w io.Writer, totals *mileage.RegionTotals) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"region", "overall", "active_preview", "active_only"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, region := range sortedKeys(totals.Overall) {
		row := []string{
			region,
			fmt.Sprintf("%.2f", totals.Overall[region]),
			fmt.Sprintf("%.2f", totals.ActivePreview[region]),
			fmt.Sprintf("%.2f", totals.ActiveOnly[region]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write region row %s: %w", region, err)
		}
	}
	return cw.Error()
}

// WriteSystemRegionMileages writes one row per (system, region) pair.
func WriteSystemRegionMileages(w io.Writer, systems []*network.HighwaySystem) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"system", "region", "mileage"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, sys := range systems {
		for _, region := range sortedKeys(sys.MileageByRegion) {
			row := []string{sys.SystemName, region, fmt.Sprintf("%.2f", sys.MileageByRegion[region])}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write system mileage row %s/%s: %w", sys.SystemName, region, err)
			}
		}
	}
	return cw.Error()
}

// WriteTravelers writes one row per (traveler, region) pair covering the
// traveler's three region-scoped accumulators (overall, active+preview,
// active-only); the per-system RegionMileages breakdown is not written.
func WriteTravelers(w io.Writer, travelers map[string]*traveler.Traveler) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"traveler", "region", "overall", "active_preview", "active_only"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range sortedTravelerNames(travelers) {
		t := travelers[name]
		for _, region := range sortedKeys(t.OverallByRegion) {
			row := []string{
				name,
				region,
				fmt.Sprintf("%.2f", t.OverallByRegion[region]),
				fmt.Sprintf("%.2f", t.ActivePreviewByRegion[region]),
				fmt.Sprintf("%.2f", t.ActiveOnlyByRegion[region]),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write traveler row %s/%s: %w", name, region, err)
			}
		}
	}
	return cw.Error()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTravelerNames(travelers map[string]*traveler.Traveler) []string {
	names := make([]string, 0, len(travelers))
	for name := range travelers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
