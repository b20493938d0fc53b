// Command hwdata runs the highway-data correlation engine: it reads a
// HighwayData-style corpus, correlates waypoints into a connected
// network, validates geometry and labels, resolves traveler clinched
// mileage, persists the result, and emits the graph/stats/diagnostic
// exports.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
