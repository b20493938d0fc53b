package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/application/mileage"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

type correlationContext struct {
	systems       map[string]*network.HighwaySystem
	systemRegions map[string]string
	routes        map[string]*network.Route
	currentSystem string
	index         *correlator.Index
	travelers     map[string]*traveler.Traveler
	totals        *mileage.RegionTotals
	err           error
}

func (cc *correlationContext) reset() {
	cc.systems = make(map[string]*network.HighwaySystem)
	cc.systemRegions = make(map[string]string)
	cc.routes = make(map[string]*network.Route)
	cc.currentSystem = ""
	cc.index = correlator.NewIndex()
	cc.travelers = make(map[string]*traveler.Traveler)
	cc.totals = nil
	cc.err = nil
}

func (cc *correlationContext) allRoutes() []*network.Route {
	var routes []*network.Route
	for _, r := range cc.routes {
		routes = append(routes, r)
	}
	return routes
}

func (cc *correlationContext) aHighwaySystemInRegion(systemName, region string) error {
	sys := network.NewHighwaySystem(systemName, "USA", systemName, "", 1, network.LevelActive)
	cc.systems[systemName] = sys
	cc.systemRegions[systemName] = region
	cc.currentSystem = systemName
	return nil
}

func (cc *correlationContext) routeInThatSystemWithPoints(root string, table *godog.Table) error {
	sys, ok := cc.systems[cc.currentSystem]
	if !ok {
		return fmt.Errorf("no system registered")
	}
	region := cc.systemRegions[cc.currentSystem]

	r := network.NewRoute(sys, region, root, "", "", "", root, nil)
	sys.Routes = append(sys.Routes, r)
	cc.routes[root] = r

	// Godog table.Rows includes the header row first; skip it.
	if len(table.Rows) == 0 {
		return fmt.Errorf("route %q has an empty points table", root)
	}
	for _, row := range table.Rows[1:] {
		label := row.Cells[0].Value
		lat, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return fmt.Errorf("bad lat %q: %w", row.Cells[1].Value, err)
		}
		lon, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return fmt.Errorf("bad lon %q: %w", row.Cells[2].Value, err)
		}
		w, err := network.NewWaypoint(r, label, nil, lat, lon)
		if err != nil {
			return fmt.Errorf("bad waypoint %q: %w", label, err)
		}
		r.AppendPoint(w)
		cc.index.InsertAndCorrelate(w)
	}
	return nil
}

func (cc *correlationContext) aTravelerWhoHasClinchedTheFirstSegmentOfRoute(name, root string) error {
	r, ok := cc.routes[root]
	if !ok {
		return fmt.Errorf("no such route %q", root)
	}
	if len(r.Segments) == 0 {
		return fmt.Errorf("route %q has no segments", root)
	}
	t := traveler.New(name)
	if !t.Credit(r.Segments[0]) {
		return fmt.Errorf("segment already credited to %q", name)
	}
	cc.travelers[name] = t
	return nil
}

func (cc *correlationContext) theRoutesAreCorrelatedAndConcurrenciesAreFormed() error {
	correlator.FormConcurrencies(cc.allRoutes())
	return nil
}

func (cc *correlationContext) mileageIsAggregatedAcrossTheRoutes() error {
	cc.totals = mileage.Aggregate(cc.allRoutes(), cc.travelers)
	return nil
}

func (cc *correlationContext) routeShouldHaveTheSameMileageAsItsOneSegmentsLength(root string) error {
	r, ok := cc.routes[root]
	if !ok {
		return fmt.Errorf("no such route %q", root)
	}
	if len(r.Segments) != 1 {
		return fmt.Errorf("expected exactly one segment on route %q, got %d", root, len(r.Segments))
	}
	length := r.Segments[0].Length()
	if diff := r.Mileage - length; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("route %q mileage %v does not match segment length %v", root, r.Mileage, length)
	}
	return nil
}

func (cc *correlationContext) theOverallMileageCreditedToRegionShouldEqualOneSegmentsLength(region string) error {
	r, ok := cc.routes["i95a"]
	if !ok {
		return fmt.Errorf("no such route i95a")
	}
	if len(r.Segments) == 0 {
		return fmt.Errorf("route i95a has no segments")
	}
	length := r.Segments[0].Length()
	got := cc.totals.Overall[region]
	if diff := got - length; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("region %q overall mileage %v does not match %v", region, got, length)
	}
	return nil
}

func (cc *correlationContext) travelerShouldBeCreditedWithThatSegmentsLengthInRegion(name, root, region string) error {
	r, ok := cc.routes[root]
	if !ok {
		return fmt.Errorf("no such route %q", root)
	}
	t, ok := cc.travelers[name]
	if !ok {
		return fmt.Errorf("no such traveler %q", name)
	}
	length := r.Segments[0].Length()
	got := t.OverallByRegion[region]
	if diff := got - length; diff > 1e-6 || diff < -1e-6 {
		return fmt.Errorf("traveler %q region %q mileage %v does not match %v", name, region, got, length)
	}
	return nil
}

// InitializeCorrelationScenario registers the route-correlation and
// mileage-crediting step definitions.
func InitializeCorrelationScenario(ctx *godog.ScenarioContext) {
	cc := &correlationContext{}

	ctx.Before(func(goCtx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return goCtx, nil
	})

	ctx.Step(`^a highway system "([^"]*)" in region "([^"]*)"$`, cc.aHighwaySystemInRegion)
	ctx.Step(`^route "([^"]*)" in that system with points:$`, cc.routeInThatSystemWithPoints)
	ctx.Step(`^a traveler "([^"]*)" who has clinched the first segment of route "([^"]*)"$`, cc.aTravelerWhoHasClinchedTheFirstSegmentOfRoute)
	ctx.Step(`^the routes are correlated and concurrencies are formed$`, cc.theRoutesAreCorrelatedAndConcurrenciesAreFormed)
	ctx.Step(`^mileage is aggregated across the routes$`, cc.mileageIsAggregatedAcrossTheRoutes)
	ctx.Step(`^route "([^"]*)" should have the same mileage as its one segment's length$`, cc.routeShouldHaveTheSameMileageAsItsOneSegmentsLength)
	ctx.Step(`^the overall mileage credited to region "([^"]*)" should equal one segment's length$`, cc.theOverallMileageCreditedToRegionShouldEqualOneSegmentsLength)
	ctx.Step(`^traveler "([^"]*)" should be credited with that segment's length in region "([^"]*)"$`, func(name, region string) error {
		return cc.travelerShouldBeCreditedWithThatSegmentsLengthInRegion(name, "i95nyc", region)
	})
}
