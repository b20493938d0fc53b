package persistence

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

// NetworkRepository persists a fully correlated highway network and its
// travelers. Grounded on system_graph_repository.go's db.WithContext +
// fmt.Errorf-wrapping style.
type NetworkRepository struct {
	db *gorm.DB
}

// NewNetworkRepository builds a NetworkRepository over an open connection.
func NewNetworkRepository(db *gorm.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

// SaveAll writes every system, route, waypoint, segment, region mileage,
// traveler, and datacheck entry in one transaction.
func (r *NetworkRepository) SaveAll(ctx context.Context, systems []*network.HighwaySystem, travelers map[string]*traveler.Traveler, entries []*datacheck.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sys := range systems {
			if err := saveSystem(tx, sys); err != nil {
				return err
			}
		}
		for _, name := range sortedTravelerNames(travelers) {
			if err := saveTraveler(tx, travelers[name]); err != nil {
				return err
			}
		}
		if err := saveDatachecks(tx, entries); err != nil {
			return err
		}
		return nil
	})
}

func saveSystem(tx *gorm.DB, sys *network.HighwaySystem) error {
	model := SystemModel{
		SystemName: sys.SystemName,
		Country:    sys.Country,
		FullName:   sys.FullName,
		Color:      sys.Color,
		Tier:       sys.Tier,
		Level:      string(sys.Level),
	}
	if err := tx.Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save system %s: %w", sys.SystemName, err)
	}

	connIDs := make(map[*network.ConnectedRoute]int, len(sys.ConnectedRoutes))
	for _, cr := range sys.ConnectedRoutes {
		crModel := ConnectedRouteModel{
			SystemName: sys.SystemName,
			RouteName:  cr.RouteName,
			Banner:     cr.Banner,
			GroupName:  cr.GroupName,
		}
		if err := tx.Create(&crModel).Error; err != nil {
			return fmt.Errorf("failed to save connected route %s: %w", cr.RouteName, err)
		}
		connIDs[cr] = crModel.ID
	}

	for _, route := range sys.Routes {
		if err := saveRoute(tx, sys, route, connIDs); err != nil {
			return err
		}
	}

	for region, miles := range sys.MileageByRegion {
		rm := RegionMileageModel{SystemName: sys.SystemName, Region: region, Mileage: miles}
		if err := tx.Create(&rm).Error; err != nil {
			return fmt.Errorf("failed to save region mileage %s/%s: %w", sys.SystemName, region, err)
		}
	}
	return nil
}

func saveRoute(tx *gorm.DB, sys *network.HighwaySystem, route *network.Route, connIDs map[*network.ConnectedRoute]int) error {
	var connID *int
	for cr, id := range connIDs {
		for _, member := range cr.Routes {
			if member == route {
				v := id
				connID = &v
			}
		}
	}

	model := RouteModel{
		Root:             route.Root,
		SystemName:       sys.SystemName,
		Region:           route.Region,
		RouteName:        route.RouteName,
		Banner:           route.Banner,
		Abbrev:           route.Abbrev,
		City:             route.City,
		AltNames:         strings.Join(route.AltNames, ","),
		ConnectedRouteID: connID,
		Position:         route.Position,
		Mileage:          route.Mileage,
	}
	if err := tx.Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save route %s: %w", route.Root, err)
	}

	for i, w := range route.Points {
		if err := saveWaypoint(tx, route, w, i); err != nil {
			return err
		}
	}
	for _, s := range route.Segments {
		if err := saveSegment(tx, route, s); err != nil {
			return err
		}
	}
	return nil
}

func saveWaypoint(tx *gorm.DB, route *network.Route, w *network.Waypoint, seq int) error {
	var coloc *string
	if w.Colocation != nil && len(w.Colocation.Members) > 0 {
		id := w.Colocation.Members[0].Key()
		coloc = &id
	}
	model := WaypointModel{
		WaypointKey:  w.Key(),
		Root:         route.Root,
		Label:        w.Label,
		AltLabels:    strings.Join(w.AltLabels, ","),
		Latitude:     w.Lat,
		Longitude:    w.Lng,
		Hidden:       w.Hidden,
		Sequence:     seq,
		ColocationID: coloc,
	}
	if err := tx.Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save waypoint %s: %w", w.Key(), err)
	}
	return nil
}

func saveSegment(tx *gorm.DB, route *network.Route, s *network.HighwaySegment) error {
	var group *string
	if s.Concurrent != nil && len(s.Concurrent.Members) > 0 {
		lead := s.Concurrent.Members[0]
		id := lead.Waypoint1.Key() + "->" + lead.Waypoint2.Key()
		group = &id
	}
	model := SegmentModel{
		Root:             route.Root,
		FromKey:          s.Waypoint1.Key(),
		ToKey:            s.Waypoint2.Key(),
		LengthMiles:      s.Length(),
		ConcurrencyGroup: group,
		ClinchedByCount:  len(s.ClinchedBy),
	}
	if err := tx.Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save segment %s-%s: %w", s.Waypoint1.Key(), s.Waypoint2.Key(), err)
	}
	return nil
}

func saveTraveler(tx *gorm.DB, t *traveler.Traveler) error {
	model := TravelerModel{Name: t.Name, ClinchedCount: t.ClinchedCount()}
	if err := tx.Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save traveler %s: %w", t.Name, err)
	}

	for region, overall := range t.OverallByRegion {
		row := TravelerRegionMileageModel{
			TravelerName:  t.Name,
			Region:        region,
			Overall:       overall,
			ActivePreview: t.ActivePreviewByRegion[region],
			ActiveOnly:    t.ActiveOnlyByRegion[region],
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save traveler region mileage %s/%s: %w", t.Name, region, err)
		}
	}
	for systemName, regions := range t.RegionMileages {
		for region, miles := range regions {
			row := TravelerRegionMileageModel{
				TravelerName: t.Name,
				SystemName:   systemName,
				Region:       region,
				Overall:      miles,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save traveler system mileage %s/%s/%s: %w", t.Name, systemName, region, err)
			}
		}
	}
	return nil
}

func saveDatachecks(tx *gorm.DB, entries []*datacheck.Entry) error {
	for _, e := range entries {
		model := DatacheckModel{
			Root:          e.Root,
			Label0:        e.Label0,
			Label1:        e.Label1,
			Label2:        e.Label2,
			Code:          string(e.Code),
			Info:          e.Info,
			FalsePositive: e.FalsePositive,
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to save datacheck entry for %s: %w", e.Root, err)
		}
	}
	return nil
}

func sortedTravelerNames(travelers map[string]*traveler.Traveler) []string {
	names := make([]string, 0, len(travelers))
	for name := range travelers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
