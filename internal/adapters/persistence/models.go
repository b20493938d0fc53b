// Package persistence maps the in-memory network graph onto gorm models
// and writes it to a relational database, giving every table the same
// columns a SQL load script would populate. Column-tag and TableName()
// conventions follow the adapters/persistence package's style.
package persistence

// SystemModel represents the systems table.
type SystemModel struct {
	SystemName string `gorm:"column:system_name;primaryKey;not null"`
	Country    string `gorm:"column:country;not null"`
	FullName   string `gorm:"column:full_name;not null"`
	Color      string `gorm:"column:color"`
	Tier       int    `gorm:"column:tier;not null"`
	Level      string `gorm:"column:level;not null"`
}

func (SystemModel) TableName() string { return "systems" }

// ConnectedRouteModel represents the connected_routes table.
type ConnectedRouteModel struct {
	ID         int          `gorm:"column:id;primaryKey;autoIncrement"`
	SystemName string       `gorm:"column:system_name;not null;index:idx_connroutes_system"`
	System     *SystemModel `gorm:"foreignKey:SystemName;references:SystemName;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	RouteName  string       `gorm:"column:route_name;not null"`
	Banner     string       `gorm:"column:banner"`
	GroupName  string       `gorm:"column:group_name"`
}

func (ConnectedRouteModel) TableName() string { return "connected_routes" }

// RouteModel represents the routes table.
type RouteModel struct {
	Root             string       `gorm:"column:root;primaryKey;not null"`
	SystemName       string       `gorm:"column:system_name;not null;index:idx_routes_system"`
	System           *SystemModel `gorm:"foreignKey:SystemName;references:SystemName;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Region           string       `gorm:"column:region;not null;index:idx_routes_region"`
	RouteName        string       `gorm:"column:route_name;not null"`
	Banner           string       `gorm:"column:banner"`
	Abbrev           string       `gorm:"column:abbrev"`
	City             string       `gorm:"column:city"`
	AltNames         string       `gorm:"column:alt_names;type:text"` // comma-joined
	ConnectedRouteID *int         `gorm:"column:connected_route_id;index:idx_routes_connroute"`
	Position         int          `gorm:"column:position"`
	Mileage          float64      `gorm:"column:mileage;not null"`
}

func (RouteModel) TableName() string { return "routes" }

// WaypointModel represents the waypoints table, keyed by the
// root@label form every other part of the system uses as a stable id.
type WaypointModel struct {
	WaypointKey  string      `gorm:"column:waypoint_key;primaryKey;not null"`
	Root         string      `gorm:"column:root;not null;index:idx_waypoints_root"`
	Route        *RouteModel `gorm:"foreignKey:Root;references:Root;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Label        string      `gorm:"column:label;not null"`
	AltLabels    string      `gorm:"column:alt_labels;type:text"`
	Latitude     float64     `gorm:"column:latitude;not null"`
	Longitude    float64     `gorm:"column:longitude;not null"`
	Hidden       bool        `gorm:"column:hidden;not null;default:false"`
	Sequence     int         `gorm:"column:sequence;not null"` // position within route
	ColocationID *string     `gorm:"column:colocation_id;index:idx_waypoints_colocation"`
}

func (WaypointModel) TableName() string { return "waypoints" }

// SegmentModel represents the segments table: one row per adjacent pair
// of waypoints on a route, carrying its precomputed length and the
// concurrency group it belongs to (if any).
type SegmentModel struct {
	ID               int     `gorm:"column:id;primaryKey;autoIncrement"`
	Root             string  `gorm:"column:root;not null;index:idx_segments_root"`
	FromKey          string  `gorm:"column:from_key;not null"`
	ToKey            string  `gorm:"column:to_key;not null"`
	LengthMiles      float64 `gorm:"column:length_miles;not null"`
	ConcurrencyGroup *string `gorm:"column:concurrency_group;index:idx_segments_concurrency"`
	ClinchedByCount  int     `gorm:"column:clinched_by_count;not null;default:0"`
}

func (SegmentModel) TableName() string { return "segments" }

// RegionMileageModel represents the region_mileages table: one row per
// (system, region) pair holding that system's locally-discounted total.
type RegionMileageModel struct {
	SystemName string  `gorm:"column:system_name;primaryKey;not null"`
	Region     string  `gorm:"column:region;primaryKey;not null"`
	Mileage    float64 `gorm:"column:mileage;not null"`
}

func (RegionMileageModel) TableName() string { return "region_mileages" }

// TravelerModel represents the travelers table.
type TravelerModel struct {
	Name          string `gorm:"column:name;primaryKey;not null"`
	ClinchedCount int    `gorm:"column:clinched_count;not null"`
}

func (TravelerModel) TableName() string { return "travelers" }

// TravelerRegionMileageModel represents the traveler_region_mileages
// table: the three region-scoped mileage accumulators per traveler per
// region, plus per-system breakdown rows (SystemName set, only Overall
// filled).
type TravelerRegionMileageModel struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement"`
	TravelerName  string  `gorm:"column:traveler_name;not null;index:idx_travmiles_traveler"`
	SystemName    string  `gorm:"column:system_name;not null"` // empty for the region-wide rows
	Region        string  `gorm:"column:region;not null"`
	Overall       float64 `gorm:"column:overall;not null"`
	ActivePreview float64 `gorm:"column:active_preview;not null"`
	ActiveOnly    float64 `gorm:"column:active_only;not null"`
}

func (TravelerRegionMileageModel) TableName() string { return "traveler_region_mileages" }

// DatacheckModel represents the datacheck_entries table.
type DatacheckModel struct {
	ID            int    `gorm:"column:id;primaryKey;autoIncrement"`
	Root          string `gorm:"column:root;not null;index:idx_datacheck_root"`
	Label0        string `gorm:"column:label0"`
	Label1        string `gorm:"column:label1"`
	Label2        string `gorm:"column:label2"`
	Code          string `gorm:"column:code;not null;index:idx_datacheck_code"`
	Info          string `gorm:"column:info"`
	FalsePositive bool   `gorm:"column:false_positive;not null;default:false"`
}

func (DatacheckModel) TableName() string { return "datacheck_entries" }
