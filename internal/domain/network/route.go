package network

// Route is a sequence of Waypoints and the Segments connecting them,
// plus the catalog identifiers read from a system's .csv line.
type Route struct {
	System      *HighwaySystem
	Region      string
	RouteName   string
	Banner      string
	Abbrev      string
	City        string
	Root        string // unique; equals the waypoint file's base name
	AltNames    []string
	Points      []*Waypoint
	Segments    []*HighwaySegment
	LabelsInUse map[string]bool // labels actually referenced by a traveler
	Mileage     float64
	Position    int // index within its ConnectedRoute, -1 until assigned
}

// NewRoute builds an empty Route from its catalog fields; Points and
// Segments are filled in afterward by the .wpt parser.
func NewRoute(system *HighwaySystem, region, routeName, banner, abbrev, city, root string, altNames []string) *Route {
	return &Route{
		System:      system,
		Region:      region,
		RouteName:   routeName,
		Banner:      banner,
		Abbrev:      abbrev,
		City:        city,
		Root:        root,
		AltNames:    altNames,
		LabelsInUse: make(map[string]bool),
		Position:    -1,
	}
}

func (r *Route) String() string {
	return r.Root
}

// ReadableName mirrors the original tool's "region route+banner+abbrev"
// display form.
func (r *Route) ReadableName() string {
	return r.Region + " " + r.RouteName + r.Banner + r.Abbrev
}

// CanonicalName is the name travelers reference in list files: the
// route's name, banner and abbrev concatenated with no separator.
func (r *Route) CanonicalName() string {
	return r.RouteName + r.Banner + r.Abbrev
}

// AppendPoint adds w as the next point on the route. If this is not the
// first point, a segment connecting it to the previous point is created
// and appended to Segments too.
func (r *Route) AppendPoint(w *Waypoint) {
	w.Index = len(r.Points)
	if len(r.Points) > 0 {
		prev := r.Points[len(r.Points)-1]
		r.Segments = append(r.Segments, NewSegment(prev, w, r))
	}
	r.Points = append(r.Points, w)
}

// FindSegmentByWaypoints returns the segment whose endpoints are {a, b}
// in either order, or nil if none matches. Used by the correlator to
// discover concurrencies.
func (r *Route) FindSegmentByWaypoints(a, b *Waypoint) *HighwaySegment {
	for _, s := range r.Segments {
		if s.HasEndpoints(a, b) {
			return s
		}
	}
	return nil
}
