package network

// ConnectedRoute links one or more Routes of a HighwaySystem into one
// logical highway (e.g. a route that is split into disjoint pieces by a
// gap, or one that changes banner partway through).
type ConnectedRoute struct {
	System    *HighwaySystem
	RouteName string
	Banner    string
	GroupName string
	Routes    []*Route
}

// NewConnectedRoute builds a ConnectedRoute and assigns each member
// Route's Position to its index within it.
func NewConnectedRoute(system *HighwaySystem, routeName, banner, groupName string, routes []*Route) *ConnectedRoute {
	cr := &ConnectedRoute{
		System:    system,
		RouteName: routeName,
		Banner:    banner,
		GroupName: groupName,
		Routes:    routes,
	}
	for i, r := range routes {
		r.Position = i
	}
	return cr
}
