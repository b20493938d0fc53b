// Package graphexport renders a correlated network as GraphML: one node
// per colocation-merged point, one edge per concurrency-merged segment.
// Grounded on adapters/graph's read-through-provider framing (a thin
// layer over already-built domain data, not its own data source); no
// third-party library covers GraphML, so this writer is built on
// encoding/xml directly.
package graphexport

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/travelmapping/hwdata/internal/domain/network"
)

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID     string `xml:"id,attr"`
	For    string `xml:"for,attr"`
	Name   string `xml:"attr.name,attr"`
	Type   string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID        string       `xml:"id,attr"`
	Edgedef   string       `xml:"edgedefault,attr"`
	Nodes     []graphmlNode `xml:"node"`
	Edges     []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string          `xml:"id,attr"`
	Data []graphmlData   `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Write renders every system's routes as a GraphML document. Nodes are
// keyed by the lead member of each waypoint's colocation group (or the
// waypoint itself if uncolocated), so physically identical intersections
// collapse to a single node. Concurrent segments collapse to a single
// edge, written for the first member of their concurrency group.
func Write(w io.Writer, systems []*network.HighwaySystem) error {
	doc := graphmlDoc{
		Keys: []graphmlKey{
			{ID: "d_lat", For: "node", Name: "lat", Type: "double"},
			{ID: "d_lng", For: "node", Name: "lng", Type: "double"},
			{ID: "d_label", For: "node", Name: "label", Type: "string"},
			{ID: "d_root", For: "edge", Name: "root", Type: "string"},
			{ID: "d_miles", For: "edge", Name: "miles", Type: "double"},
		},
		Graph: graphmlGraph{ID: "hwdata", Edgedef: "undirected"},
	}

	seen := make(map[string]bool)
	for _, sys := range systems {
		for _, route := range sys.Routes {
			for _, wp := range route.Points {
				id := nodeID(wp)
				if seen[id] {
					continue
				}
				seen[id] = true
				doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
					ID: id,
					Data: []graphmlData{
						{Key: "d_lat", Value: fmt.Sprintf("%.6f", wp.Lat)},
						{Key: "d_lng", Value: fmt.Sprintf("%.6f", wp.Lng)},
						{Key: "d_label", Value: wp.Key()},
					},
				})
			}
			for _, seg := range route.Segments {
				if seg.Concurrent != nil && len(seg.Concurrent.Members) > 0 && seg.Concurrent.Members[0] != seg {
					continue
				}
				doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
					Source: nodeID(seg.Waypoint1),
					Target: nodeID(seg.Waypoint2),
					Data: []graphmlData{
						{Key: "d_root", Value: route.Root},
						{Key: "d_miles", Value: fmt.Sprintf("%.3f", seg.Length())},
					},
				})
			}
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write GraphML header: %w", err)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode GraphML document: %w", err)
	}
	return nil
}

func nodeID(wp *network.Waypoint) string {
	if wp.Colocation != nil && len(wp.Colocation.Members) > 0 {
		return wp.Colocation.Members[0].Key()
	}
	return wp.Key()
}
