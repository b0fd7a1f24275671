package datastructure

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
)

var (
	ErrInvalidCoordinate = errors.New("coordinate is not a valid lat/lon pair")
	ErrNotVertex         = errors.New("coordinate is not a vertex of the graph")
	ErrNegativeLength    = errors.New("edge length must be >= 0")
)

// Edge directed road segment from one intersection to another. length in km.
type Edge struct {
	from       geo.Coordinate
	to         geo.Coordinate
	streetName string
	roadType   string
	length     float64
}

func NewEdge(from, to geo.Coordinate, streetName, roadType string, length float64) Edge {
	return Edge{
		from:       from,
		to:         to,
		streetName: streetName,
		roadType:   roadType,
		length:     length,
	}
}

func (e Edge) GetFrom() geo.Coordinate {
	return e.from
}

func (e Edge) GetTo() geo.Coordinate {
	return e.to
}

func (e Edge) GetStreetName() string {
	return e.streetName
}

func (e Edge) GetRoadType() string {
	return e.roadType
}

func (e Edge) GetLength() float64 {
	return e.length
}

// Node intersection of the road network. at most one outgoing edge per
// destination, a second edge to the same destination replaces the first.
type Node struct {
	location geo.Coordinate
	edges    map[geo.Coordinate]Edge
}

func NewNode(location geo.Coordinate) *Node {
	return &Node{
		location: location,
		edges:    make(map[geo.Coordinate]Edge),
	}
}

func (n *Node) GetLocation() geo.Coordinate {
	return n.location
}

// GetDestinations neighbor coordinates sorted by (lat, lon) biar
// urutan iterasi deterministic.
func (n *Node) GetDestinations() []geo.Coordinate {
	destinations := make([]geo.Coordinate, 0, len(n.edges))
	for to := range n.edges {
		destinations = append(destinations, to)
	}
	sort.Slice(destinations, func(i, j int) bool {
		if destinations[i].GetLat() != destinations[j].GetLat() {
			return destinations[i].GetLat() < destinations[j].GetLat()
		}
		return destinations[i].GetLon() < destinations[j].GetLon()
	})
	return destinations
}

// GetOutEdges outgoing edges sorted by destination (lat, lon).
func (n *Node) GetOutEdges() []Edge {
	edges := make([]Edge, 0, len(n.edges))
	for _, to := range n.GetDestinations() {
		edges = append(edges, n.edges[to])
	}
	return edges
}

func (n *Node) GetEdgeTo(to geo.Coordinate) (Edge, bool) {
	e, ok := n.edges[to]
	return e, ok
}

// Graph directed weighted road network keyed by intersection coordinate.
// append only, loaders build it once and searches read it concurrently.
type Graph struct {
	nodes    map[geo.Coordinate]*Node
	numEdges int
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[geo.Coordinate]*Node),
	}
}

// AddVertex add loc as an intersection. returns false without modifying the
// graph if loc is invalid or already a vertex.
func (g *Graph) AddVertex(loc geo.Coordinate) bool {
	if !loc.Valid() {
		return false
	}
	if _, ok := g.nodes[loc]; ok {
		return false
	}
	g.nodes[loc] = NewNode(loc)
	return true
}

// AddEdge add a directed road segment between two existing vertices. the edge
// counter counts successful calls, so replacing an edge still increments it.
func (g *Graph) AddEdge(from, to geo.Coordinate, streetName, roadType string, length float64) error {
	if !from.Valid() || !to.Valid() {
		return util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput,
			fmt.Sprintf("addEdge from %v to %v", from, to))
	}
	fromNode, ok := g.nodes[from]
	if !ok {
		return util.WrapErrorf(ErrNotVertex, util.ErrBadParamInput,
			fmt.Sprintf("addEdge: %v not in graph", from))
	}
	if _, ok := g.nodes[to]; !ok {
		return util.WrapErrorf(ErrNotVertex, util.ErrBadParamInput,
			fmt.Sprintf("addEdge: %v not in graph", to))
	}
	if length < 0 {
		return util.WrapErrorf(ErrNegativeLength, util.ErrBadParamInput,
			fmt.Sprintf("addEdge: length %f", length))
	}

	fromNode.edges[to] = NewEdge(from, to, streetName, roadType, length)
	g.numEdges++
	return nil
}

// GetVertices all intersection coordinates sorted by (lat, lon).
func (g *Graph) GetVertices() []geo.Coordinate {
	vertices := make([]geo.Coordinate, 0, len(g.nodes))
	for loc := range g.nodes {
		vertices = append(vertices, loc)
	}
	sort.Slice(vertices, func(i, j int) bool {
		if vertices[i].GetLat() != vertices[j].GetLat() {
			return vertices[i].GetLat() < vertices[j].GetLat()
		}
		return vertices[i].GetLon() < vertices[j].GetLon()
	})
	return vertices
}

func (g *Graph) HasVertex(loc geo.Coordinate) bool {
	_, ok := g.nodes[loc]
	return ok
}

func (g *Graph) GetNode(loc geo.Coordinate) (*Node, bool) {
	n, ok := g.nodes[loc]
	return n, ok
}

// GetOutEdges outgoing edges of loc sorted by destination. nil if loc is not
// a vertex.
func (g *Graph) GetOutEdges(loc geo.Coordinate) []Edge {
	n, ok := g.nodes[loc]
	if !ok {
		return nil
	}
	return n.GetOutEdges()
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}
