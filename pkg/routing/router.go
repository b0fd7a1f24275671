package routing

import (
	"fmt"

	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
)

// VisitFunc observes a search. it is called synchronously with each node in
// the order the search pops it off the frontier, never with the origin. the
// callback must not modify the graph.
type VisitFunc func(node geo.Coordinate)

// Router point-to-point route queries over a prebuilt road graph. the graph
// is read only here, one Router can serve many goroutines at once.
type Router struct {
	graph *da.Graph
}

func NewRouter(graph *da.Graph) *Router {
	return &Router{graph: graph}
}

func (rt *Router) GetGraph() *da.Graph {
	return rt.graph
}

// validateQuery both endpoints must be valid coordinates and existing
// vertices. an unreachable goal is not a validation error.
func (rt *Router) validateQuery(from, to geo.Coordinate) error {
	if !from.Valid() || !to.Valid() {
		return util.WrapErrorf(da.ErrInvalidCoordinate, util.ErrBadParamInput,
			fmt.Sprintf("route from %v to %v", from, to))
	}
	if !rt.graph.HasVertex(from) {
		return util.WrapErrorf(da.ErrNotVertex, util.ErrBadParamInput,
			fmt.Sprintf("route: %v not in graph", from))
	}
	if !rt.graph.HasVertex(to) {
		return util.WrapErrorf(da.ErrNotVertex, util.ErrBadParamInput,
			fmt.Sprintf("route: %v not in graph", to))
	}
	return nil
}

// pathDistance sum of edge lengths along route, in km.
func pathDistance(g *da.Graph, route []geo.Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		node, ok := g.GetNode(route[i])
		if !ok {
			continue
		}
		if e, ok := node.GetEdgeTo(route[i+1]); ok {
			total += e.GetLength()
		}
	}
	return total
}
