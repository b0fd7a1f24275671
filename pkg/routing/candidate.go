package routing

import (
	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
)

// routeCandidate best route found so far from the search origin to where.
// one candidate per discovered coordinate per query, shared by dijkstra and
// astar. heuristic is fixed when the candidate is created, zero for dijkstra
// and the haversine distance to the goal for astar, so the frontier rank is
// distance + heuristic while relaxation compares raw distance.
type routeCandidate struct {
	where     geo.Coordinate
	distance  float64
	heuristic float64
	route     []geo.Coordinate
	heapNode  *da.PriorityQueueNode[geo.Coordinate]
}

func newRouteCandidate(where geo.Coordinate, distance, heuristic float64,
	route []geo.Coordinate) *routeCandidate {
	return &routeCandidate{
		where:     where,
		distance:  distance,
		heuristic: heuristic,
		route:     route,
	}
}

func (rc *routeCandidate) rank() float64 {
	return rc.distance + rc.heuristic
}

// extendRoute copy route and append next. candidates own their route slices,
// sharing backing arrays between candidates would corrupt earlier routes.
func extendRoute(route []geo.Coordinate, next geo.Coordinate) []geo.Coordinate {
	extended := make([]geo.Coordinate, len(route), len(route)+1)
	copy(extended, route)
	return append(extended, next)
}
