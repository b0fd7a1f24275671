package routing

import (
	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
)

// AStar shortest route by total segment length, guided toward the goal by the
// haversine distance heuristic. haversine never overestimates road length, so
// the result length equals the dijkstra one while settling fewer nodes. no
// path is (nil, 0, false, nil), not an error.
func (rt *Router) AStar(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	return rt.AStarWithVisitor(from, to, nil)
}

// AStarWithVisitor same as AStar, visit is called with every node the search
// settles.
func (rt *Router) AStarWithVisitor(from, to geo.Coordinate,
	visit VisitFunc) ([]geo.Coordinate, float64, bool, error) {
	if err := rt.validateQuery(from, to); err != nil {
		return nil, 0, false, err
	}

	as := newAStarSearch(rt.graph, to, visit)
	return as.run(from, to)
}

type aStarSearch struct {
	graph      *da.Graph
	visit      VisitFunc
	goal       geo.Coordinate
	candidates map[geo.Coordinate]*routeCandidate
	pq         *da.MinHeap[geo.Coordinate]
}

func newAStarSearch(graph *da.Graph, goal geo.Coordinate, visit VisitFunc) *aStarSearch {
	return &aStarSearch{
		graph:      graph,
		visit:      visit,
		goal:       goal,
		candidates: make(map[geo.Coordinate]*routeCandidate),
		pq:         da.NewFourAryHeap[geo.Coordinate](),
	}
}

func (as *aStarSearch) run(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	curr := from
	as.candidates[from] = newRouteCandidate(from, 0, from.DistanceTo(as.goal),
		[]geo.Coordinate{from})
	as.relax(from)

	for !as.pq.IsEmpty() && curr != to {
		popped, _ := as.pq.ExtractMin()
		curr = popped.GetItem()
		if as.visit != nil {
			as.visit(curr)
		}
		as.relax(curr)
	}

	if curr == to {
		cand := as.candidates[to]
		return cand.route, cand.distance, true, nil
	}
	return nil, 0, false, nil
}

// relax out edges of curr. same as the dijkstra relaxation, candidates carry
// the haversine-to-goal heuristic in their frontier rank but improvement
// still compares raw distance.
func (as *aStarSearch) relax(curr geo.Coordinate) {
	currCand := as.candidates[curr]
	node, ok := as.graph.GetNode(curr)
	if !ok {
		return
	}

	for _, edge := range node.GetOutEdges() {
		destination := edge.GetTo()
		newDistance := currCand.distance + edge.GetLength()

		destCand, ok := as.candidates[destination]
		if !ok {
			cand := newRouteCandidate(destination, newDistance,
				destination.DistanceTo(as.goal), extendRoute(currCand.route, destination))
			cand.heapNode = da.NewPriorityQueueNode(cand.rank(), destination)
			as.candidates[destination] = cand
			as.pq.Insert(cand.heapNode)
			continue
		}

		if newDistance < destCand.distance {
			destCand.distance = newDistance
			destCand.route = extendRoute(currCand.route, destination)
			if destCand.heapNode.GetPos() >= 0 {
				as.pq.DecreaseKey(destCand.heapNode, destCand.rank())
			} else {
				// already popped, put it back with the better distance
				destCand.heapNode.SetRank(destCand.rank())
				as.pq.Insert(destCand.heapNode)
			}
		}
	}
}
