package routing

import (
	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
)

// Dijkstra shortest route by total segment length from one intersection to
// another. no path is (nil, 0, false, nil), not an error.
func (rt *Router) Dijkstra(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	return rt.DijkstraWithVisitor(from, to, nil)
}

// DijkstraWithVisitor same as Dijkstra, visit is called with every node the
// search settles.
func (rt *Router) DijkstraWithVisitor(from, to geo.Coordinate,
	visit VisitFunc) ([]geo.Coordinate, float64, bool, error) {
	if err := rt.validateQuery(from, to); err != nil {
		return nil, 0, false, err
	}

	ds := newDijkstraSearch(rt.graph, visit)
	return ds.run(from, to)
}

type dijkstraSearch struct {
	graph      *da.Graph
	visit      VisitFunc
	candidates map[geo.Coordinate]*routeCandidate
	pq         *da.MinHeap[geo.Coordinate]
}

func newDijkstraSearch(graph *da.Graph, visit VisitFunc) *dijkstraSearch {
	return &dijkstraSearch{
		graph:      graph,
		visit:      visit,
		candidates: make(map[geo.Coordinate]*routeCandidate),
		pq:         da.NewFourAryHeap[geo.Coordinate](),
	}
}

func (ds *dijkstraSearch) run(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	curr := from
	ds.candidates[from] = newRouteCandidate(from, 0, 0, []geo.Coordinate{from})
	ds.relax(from)

	for !ds.pq.IsEmpty() && curr != to {
		popped, _ := ds.pq.ExtractMin()
		curr = popped.GetItem()
		if ds.visit != nil {
			ds.visit(curr)
		}
		ds.relax(curr)
	}

	if curr == to {
		cand := ds.candidates[to]
		return cand.route, cand.distance, true, nil
	}
	return nil, 0, false, nil
}

// relax out edges of curr. a destination without a candidate gets one and
// goes on the frontier, a destination whose candidate improves is re-ranked
// in place when still queued or reinserted when already popped.
func (ds *dijkstraSearch) relax(curr geo.Coordinate) {
	currCand := ds.candidates[curr]
	node, ok := ds.graph.GetNode(curr)
	if !ok {
		return
	}

	for _, edge := range node.GetOutEdges() {
		destination := edge.GetTo()
		newDistance := currCand.distance + edge.GetLength()

		destCand, ok := ds.candidates[destination]
		if !ok {
			cand := newRouteCandidate(destination, newDistance, 0,
				extendRoute(currCand.route, destination))
			cand.heapNode = da.NewPriorityQueueNode(cand.rank(), destination)
			ds.candidates[destination] = cand
			ds.pq.Insert(cand.heapNode)
			continue
		}

		if newDistance < destCand.distance {
			destCand.distance = newDistance
			destCand.route = extendRoute(currCand.route, destination)
			if destCand.heapNode.GetPos() >= 0 {
				ds.pq.DecreaseKey(destCand.heapNode, destCand.rank())
			} else {
				// already popped, put it back with the better distance
				destCand.heapNode.SetRank(destCand.rank())
				ds.pq.Insert(destCand.heapNode)
			}
		}
	}
}
