package routing

import (
	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
)

// BreadthFirstSearch route with the minimum number of road segments from one
// intersection to another, ignoring segment lengths. the returned distance is
// still the length sum along that route. no path is (nil, 0, false, nil), not
// an error.
func (rt *Router) BreadthFirstSearch(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	return rt.BreadthFirstSearchWithVisitor(from, to, nil)
}

// BreadthFirstSearchWithVisitor same as BreadthFirstSearch, visit is called
// with every node the search pops.
func (rt *Router) BreadthFirstSearchWithVisitor(from, to geo.Coordinate,
	visit VisitFunc) ([]geo.Coordinate, float64, bool, error) {
	if err := rt.validateQuery(from, to); err != nil {
		return nil, 0, false, err
	}

	bfs := newBfsSearch(rt.graph, visit)
	return bfs.run(from, to)
}

type bfsSearch struct {
	graph   *da.Graph
	visit   VisitFunc
	visited map[geo.Coordinate]struct{}
	routes  map[geo.Coordinate][]geo.Coordinate
	queue   []geo.Coordinate
}

func newBfsSearch(graph *da.Graph, visit VisitFunc) *bfsSearch {
	return &bfsSearch{
		graph:   graph,
		visit:   visit,
		visited: make(map[geo.Coordinate]struct{}),
		routes:  make(map[geo.Coordinate][]geo.Coordinate),
		queue:   make([]geo.Coordinate, 0),
	}
}

func (s *bfsSearch) run(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error) {
	curr := from
	s.visited[from] = struct{}{}
	s.routes[from] = []geo.Coordinate{from}
	s.addDestinationRoutes(from)

	for len(s.queue) > 0 && curr != to {
		curr = s.queue[0]
		s.queue = s.queue[1:]
		if s.visit != nil {
			s.visit(curr)
		}
		s.addDestinationRoutes(curr)
	}

	if curr == to {
		route := s.routes[to]
		return route, pathDistance(s.graph, route), true, nil
	}
	return nil, 0, false, nil
}

// addDestinationRoutes record routes to the not yet discovered neighbors of
// curr and put them on the queue. a node is recorded on first discovery only,
// in FIFO order that first route is already hop minimal.
func (s *bfsSearch) addDestinationRoutes(curr geo.Coordinate) {
	node, ok := s.graph.GetNode(curr)
	if !ok {
		return
	}
	for _, destination := range node.GetDestinations() {
		if _, seen := s.visited[destination]; seen {
			continue
		}
		s.visited[destination] = struct{}{}
		s.routes[destination] = extendRoute(s.routes[curr], destination)
		s.queue = append(s.queue, destination)
	}
}
