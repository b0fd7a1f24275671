package routing

import (
	"errors"
	"math"
	"testing"

	da "github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
)

const eps = 1e-9

func eq(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

type testEdge struct {
	from, to int
	length   float64
}

func buildRouter(t *testing.T, coords []geo.Coordinate, edges []testEdge) *Router {
	t.Helper()

	g := da.NewGraph()
	for _, c := range coords {
		if !g.AddVertex(c) {
			t.Fatalf("AddVertex(%v) failed", c)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(coords[e.from], coords[e.to], "", "residential", e.length); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	return NewRouter(g)
}

// fourNodeCoords A, B, C, D packed close together so the synthetic edge
// lengths in km always dominate the haversine heuristic.
func fourNodeCoords() []geo.Coordinate {
	return []geo.Coordinate{
		geo.NewCoordinate(-6.2000, 106.8000), // A
		geo.NewCoordinate(-6.2001, 106.8000), // B
		geo.NewCoordinate(-6.2000, 106.8001), // C
		geo.NewCoordinate(-6.2001, 106.8001), // D
	}
}

func TestFourNodeScenario(t *testing.T) {
	coords := fourNodeCoords()
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 1}, // A -> B
		{1, 3, 1}, // B -> D
		{0, 2, 5}, // A -> C
		{2, 3, 1}, // C -> D
	})

	a, d := coords[0], coords[3]

	searches := []struct {
		name   string
		search func(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error)
	}{
		{"dijkstra", rt.Dijkstra},
		{"astar", rt.AStar},
	}

	for _, tt := range searches {
		t.Run(tt.name, func(t *testing.T) {
			route, dist, found, err := tt.search(a, d)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if !found {
				t.Fatal("route should be found")
			}
			want := []geo.Coordinate{coords[0], coords[1], coords[3]}
			if len(route) != len(want) {
				t.Fatalf("route = %v, want %v", route, want)
			}
			for i := range want {
				if route[i] != want[i] {
					t.Errorf("route[%v] = %v, want %v", i, route[i], want[i])
				}
			}
			if !eq(dist, 2) {
				t.Errorf("distance = %v, want 2", dist)
			}
		})
	}
}

func TestBfsMinimumHopCount(t *testing.T) {
	coords := []geo.Coordinate{
		geo.NewCoordinate(-6.2000, 106.8000), // A
		geo.NewCoordinate(-6.2001, 106.8000), // B
		geo.NewCoordinate(-6.2001, 106.8001), // C
		geo.NewCoordinate(-6.2000, 106.8001), // D
	}
	// direct hop is 1 segment but 10 km, the detour is 3 segments of 0.1 km
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 0.1},
		{1, 2, 0.1},
		{2, 3, 0.1},
		{0, 3, 10},
	})

	a, d := coords[0], coords[3]

	route, dist, found, err := rt.BreadthFirstSearch(a, d)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !found || len(route) != 2 {
		t.Fatalf("bfs route = %v, want the 1 segment route [A D]", route)
	}
	if route[0] != a || route[len(route)-1] != d {
		t.Errorf("bfs route should start at A and end at D, got %v", route)
	}
	if !eq(dist, 10) {
		t.Errorf("bfs distance = %v, want 10", dist)
	}

	route, dist, found, err = rt.Dijkstra(a, d)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !found || len(route) != 4 {
		t.Fatalf("dijkstra route = %v, want the 3 segment detour", route)
	}
	if !eq(dist, 0.3) {
		t.Errorf("dijkstra distance = %v, want 0.3", dist)
	}
}

func TestDisconnectedVertexNoRoute(t *testing.T) {
	coords := append(fourNodeCoords(), geo.NewCoordinate(-6.3000, 106.9000)) // E
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 1},
		{1, 3, 1},
		{0, 2, 5},
		{2, 3, 1},
	})

	a, e := coords[0], coords[4]

	searches := []struct {
		name   string
		search func(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error)
	}{
		{"bfs", rt.BreadthFirstSearch},
		{"dijkstra", rt.Dijkstra},
		{"astar", rt.AStar},
	}

	for _, tt := range searches {
		t.Run(tt.name, func(t *testing.T) {
			route, dist, found, err := tt.search(a, e)
			if err != nil {
				t.Fatalf("no route must not be an error, got: %v", err)
			}
			if found || route != nil || dist != 0 {
				t.Errorf("got route %v dist %v found %v, want none", route, dist, found)
			}
		})
	}
}

func TestInvalidQueryArguments(t *testing.T) {
	coords := fourNodeCoords()
	rt := buildRouter(t, coords, []testEdge{{0, 1, 1}})

	notAVertex := geo.NewCoordinate(10.0, 10.0)
	invalid := geo.NewCoordinate(math.NaN(), 106.8)

	testCases := []struct {
		name     string
		from, to geo.Coordinate
		sentinel error
	}{
		{"from invalid", invalid, coords[1], da.ErrInvalidCoordinate},
		{"to invalid", coords[0], invalid, da.ErrInvalidCoordinate},
		{"from not a vertex", notAVertex, coords[1], da.ErrNotVertex},
		{"to not a vertex", coords[0], notAVertex, da.ErrNotVertex},
	}

	searches := []struct {
		name   string
		search func(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error)
	}{
		{"bfs", rt.BreadthFirstSearch},
		{"dijkstra", rt.Dijkstra},
		{"astar", rt.AStar},
	}

	for _, ss := range searches {
		for _, tt := range testCases {
			t.Run(ss.name+" "+tt.name, func(t *testing.T) {
				route, _, found, err := ss.search(tt.from, tt.to)
				if err == nil {
					t.Fatal("want an invalid argument error")
				}
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("err = %v, want %v", err, tt.sentinel)
				}
				if found || route != nil {
					t.Errorf("failed query must not report a route, got %v", route)
				}
			})
		}
	}
}

func TestStartEqualsGoal(t *testing.T) {
	coords := fourNodeCoords()
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 1},
		{1, 3, 1},
	})

	a := coords[0]

	searches := []struct {
		name   string
		search func(from, to geo.Coordinate, visit VisitFunc) ([]geo.Coordinate, float64, bool, error)
	}{
		{"bfs", rt.BreadthFirstSearchWithVisitor},
		{"dijkstra", rt.DijkstraWithVisitor},
		{"astar", rt.AStarWithVisitor},
	}

	for _, tt := range searches {
		t.Run(tt.name, func(t *testing.T) {
			visited := 0
			route, dist, found, err := tt.search(a, a, func(geo.Coordinate) { visited++ })
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if !found || len(route) != 1 || route[0] != a || dist != 0 {
				t.Errorf("got route %v dist %v found %v, want [A] 0 true", route, dist, found)
			}
			if visited != 0 {
				t.Errorf("visitor ran %v times, the origin must not be visited", visited)
			}
		})
	}
}

func TestVisitorSkipsOrigin(t *testing.T) {
	coords := fourNodeCoords()
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 1},
		{1, 3, 1},
		{0, 2, 5},
		{2, 3, 1},
	})

	a, d := coords[0], coords[3]

	var visited []geo.Coordinate
	_, _, found, err := rt.DijkstraWithVisitor(a, d, func(node geo.Coordinate) {
		visited = append(visited, node)
	})
	if err != nil || !found {
		t.Fatalf("found %v err: %v", found, err)
	}
	if len(visited) == 0 {
		t.Fatal("visitor should have been called")
	}
	for _, node := range visited {
		if node == a {
			t.Error("visitor must never see the origin")
		}
	}
	// the goal is settled last
	if visited[len(visited)-1] != d {
		t.Errorf("last visited = %v, want the goal", visited[len(visited)-1])
	}
}

func TestDijkstraImprovesQueuedCandidate(t *testing.T) {
	coords := fourNodeCoords()
	// C starts on the frontier at 5 through A, then improves to 2 through B
	// while still queued
	rt := buildRouter(t, coords, []testEdge{
		{0, 1, 1}, // A -> B
		{0, 2, 5}, // A -> C
		{1, 2, 1}, // B -> C
		{2, 3, 1}, // C -> D
	})

	route, dist, found, err := rt.Dijkstra(coords[0], coords[3])
	if err != nil || !found {
		t.Fatalf("found %v err: %v", found, err)
	}
	want := []geo.Coordinate{coords[0], coords[1], coords[2], coords[3]}
	if len(route) != len(want) {
		t.Fatalf("route = %v, want %v", route, want)
	}
	for i := range want {
		if route[i] != want[i] {
			t.Errorf("route[%v] = %v, want %v", i, route[i], want[i])
		}
	}
	if !eq(dist, 3) {
		t.Errorf("distance = %v, want 3", dist)
	}
}

// buildGridRouter n x n lattice, 4-neighborhood connected both ways with true
// haversine lengths so the astar heuristic is consistent.
func buildGridRouter(t *testing.T, n int) (*Router, []geo.Coordinate) {
	t.Helper()

	coords := make([]geo.Coordinate, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			coords = append(coords, geo.NewCoordinate(-6.2+float64(i)*0.001, 106.8+float64(j)*0.001))
		}
	}

	g := da.NewGraph()
	for _, c := range coords {
		g.AddVertex(c)
	}

	connect := func(u, v int) {
		length := coords[u].DistanceTo(coords[v])
		if err := g.AddEdge(coords[u], coords[v], "", "residential", length); err != nil {
			t.Fatalf("err: %v", err)
		}
		if err := g.AddEdge(coords[v], coords[u], "", "residential", length); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j+1 < n {
				connect(i*n+j, i*n+j+1)
			}
			if i+1 < n {
				connect(i*n+j, (i+1)*n+j)
			}
		}
	}
	return NewRouter(g), coords
}

func TestAStarSettlesAtMostDijkstra(t *testing.T) {
	n := 6
	rt, coords := buildGridRouter(t, n)
	from, to := coords[0], coords[n*n-1]

	dijkstraVisits := 0
	dijkstraRoute, dijkstraDist, found, err := rt.DijkstraWithVisitor(from, to,
		func(geo.Coordinate) { dijkstraVisits++ })
	if err != nil || !found {
		t.Fatalf("found %v err: %v", found, err)
	}

	aStarVisits := 0
	aStarRoute, aStarDist, found, err := rt.AStarWithVisitor(from, to,
		func(geo.Coordinate) { aStarVisits++ })
	if err != nil || !found {
		t.Fatalf("found %v err: %v", found, err)
	}

	if !eq(dijkstraDist, aStarDist) {
		t.Errorf("dijkstra dist %v != astar dist %v", dijkstraDist, aStarDist)
	}
	if len(dijkstraRoute) != len(aStarRoute) {
		t.Errorf("dijkstra route %v hops, astar route %v hops, should match on the grid",
			len(dijkstraRoute), len(aStarRoute))
	}
	if aStarVisits > dijkstraVisits {
		t.Errorf("astar settled %v nodes, dijkstra %v, astar must not settle more",
			aStarVisits, dijkstraVisits)
	}
}

// bruteForceShortest enumerate every simple path with DFS. only usable on the
// small test graphs.
func bruteForceShortest(g *da.Graph, from, to geo.Coordinate) (float64, bool) {
	visited := make(map[geo.Coordinate]bool)
	best := math.Inf(1)

	var dfs func(cur geo.Coordinate, dist float64)
	dfs = func(cur geo.Coordinate, dist float64) {
		if cur == to {
			if dist < best {
				best = dist
			}
			return
		}
		visited[cur] = true
		for _, e := range g.GetOutEdges(cur) {
			if !visited[e.GetTo()] {
				dfs(e.GetTo(), dist+e.GetLength())
			}
		}
		visited[cur] = false
	}
	dfs(from, 0)

	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

func TestWeightedSearchesMatchBruteForce(t *testing.T) {
	rt, coords := buildGridRouter(t, 4)
	g := rt.GetGraph()

	pairs := [][2]int{{0, 15}, {3, 12}, {5, 10}, {0, 7}, {14, 1}}
	for _, p := range pairs {
		from, to := coords[p[0]], coords[p[1]]

		want, reachable := bruteForceShortest(g, from, to)
		if !reachable {
			t.Fatalf("grid should connect %v and %v", from, to)
		}

		_, dijkstraDist, found, err := rt.Dijkstra(from, to)
		if err != nil || !found {
			t.Fatalf("found %v err: %v", found, err)
		}
		if !eq(dijkstraDist, want) {
			t.Errorf("dijkstra(%v,%v) = %v, brute force %v", p[0], p[1], dijkstraDist, want)
		}

		_, aStarDist, found, err := rt.AStar(from, to)
		if err != nil || !found {
			t.Fatalf("found %v err: %v", found, err)
		}
		if !eq(aStarDist, want) {
			t.Errorf("astar(%v,%v) = %v, brute force %v", p[0], p[1], aStarDist, want)
		}
	}
}

func TestRepeatedQueriesAreIdempotent(t *testing.T) {
	rt, coords := buildGridRouter(t, 5)
	from, to := coords[2], coords[22]

	firstRoute, firstDist, found, err := rt.AStar(from, to)
	if err != nil || !found {
		t.Fatalf("found %v err: %v", found, err)
	}

	for i := 0; i < 3; i++ {
		route, dist, found, err := rt.AStar(from, to)
		if err != nil || !found {
			t.Fatalf("found %v err: %v", found, err)
		}
		if !eq(dist, firstDist) || len(route) != len(firstRoute) {
			t.Errorf("repeat %v: dist %v route %v hops, first dist %v route %v hops",
				i, dist, len(route), firstDist, len(firstRoute))
		}
	}
}

func TestRouteEndpoints(t *testing.T) {
	rt, coords := buildGridRouter(t, 4)
	from, to := coords[1], coords[14]

	searches := []struct {
		name   string
		search func(from, to geo.Coordinate) ([]geo.Coordinate, float64, bool, error)
	}{
		{"bfs", rt.BreadthFirstSearch},
		{"dijkstra", rt.Dijkstra},
		{"astar", rt.AStar},
	}

	for _, tt := range searches {
		t.Run(tt.name, func(t *testing.T) {
			route, _, found, err := tt.search(from, to)
			if err != nil || !found {
				t.Fatalf("found %v err: %v", found, err)
			}
			if route[0] != from {
				t.Errorf("route starts at %v, want %v", route[0], from)
			}
			if route[len(route)-1] != to {
				t.Errorf("route ends at %v, want %v", route[len(route)-1], to)
			}
		})
	}
}
