package usecases

import (
	"errors"
	"fmt"

	"github.com/tataton/roadgraph/pkg"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
	"go.uber.org/zap"
)

const (
	ALGO_DIJKSTRA = "dijkstra"
	ALGO_ASTAR    = "astar"
	ALGO_BFS      = "bfs"
)

var (
	ERRPATHNOTFOND      = errors.New("path not found")
	ERRUNKNOWNALGORITHM = errors.New("unknown routing algorithm")
)

type RoutingService struct {
	log          *zap.Logger
	engine       SearchEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine SearchEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// ShortestPath snap origin/destination to the road graph, run the requested
// search algorithm, and return eta in minutes, distance in km, the encoded
// polyline, the route coordinates, and how many nodes the search visited.
func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64,
	algorithm string) (float64, float64, string, []geo.Coordinate, int, error) {
	return rs.shortestPath(origLat, origLon, dstLat, dstLon, algorithm, nil)
}

// ShortestPathStream same as ShortestPath but calls onVisit for every node the
// search visits. used by the websocket search visualizer.
func (rs *RoutingService) ShortestPathStream(origLat, origLon, dstLat, dstLon float64,
	algorithm string, onVisit func(lat, lon float64)) (float64, float64, string, []geo.Coordinate, int, error) {
	return rs.shortestPath(origLat, origLon, dstLat, dstLon, algorithm, onVisit)
}

func (rs *RoutingService) shortestPath(origLat, origLon, dstLat, dstLon float64,
	algorithm string, onVisit func(lat, lon float64)) (float64, float64, string, []geo.Coordinate, int, error) {
	from, to, err := rs.snapOrigDestToNearbyEdges(origLat, origLon, dstLat, dstLon)
	// from = graph vertex nearest to the origin
	// to = graph vertex nearest to the destination
	if err != nil {
		return 0, 0, "", nil, 0, err
	}

	visitedNodes := 0
	visitor := func(node geo.Coordinate) {
		visitedNodes++
		if onVisit != nil {
			onVisit(node.GetLat(), node.GetLon())
		}
	}

	var (
		routeCoords []geo.Coordinate
		dist        float64
		found       bool
	)
	switch algorithm {
	case ALGO_DIJKSTRA:
		routeCoords, dist, found, err = rs.engine.DijkstraWithVisitor(from, to, visitor)
	case ALGO_ASTAR:
		routeCoords, dist, found, err = rs.engine.AStarWithVisitor(from, to, visitor)
	case ALGO_BFS:
		routeCoords, dist, found, err = rs.engine.BreadthFirstSearchWithVisitor(from, to, visitor)
	default:
		return 0, 0, "", nil, 0, util.WrapErrorf(ERRUNKNOWNALGORITHM, util.ErrBadParamInput,
			fmt.Sprintf("algorithm must be one of %s, %s, %s. got: %s", ALGO_DIJKSTRA, ALGO_ASTAR, ALGO_BFS, algorithm))
	}
	if err != nil {
		return 0, 0, "", nil, 0, err
	}
	if !found {
		return 0, 0, "", nil, 0, util.WrapErrorf(ERRPATHNOTFOND, util.ErrBadParamInput,
			fmt.Sprintf("no route found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon))
	}

	pathPolyline := geo.PolylineFromCoords(routeCoords)
	eta := rs.estimateTravelTime(routeCoords)
	return eta, dist, pathPolyline, routeCoords, visitedNodes, nil
}

// estimateTravelTime eta in minutes over the route using per road class
// speeds (km/h).
func (rs *RoutingService) estimateTravelTime(routeCoords []geo.Coordinate) float64 {
	graph := rs.engine.GetGraph()
	hours := 0.0
	for i := 0; i < len(routeCoords)-1; i++ {
		node, ok := graph.GetNode(routeCoords[i])
		if !ok {
			continue
		}
		edge, ok := node.GetEdgeTo(routeCoords[i+1])
		if !ok {
			continue
		}
		hours += edge.GetLength() / pkg.RoadTypeSpeed(edge.GetRoadType())
	}
	return util.HoursToMinutes(hours)
}
