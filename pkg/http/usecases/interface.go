package usecases

import (
	"github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/routing"
	"github.com/tataton/roadgraph/pkg/spatialindex"
)

type SearchEngine interface {
	GetGraph() *datastructure.Graph
	BreadthFirstSearchWithVisitor(from, to geo.Coordinate, visit routing.VisitFunc) ([]geo.Coordinate, float64, bool, error)
	DijkstraWithVisitor(from, to geo.Coordinate, visit routing.VisitFunc) ([]geo.Coordinate, float64, bool, error)
	AStarWithVisitor(from, to geo.Coordinate, visit routing.VisitFunc) ([]geo.Coordinate, float64, bool, error)
}

type SpatialIndex interface {
	SearchWithinRadius(float64, float64, float64) []spatialindex.EdgeEndpoints
}
