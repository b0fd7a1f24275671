package spatialindex

import (
	"github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"

	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[EdgeEndpoints]
}

// route queries take graph vertices, not raw gps coordinates. the index
// stores every road segment so a raw query point can be snapped to the
// nearest segment and from there to one of its endpoints.
type EdgeEndpoints struct {
	from geo.Coordinate
	to   geo.Coordinate
}

func (ee EdgeEndpoints) GetFrom() geo.Coordinate {
	return ee.from
}

func (ee EdgeEndpoints) GetTo() geo.Coordinate {
	return ee.to
}

func newEdgeEndpoints(from, to geo.Coordinate) EdgeEndpoints {
	return EdgeEndpoints{
		from: from,
		to:   to,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[EdgeEndpoints]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km)
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	for _, loc := range graph.GetVertices() {
		for _, edge := range graph.GetOutEdges(loc) {
			from := edge.GetFrom()
			to := edge.GetTo()

			lowerFromLat, lowerFromLon := geo.GetDestinationPoint(from.GetLat(), from.GetLon(), 225, boundingBoxRadius)
			upperFromLat, upperFromLon := geo.GetDestinationPoint(from.GetLat(), from.GetLon(), 45, boundingBoxRadius)

			lowerToLat, lowerToLon := geo.GetDestinationPoint(to.GetLat(), to.GetLon(), 225, boundingBoxRadius)
			upperToLat, upperToLon := geo.GetDestinationPoint(to.GetLat(), to.GetLon(), 45, boundingBoxRadius)

			minLat := util.MinG(lowerFromLat, lowerToLat)
			minLon := util.MinG(lowerFromLon, lowerToLon)
			maxLat := util.MaxG(upperFromLat, upperToLat)
			maxLon := util.MaxG(upperFromLon, upperToLon)

			rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
				newEdgeEndpoints(from, to))
		}
	}

	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius search for all road segments within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []EdgeEndpoints {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]EdgeEndpoints, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data EdgeEndpoints) bool {
			results = append(results, data)
			if len(results) >= 20 {
				return false
			}
			return true
		})
	return results
}
