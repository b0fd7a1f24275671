package usecases

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/spatialindex"
	"github.com/tataton/roadgraph/pkg/util"
)

func (rs *RoutingService) snapOrigDestToNearbyEdges(origLat, origLon, dstLat, dstLon float64) (geo.Coordinate,
	geo.Coordinate, error) {
	// find road segments near the origin
	origCandidates := rs.spatialIndex.SearchWithinRadius(origLat, origLon, rs.searchRadius)
	if len(origCandidates) == 0 {
		return geo.Coordinate{}, geo.Coordinate{}, util.WrapErrorf(errors.New("no origin candidates found"),
			util.ErrNotFound, fmt.Sprintf("no road segments within %.2f km of origin %f,%f", rs.searchRadius, origLat, origLon))
	}

	// find road segments near the destination
	dstCandidates := rs.spatialIndex.SearchWithinRadius(dstLat, dstLon, rs.searchRadius)
	if len(dstCandidates) == 0 {
		return geo.Coordinate{}, geo.Coordinate{}, util.WrapErrorf(errors.New("no destination candidates found"),
			util.ErrNotFound, fmt.Sprintf("no road segments within %.2f km of destination %f,%f", rs.searchRadius, dstLat, dstLon))
	}

	origSnapped := snapToNearestVertex(geo.NewCoordinate(origLat, origLon), origCandidates)
	dstSnapped := snapToNearestVertex(geo.NewCoordinate(dstLat, dstLon), dstCandidates)
	return origSnapped, dstSnapped, nil
}

// snapToNearestVertex rank the candidate segments by the perpendicular
// distance from the query point, then take the nearer endpoint of the best
// segment.
func snapToNearestVertex(queryPoint geo.Coordinate, candidates []spatialindex.EdgeEndpoints) geo.Coordinate {
	perpDist := make([]float64, len(candidates))
	for i, c := range candidates {
		perpDist[i] = geo.PointLinePerpendicularDistance(c.GetFrom(), c.GetTo(), queryPoint)
	}

	sortedId := make([]int, len(candidates))
	for i := range sortedId {
		sortedId[i] = i
	}
	sort.Slice(sortedId, func(i, j int) bool {
		return perpDist[sortedId[i]] < perpDist[sortedId[j]]
	})

	// the endpoints are at most a segment length apart, the fast
	// equirectangular approximation is enough to pick between them
	best := candidates[sortedId[0]]
	fromDist := geo.CalculateEuclidianDistanceEquirectangularProj(queryPoint.GetLat(), queryPoint.GetLon(),
		best.GetFrom().GetLat(), best.GetFrom().GetLon())
	toDist := geo.CalculateEuclidianDistanceEquirectangularProj(queryPoint.GetLat(), queryPoint.GetLon(),
		best.GetTo().GetLat(), best.GetTo().GetLon())
	if fromDist <= toDist {
		return best.GetFrom()
	}
	return best.GetTo()
}
