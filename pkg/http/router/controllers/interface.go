package controllers

import (
	"github.com/tataton/roadgraph/pkg/geo"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64,
		algorithm string) (float64, float64, string, []geo.Coordinate, int, error)
	ShortestPathStream(origLat, origLon, dstLat, dstLon float64,
		algorithm string, onVisit func(lat, lon float64)) (float64, float64, string, []geo.Coordinate, int, error)
}
