package geo

import (
	"github.com/tataton/roadgraph/pkg/util"

	"github.com/golang/geo/s2"
)

func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointA = MakeSixDigitsAfterComa(pointA, 6)
	pointB = MakeSixDigitsAfterComa(pointB, 6)
	snap = MakeSixDigitsAfterComa(snap, 6)

	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance distance from snap to its projection on segment (pointA, pointB). return in meter
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)

	dist := CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon())

	return dist * 1000
}

func MakeSixDigitsAfterComa(n Coordinate, precision int) Coordinate {

	if util.CountDecimalPlacesF64(n.Lat) != precision {
		n.Lat = util.RoundFloat(n.Lat+0.000001, 6)
	}
	if util.CountDecimalPlacesF64(n.Lon) != precision {
		n.Lon = util.RoundFloat(n.Lon+0.000001, 6)
	}
	return n
}
