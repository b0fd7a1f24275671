package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encode route coordinates as a google encoded polyline.
func PolylineFromCoords(coords []Coordinate) string {
	latLons := make([][]float64, len(coords))
	for i, c := range coords {
		latLons[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(latLons))
}
