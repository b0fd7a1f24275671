package geo

import (
	"math"
	"testing"
)

const eps = 1e-6

func eq(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestValid(t *testing.T) {

	testCases := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{
			name:  "monas jakarta valid",
			coord: NewCoordinate(-6.175392, 106.827153),
			want:  true,
		},
		{
			name:  "null island valid",
			coord: NewCoordinate(0, 0),
			want:  true,
		},
		{
			name:  "nan latitude invalid",
			coord: NewCoordinate(math.NaN(), 106.827153),
			want:  false,
		},
		{
			name:  "nan longitude invalid",
			coord: NewCoordinate(-6.175392, math.NaN()),
			want:  false,
		},
		{
			name:  "latitude out of range invalid",
			coord: NewCoordinate(91.0, 106.827153),
			want:  false,
		},
		{
			name:  "longitude out of range invalid",
			coord: NewCoordinate(-6.175392, 181.0),
			want:  false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.coord.Valid()
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceTo(t *testing.T) {

	testCases := []struct {
		name string
		from Coordinate
		to   Coordinate
		want float64
	}{
		{
			name: "one degree of latitude on the same meridian",
			from: NewCoordinate(0, 106.8),
			to:   NewCoordinate(1, 106.8),
			want: 6371.0 * math.Pi / 180.0,
		},
		{
			name: "distance to itself is zero",
			from: NewCoordinate(-6.175392, 106.827153),
			to:   NewCoordinate(-6.175392, 106.827153),
			want: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.DistanceTo(tt.to)
			if !eq(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}

			// haversine is symmetric
			rev := tt.to.DistanceTo(tt.from)
			if !eq(got, rev) {
				t.Errorf("got %v, reversed %v, should equal", got, rev)
			}
		})
	}
}

func TestPolylineFromCoords(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}

	// example polyline from the google encoded polyline algorithm format docs
	want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	got := PolylineFromCoords(coords)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
