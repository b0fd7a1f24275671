package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/tataton/roadgraph/pkg/geo"
)

func TestAddVertex(t *testing.T) {

	testCases := []struct {
		name     string
		vertices []geo.Coordinate
		want     []bool
		wantN    int
	}{
		{
			name: "distinct vertices all inserted",
			vertices: []geo.Coordinate{
				geo.NewCoordinate(-6.2, 106.8),
				geo.NewCoordinate(-6.3, 106.9),
			},
			want:  []bool{true, true},
			wantN: 2,
		},
		{
			name: "duplicate vertex is a no-op",
			vertices: []geo.Coordinate{
				geo.NewCoordinate(-6.2, 106.8),
				geo.NewCoordinate(-6.2, 106.8),
			},
			want:  []bool{true, false},
			wantN: 1,
		},
		{
			name: "invalid coordinate rejected",
			vertices: []geo.Coordinate{
				geo.NewCoordinate(math.NaN(), 106.8),
				geo.NewCoordinate(95.0, 106.8),
			},
			want:  []bool{false, false},
			wantN: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			for i, v := range tt.vertices {
				got := g.AddVertex(v)
				if got != tt.want[i] {
					t.Errorf("AddVertex(%v) = %v, want %v", v, got, tt.want[i])
				}
			}
			if g.NumberOfVertices() != tt.wantN {
				t.Errorf("NumberOfVertices() = %v, want %v", g.NumberOfVertices(), tt.wantN)
			}
			for _, loc := range g.GetVertices() {
				node, ok := g.GetNode(loc)
				if !ok || node.GetLocation() != loc {
					t.Errorf("GetNode(%v) should return the node at that location", loc)
				}
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	a := geo.NewCoordinate(-6.2, 106.8)
	b := geo.NewCoordinate(-6.3, 106.9)

	g := NewGraph()
	g.AddVertex(a)
	g.AddVertex(b)

	err := g.AddEdge(a, b, "Jalan Sudirman", "primary", 1.5)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if g.NumberOfEdges() != 1 {
		t.Errorf("NumberOfEdges() = %v, want 1", g.NumberOfEdges())
	}

	// replacement still counts as an inserted edge
	err = g.AddEdge(a, b, "Jalan Thamrin", "secondary", 2.0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if g.NumberOfEdges() != 2 {
		t.Errorf("NumberOfEdges() = %v, want 2", g.NumberOfEdges())
	}

	edges := g.GetOutEdges(a)
	if len(edges) != 1 {
		t.Fatalf("len(GetOutEdges(a)) = %v, want 1", len(edges))
	}
	if edges[0].GetStreetName() != "Jalan Thamrin" || edges[0].GetLength() != 2.0 {
		t.Errorf("edge should be replaced, got %v %v", edges[0].GetStreetName(), edges[0].GetLength())
	}
}

func TestAddEdgeInvalidArgument(t *testing.T) {
	a := geo.NewCoordinate(-6.2, 106.8)
	b := geo.NewCoordinate(-6.3, 106.9)
	outside := geo.NewCoordinate(-6.4, 107.0)

	g := NewGraph()
	g.AddVertex(a)
	g.AddVertex(b)

	testCases := []struct {
		name     string
		from, to geo.Coordinate
		length   float64
		sentinel error
	}{
		{
			name:     "negative length",
			from:     a,
			to:       b,
			length:   -1,
			sentinel: ErrNegativeLength,
		},
		{
			name:     "from is not a vertex",
			from:     outside,
			to:       b,
			length:   1,
			sentinel: ErrNotVertex,
		},
		{
			name:     "to is not a vertex",
			from:     a,
			to:       outside,
			length:   1,
			sentinel: ErrNotVertex,
		},
		{
			name:     "invalid coordinate",
			from:     geo.NewCoordinate(math.NaN(), 106.8),
			to:       b,
			length:   1,
			sentinel: ErrInvalidCoordinate,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			before := g.NumberOfEdges()
			err := g.AddEdge(tt.from, tt.to, "", "residential", tt.length)
			if err == nil {
				t.Fatal("AddEdge should return an error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want %v", err, tt.sentinel)
			}
			if g.NumberOfEdges() != before {
				t.Errorf("edge counter changed on failed AddEdge: %v -> %v", before, g.NumberOfEdges())
			}
		})
	}
}

func TestGetVerticesSorted(t *testing.T) {
	g := NewGraph()

	// inserted out of order on purpose
	g.AddVertex(geo.NewCoordinate(1.0, 2.0))
	g.AddVertex(geo.NewCoordinate(-1.0, 5.0))
	g.AddVertex(geo.NewCoordinate(1.0, -3.0))
	g.AddVertex(geo.NewCoordinate(0.0, 0.0))

	want := []geo.Coordinate{
		geo.NewCoordinate(-1.0, 5.0),
		geo.NewCoordinate(0.0, 0.0),
		geo.NewCoordinate(1.0, -3.0),
		geo.NewCoordinate(1.0, 2.0),
	}

	got := g.GetVertices()
	if len(got) != len(want) {
		t.Fatalf("len(GetVertices()) = %v, want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetVertices()[%v] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGetDestinationsSorted(t *testing.T) {
	center := geo.NewCoordinate(0.0, 0.0)
	neighbors := []geo.Coordinate{
		geo.NewCoordinate(1.0, 0.0),
		geo.NewCoordinate(-1.0, 0.0),
		geo.NewCoordinate(0.0, 1.0),
		geo.NewCoordinate(0.0, -1.0),
	}

	g := NewGraph()
	g.AddVertex(center)
	for _, nb := range neighbors {
		g.AddVertex(nb)
		if err := g.AddEdge(center, nb, "", "residential", 1.0); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	node, ok := g.GetNode(center)
	if !ok {
		t.Fatal("center should be a vertex")
	}

	want := []geo.Coordinate{
		geo.NewCoordinate(-1.0, 0.0),
		geo.NewCoordinate(0.0, -1.0),
		geo.NewCoordinate(0.0, 1.0),
		geo.NewCoordinate(1.0, 0.0),
	}
	got := node.GetDestinations()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetDestinations()[%v] = %v, want %v", i, got[i], want[i])
		}
	}
}
