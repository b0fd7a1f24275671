package osmparser

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
	"go.uber.org/zap"
)

const eps = 1e-9

func eq(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func writeTempRoadMap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("err: %v", err)
	}
	return path
}

func TestLoadRoadMap(t *testing.T) {
	content := `# intersections of a small test map
32.9 -117.0 32.9 -117.05 "A Street" residential

32.9 -117.05 32.9 -117.0 "A Street" residential
32.9 -117.0 32.95 -117.0 "Jalan Pangeran Diponegoro" primary 5.5
`
	path := writeTempRoadMap(t, "simple.map", content)

	graph, err := LoadRoadMap(path, zap.NewNop())
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if graph.NumberOfVertices() != 3 {
		t.Errorf("NumberOfVertices() = %v, want 3", graph.NumberOfVertices())
	}
	if graph.NumberOfEdges() != 3 {
		t.Errorf("NumberOfEdges() = %v, want 3", graph.NumberOfEdges())
	}

	a := geo.NewCoordinate(32.9, -117.0)
	b := geo.NewCoordinate(32.9, -117.05)
	c := geo.NewCoordinate(32.95, -117.0)

	node, ok := graph.GetNode(a)
	if !ok {
		t.Fatal("a should be a vertex")
	}

	ab, ok := node.GetEdgeTo(b)
	if !ok {
		t.Fatal("edge a->b should exist")
	}
	if ab.GetStreetName() != "A Street" || ab.GetRoadType() != "residential" {
		t.Errorf("edge a->b = %v %v", ab.GetStreetName(), ab.GetRoadType())
	}
	// no explicit length on that line, loader falls back to haversine
	if !eq(ab.GetLength(), a.DistanceTo(b)) {
		t.Errorf("length = %v, want haversine %v", ab.GetLength(), a.DistanceTo(b))
	}

	ac, ok := node.GetEdgeTo(c)
	if !ok {
		t.Fatal("edge a->c should exist")
	}
	if ac.GetStreetName() != "Jalan Pangeran Diponegoro" {
		t.Errorf("street name = %q, multi word names must survive", ac.GetStreetName())
	}
	if !eq(ac.GetLength(), 5.5) {
		t.Errorf("length = %v, want the explicit 5.5", ac.GetLength())
	}
}

func TestLoadRoadMapMalformed(t *testing.T) {

	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "too few fields",
			content: "32.9 -117.0 32.9\n",
		},
		{
			name:    "unquoted street name",
			content: "32.9 -117.0 32.9 -117.05 A Street residential\n",
		},
		{
			name:    "bad latitude",
			content: "north -117.0 32.9 -117.05 \"A Street\" residential\n",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempRoadMap(t, "bad.map", tt.content)
			_, err := LoadRoadMap(path, zap.NewNop())
			if err == nil {
				t.Fatal("malformed roadmap should not load")
			}
			if !errors.Is(err, util.ErrBadParamInput) {
				var uerr *util.Error
				if !errors.As(err, &uerr) || uerr.Code() != util.ErrBadParamInput {
					t.Errorf("err = %v, want a bad param coded error", err)
				}
			}
		})
	}
}

func buildSampleGraph(t *testing.T) *datastructure.Graph {
	t.Helper()

	coords := []geo.Coordinate{
		geo.NewCoordinate(-6.2000, 106.8000),
		geo.NewCoordinate(-6.2010, 106.8005),
		geo.NewCoordinate(-6.2020, 106.8010),
	}
	g := datastructure.NewGraph()
	for _, c := range coords {
		g.AddVertex(c)
	}

	edges := []struct {
		from, to int
		name     string
		roadType string
	}{
		{0, 1, "Jalan Sudirman", "primary"},
		{1, 0, "Jalan Sudirman", "primary"},
		{1, 2, "Jalan M.H. Thamrin", "secondary"},
		{2, 0, "", "service"},
	}
	for _, e := range edges {
		length := coords[e.from].DistanceTo(coords[e.to])
		if err := g.AddEdge(coords[e.from], coords[e.to], e.name, e.roadType, length); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	return g
}

func TestRoadMapRoundTrip(t *testing.T) {

	testCases := []struct {
		name     string
		fileName string
	}{
		{"plain text", "roundtrip.map"},
		{"bzip2 compressed", "roundtrip.map.bz2"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := buildSampleGraph(t)
			path := filepath.Join(t.TempDir(), tt.fileName)

			if err := WriteRoadMap(path, g); err != nil {
				t.Fatalf("err: %v", err)
			}

			loaded, err := LoadRoadMap(path, zap.NewNop())
			if err != nil {
				t.Fatalf("err: %v", err)
			}

			if loaded.NumberOfVertices() != g.NumberOfVertices() {
				t.Errorf("vertices = %v, want %v", loaded.NumberOfVertices(), g.NumberOfVertices())
			}
			if loaded.NumberOfEdges() != g.NumberOfEdges() {
				t.Errorf("edges = %v, want %v", loaded.NumberOfEdges(), g.NumberOfEdges())
			}

			for _, loc := range g.GetVertices() {
				for _, edge := range g.GetOutEdges(loc) {
					loadedNode, ok := loaded.GetNode(loc)
					if !ok {
						t.Fatalf("vertex %v lost in round trip", loc)
					}
					loadedEdge, ok := loadedNode.GetEdgeTo(edge.GetTo())
					if !ok {
						t.Fatalf("edge %v -> %v lost in round trip", loc, edge.GetTo())
					}
					if loadedEdge.GetStreetName() != edge.GetStreetName() ||
						loadedEdge.GetRoadType() != edge.GetRoadType() ||
						!eq(loadedEdge.GetLength(), edge.GetLength()) {
						t.Errorf("edge %v -> %v changed in round trip", loc, edge.GetTo())
					}
				}
			}
		})
	}
}
