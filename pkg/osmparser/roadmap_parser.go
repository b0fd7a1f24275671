package osmparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
	"go.uber.org/zap"
)

var errMalformedLine = errors.New("malformed roadmap line")

// LoadRoadMap read a roadmap text file into a graph. one directed edge per
// line:
//
//	lat1 lon1 lat2 lon2 "Street Name" roadType [length_km]
//
// blank lines and lines starting with # are skipped. a missing length falls
// back to the haversine distance between the endpoints. a .bz2 path is
// decompressed on the fly.
func LoadRoadMap(path string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	graph := datastructure.NewGraph()
	br := bufio.NewReader(r)

	lineNumber := 0
	countEdges := 0
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		lineNumber++

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		from, to, name, roadType, length, err := parseRoadMapLine(line)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput,
				fmt.Sprintf("%s line %d", path, lineNumber))
		}

		graph.AddVertex(from)
		graph.AddVertex(to)
		if err := graph.AddEdge(from, to, name, roadType, length); err != nil {
			return nil, err
		}

		countEdges++
		if countEdges%50000 == 0 {
			logger.Sugar().Infof("loading roadmap edges: %d...", countEdges)
		}
	}

	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())

	return graph, nil
}

func parseRoadMapLine(line string) (from, to geo.Coordinate, name, roadType string,
	length float64, err error) {
	tokens := util.Fields(line)
	if len(tokens) < 6 {
		err = errMalformedLine
		return
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		coords[i], err = util.StringToFloat64(tokens[i])
		if err != nil {
			return
		}
	}
	from = geo.NewCoordinate(coords[0], coords[1])
	to = geo.NewCoordinate(coords[2], coords[3])

	// the trailing length is optional, present iff the last token is a number
	length, lengthErr := util.StringToFloat64(tokens[len(tokens)-1])
	last := len(tokens)
	hasLength := lengthErr == nil
	if hasLength {
		last--
	}
	if last < 6 {
		err = errMalformedLine
		return
	}
	roadType = tokens[last-1]

	// the quoted street name may span several tokens
	name, err = strconv.Unquote(strings.Join(tokens[4:last-1], " "))
	if err != nil {
		err = errMalformedLine
		return
	}

	if !hasLength {
		length = from.DistanceTo(to)
	}
	return from, to, name, roadType, length, nil
}

// WriteRoadMap write the graph in the text format LoadRoadMap reads, lengths
// included. a .bz2 path is compressed.
func WriteRoadMap(path string, graph *datastructure.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		w = bz
	}

	bw := bufio.NewWriter(w)
	for _, loc := range graph.GetVertices() {
		for _, edge := range graph.GetOutEdges(loc) {
			lat1 := strconv.FormatFloat(edge.GetFrom().GetLat(), 'f', -1, 64)
			lon1 := strconv.FormatFloat(edge.GetFrom().GetLon(), 'f', -1, 64)
			lat2 := strconv.FormatFloat(edge.GetTo().GetLat(), 'f', -1, 64)
			lon2 := strconv.FormatFloat(edge.GetTo().GetLon(), 'f', -1, 64)
			lengthF := strconv.FormatFloat(edge.GetLength(), 'f', -1, 64)

			roadType := edge.GetRoadType()
			if roadType == "" {
				roadType = "road"
			}

			fmt.Fprintf(bw, "%s %s %s %s %s %s %s\n",
				lat1, lon1, lat2, lon2, strconv.Quote(edge.GetStreetName()), roadType, lengthF)
		}
	}
	return bw.Flush()
}
