package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/tataton/roadgraph/pkg/datastructure"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/util"
	"go.uber.org/zap"
)

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
	}
}

// Parse stream an .osm.pbf extract twice and build the road graph. the first
// pass classifies the nodes of routable ways, the second collects their
// coordinates and emits one directed edge per consecutive node pair of every
// routable way, plus the reverse edge unless the way is oneway.
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()

		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}
		if !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, node := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(node.ID)] = END_NODE
				} else {
					p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
			}
		}
	}
	scanner.Close()

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}

	// nodes come before ways inside a pbf, so one scan can collect way node
	// coordinates and still have them when the ways arrive
	graph := datastructure.NewGraph()
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	defer scanner.Close()

	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			{
				if (countNodes+1)%500000 == 0 {
					logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
				}
				countNodes++
				node := o.(*osm.Node)

				if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
					p.acceptedNodeMap[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
				}
			}
		case osm.TypeWay:
			{
				way := o.(*osm.Way)
				if len(way.Nodes) < 2 {
					continue
				}
				if !acceptOsmWay(way) {
					continue
				}
				if (countWays+1)%100000 == 0 {
					logger.Sugar().Infof("processing openstreetmap ways: %d...", countWays+1)
				}
				countWays++

				if err := p.processWay(way, graph); err != nil {
					continue
				}
			}
		}
	}

	junctions := 0
	for _, nodeType := range p.wayNodeMap {
		if nodeType == JUNCTION_NODE {
			junctions++
		}
	}
	logger.Sugar().Infof("number of junction nodes: %v", junctions)
	logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())

	return graph, nil
}

// processWay add the edges of one routable way to the graph.
func (p *OsmParser) processWay(way *osm.Way, graph *datastructure.Graph) error {
	name := way.Tags.Find("name")
	if name == "" {
		name = way.Tags.Find("ref")
	}
	roadType := way.Tags.Find("highway")
	if roadType == "" {
		// junction-only ways carry no highway tag
		roadType = "road"
	}

	oneWay, forward := wayDirection(way)

	wayNodes := make([]geo.Coordinate, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			// clipped extract, the way references a node outside of it
			return nil
		}
		wayNodes = append(wayNodes, geo.NewCoordinate(coord.GetLat(), coord.GetLon()))
	}

	if oneWay && !forward {
		// drivable against the node order only, flip it once and emit forward
		wayNodes = util.ReverseG(wayNodes)
	}

	for i := 1; i < len(wayNodes); i++ {
		from, to := wayNodes[i-1], wayNodes[i]
		if from == to {
			continue
		}

		graph.AddVertex(from)
		graph.AddVertex(to)

		length := from.DistanceTo(to)
		if err := graph.AddEdge(from, to, name, roadType, length); err != nil {
			return err
		}
		if !oneWay {
			if err := graph.AddEdge(to, from, name, roadType, length); err != nil {
				return err
			}
		}
	}
	return nil
}

func isRestricted(value string) bool {
	if value == "no" || value == "restricted" {
		return true
	}
	return false
}

// wayDirection oneway=yes follows the node order, oneway=-1 or a restricted
// vehicle:forward / motor_vehicle:forward goes against it.
func wayDirection(way *osm.Way) (oneWay, forward bool) {
	okvf := isRestricted(way.Tags.Find("vehicle:forward"))
	okmvf := isRestricted(way.Tags.Find("motor_vehicle:forward"))
	okvb := isRestricted(way.Tags.Find("vehicle:backward"))
	okmvb := isRestricted(way.Tags.Find("motor_vehicle:backward"))

	if val := way.Tags.Find("oneway"); val == "yes" || val == "-1" || okvf || okmvf || okvb || okmvb {
		oneWay = true
	}

	forward = true
	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		forward = false
	}
	return oneWay, forward
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}
