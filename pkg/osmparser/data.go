package osmparser

// NodeType classification of a way node. a node shared by more than one
// routable way is a junction.
type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

func (nc NodeCoord) GetLat() float64 {
	return nc.lat
}

func (nc NodeCoord) GetLon() float64 {
	return nc.lon
}

// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
var acceptedHighway = map[string]struct{}{
	"motorway":         struct{}{},
	"motorway_link":    struct{}{},
	"trunk":            struct{}{},
	"trunk_link":       struct{}{},
	"primary":          struct{}{},
	"primary_link":     struct{}{},
	"secondary":        struct{}{},
	"secondary_link":   struct{}{},
	"residential":      struct{}{},
	"residential_link": struct{}{},
	"service":          struct{}{},
	"tertiary":         struct{}{},
	"tertiary_link":    struct{}{},
	"road":             struct{}{},
	"track":            struct{}{},
	"unclassified":     struct{}{},
	"undefined":        struct{}{},
	"unknown":          struct{}{},
	"living_street":    struct{}{},
	"private":          struct{}{},
	"motorroad":        struct{}{},
}
