package controllers

import "github.com/tataton/roadgraph/pkg/geo"

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
	Algorithm      string  `json:"algorithm" validate:"required,oneof=dijkstra astar bfs"`
}

type shortestPathResponse struct {
	Eta          float64     `json:"eta"`
	Path         string      `json:"path"`
	Dist         float64     `json:"distance"`
	Coordinates  [][]float64 `json:"coordinates"`
	VisitedNodes int         `json:"visited_nodes"`
}

func NewShortestPathResponse(eta, dist float64, path string, routeCoords []geo.Coordinate,
	visitedNodes int) shortestPathResponse {
	coordinates := make([][]float64, len(routeCoords))
	for i, c := range routeCoords {
		coordinates[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return shortestPathResponse{
		Eta:          eta,
		Path:         path,
		Dist:         dist,
		Coordinates:  coordinates,
		VisitedNodes: visitedNodes,
	}
}

type visitedNodeEvent struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
