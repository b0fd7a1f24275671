package main

import (
	"flag"

	"github.com/tataton/roadgraph/pkg/concurrent"
	"github.com/tataton/roadgraph/pkg/geo"
	"github.com/tataton/roadgraph/pkg/logger"
	"github.com/tataton/roadgraph/pkg/osmparser"
)

var (
	mapFile = flag.String("map_file", "./data/washington.osm.pbf", "openstreetmap pbf extract to parse")
	outFile = flag.String("out_file", "./data/washington.map.bz2", "roadmap output file")
)

func main() {
	flag.Parse()
	logger, err := logger.New("preprocessor")
	if err != nil {
		panic(err)
	}
	osmParser := osmparser.NewOsmParser()
	graph, err := osmParser.Parse(*mapFile, logger)
	if err != nil {
		panic(err)
	}

	// total road length, fanned out over the worker pool per vertex
	pool := concurrent.NewWorkerPool[geo.Coordinate, float64](8, graph.NumberOfVertices())
	for _, v := range graph.GetVertices() {
		pool.AddJob(v)
	}
	pool.Close()
	pool.Start(func(v geo.Coordinate) float64 {
		total := 0.0
		for _, edge := range graph.GetOutEdges(v) {
			total += edge.GetLength()
		}
		return total
	})
	go pool.Wait()

	totalKm := 0.0
	for partial := range pool.CollectResults() {
		totalKm += partial
	}

	if err := osmparser.WriteRoadMap(*outFile, graph); err != nil {
		panic(err)
	}

	logger.Sugar().Infof("wrote %d vertices, %d edges (%.1f km of road) to %s",
		graph.NumberOfVertices(), graph.NumberOfEdges(), totalKm, *outFile)
}
