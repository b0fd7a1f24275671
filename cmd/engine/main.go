package main

import (
	"context"
	"flag"

	"github.com/tataton/roadgraph/pkg/http"
	"github.com/tataton/roadgraph/pkg/http/usecases"
	"github.com/tataton/roadgraph/pkg/logger"
	"github.com/tataton/roadgraph/pkg/osmparser"
	"github.com/tataton/roadgraph/pkg/routing"
	"github.com/tataton/roadgraph/pkg/spatialindex"
	"github.com/tataton/roadgraph/pkg/util"
	"go.uber.org/zap"
)

var (
	mapFile               = flag.String("map_file", "./data/washington.map.bz2", "roadmap file built by the preprocessor")
	searchRadius          = flag.Float64("search_radius", 0.04, "radius in km for snapping query points to the road graph")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	useRateLimit          = flag.Bool("use_rate_limit", false, "rate limit the shortest path api")
)

func main() {
	flag.Parse()
	logger, err := logger.New("engine")
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	graph, err := osmparser.LoadRoadMap(*mapFile, logger)
	if err != nil {
		panic(err)
	}
	router := routing.NewRouter(graph)

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, *leafBoundingBoxRadius, logger)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, router, rtree, *searchRadius)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, *useRateLimit, routingService)

	signal := http.GracefulShutdown()

	logger.Info("Roadgraph Routing Engine Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
