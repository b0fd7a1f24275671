package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"net/http"

	"github.com/tataton/roadgraph/pkg/concurrent"
	"github.com/tataton/roadgraph/pkg/geo"
	log "github.com/tataton/roadgraph/pkg/logger"
	"github.com/tataton/roadgraph/pkg/osmparser"
	"github.com/tataton/roadgraph/pkg/routing"

	_ "net/http/pprof"
)

var (
	mapFile    = flag.String("map_file", "./data/washington.map.bz2", "roadmap file built by the preprocessor")
	numQueries = flag.Int("num_queries", 10000, "number of random queries")
	numWorkers = flag.Int("workers", 100, "number of parallel query workers")
	seed       = flag.Int64("seed", 42, "random seed for query generation")
	outFile    = flag.String("out_file", "rand_queries_result.csv", "per query result file")
)

func main() {
	flag.Parse()
	logger, err := log.New("randqueries")
	if err != nil {
		panic(err)
	}

	graph, err := osmparser.LoadRoadMap(*mapFile, logger)
	if err != nil {
		panic(err)
	}
	router := routing.NewRouter(graph)
	vertices := graph.GetVertices()
	if len(vertices) < 2 {
		panic("graph too small for random queries")
	}

	type spParam struct {
		row int
		s   geo.Coordinate
		t   geo.Coordinate
	}
	newSPParam := func(row int, s, t geo.Coordinate) spParam {
		return spParam{row, s, t}
	}

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, 0, *numQueries)
	for n := 0; n < *numQueries; n++ {
		s := vertices[rng.Intn(len(vertices))]
		t := vertices[rng.Intn(len(vertices))]
		queries = append(queries, newSPParam(n, s, t))
	}

	lock := sync.Mutex{}

	randfout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer randfout.Close()
	w := bufio.NewWriter(randfout)
	defer w.Flush()

	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	var (
		mismatches     int
		dijkstraMillis []float64
		astarMillis    []float64
		visitedRatios  []float64
	)

	calcsSP := func(p spParam) any {

		s := p.s
		t := p.t
		row := p.row

		visitedDijkstra := 0
		before := time.Now()
		_, distDijkstra, foundDijkstra, err := router.DijkstraWithVisitor(s, t,
			func(geo.Coordinate) { visitedDijkstra++ })
		if err != nil {
			panic(err)
		}
		durDijkstra := time.Since(before)

		visitedAstar := 0
		before = time.Now()
		_, distAstar, foundAstar, err := router.AStarWithVisitor(s, t,
			func(geo.Coordinate) { visitedAstar++ })
		if err != nil {
			panic(err)
		}
		durAstar := time.Since(before)

		rowRec := []string{
			strconv.FormatFloat(distDijkstra, 'f', -1, 64),
			strconv.FormatFloat(distAstar, 'f', -1, 64),
			strconv.FormatInt(durDijkstra.Microseconds(), 10),
			strconv.FormatInt(durAstar.Microseconds(), 10),
			strconv.Itoa(visitedDijkstra),
			strconv.Itoa(visitedAstar),
		}

		lock.Lock()

		if foundDijkstra != foundAstar ||
			(foundDijkstra && !distEq(distDijkstra, distAstar)) {
			mismatches++
			logger.Sugar().Errorf("query %d: dijkstra %v (found=%v) vs astar %v (found=%v)",
				row, distDijkstra, foundDijkstra, distAstar, foundAstar)
		}
		dijkstraMillis = append(dijkstraMillis, float64(durDijkstra.Microseconds())/1000.0)
		astarMillis = append(astarMillis, float64(durAstar.Microseconds())/1000.0)
		if visitedDijkstra > 0 {
			visitedRatios = append(visitedRatios, float64(visitedAstar)/float64(visitedDijkstra))
		}

		for j, v := range rowRec {
			if _, err := fmt.Fprintf(w, "%s", v); err != nil {
				panic(err)
			}
			if j < len(rowRec)-1 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")

		lock.Unlock()
		if (row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", row+1)
		}

		return nil
	}

	workers := concurrent.NewWorkerPool[spParam, any](*numWorkers, *numQueries)

	for _, q := range queries {
		workers.AddJob(q)
	}

	workers.Close()
	workers.Start(calcsSP)
	workers.Wait()

	sort.Float64s(dijkstraMillis)
	sort.Float64s(astarMillis)

	meanRatio := 0.0
	for _, r := range visitedRatios {
		meanRatio += r
	}
	if len(visitedRatios) > 0 {
		meanRatio /= float64(len(visitedRatios))
	}

	logger.Sugar().Infof("%d queries, %d distance mismatches", *numQueries, mismatches)
	logger.Sugar().Infof("astar visited %.3f of dijkstra settled nodes on average", meanRatio)
	logger.Sugar().Infof("dijkstra query time ms: p50=%.3f p95=%.3f p99=%.3f",
		percentile(dijkstraMillis, 0.50), percentile(dijkstraMillis, 0.95), percentile(dijkstraMillis, 0.99))
	logger.Sugar().Infof("astar query time ms: p50=%.3f p95=%.3f p99=%.3f",
		percentile(astarMillis, 0.50), percentile(astarMillis, 0.95), percentile(astarMillis, 0.99))
}

func distEq(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1e-6
}

// percentile sorted must be ascending.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
