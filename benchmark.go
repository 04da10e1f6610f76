package main

import (
	"context"
	"encoding/json"
	"flag"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"math/rand"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/transit/document"
	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random routing count for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

// 随机生成count个起终点都在图中的路径规划请求
func randomRouteRequests(stops []string, count int, seed int64) []*connect.Request[document.StatRequest] {
	e := rand.New(rand.NewSource(seed))
	reqs := make([]*connect.Request[document.StatRequest], count)
	for i := 0; i < count; i++ {
		reqs[i] = connect.NewRequest(&document.StatRequest{
			ID:   int64(i),
			From: stops[e.Intn(len(stops))],
			To:   stops[e.Intn(len(stops))],
		})
	}
	return reqs
}

// 应答中有路线时计为成功
func routeFound(res *connect.Response[json.RawMessage]) bool {
	var body struct {
		ErrorMessage string `json:"error_message"`
	}
	return res != nil && json.Unmarshal(*res.Msg, &body) == nil && body.ErrorMessage == ""
}

func runBenchmark(server *TransitServer) {
	log.Logger.SetLevel(logrus.WarnLevel)
	stops := server.engine.StopNames()
	if len(stops) == 0 {
		log.Error("benchmark needs routing settings and at least one stop")
		return
	}
	reqs := randomRouteRequests(stops, *benchmarkCount, *benchmarkSeed)

	// 开始benchmark
	start := time.Now()
	var wg sync.WaitGroup
	var success atomic.Int32
	if *benchmarkCPU == 1 {
		for _, req := range reqs {
			res, err := server.GetRoute(context.Background(), req)
			if err != nil {
				log.Error("benchmark failed, err:", err)
			}
			if routeFound(res) {
				success.Add(1)
			}
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
		wg.Add(len(reqs))
		for _, req := range reqs {
			go func(req *connect.Request[document.StatRequest]) {
				defer wg.Done()
				res, err := server.GetRoute(context.Background(), req)
				if err != nil {
					log.Error("benchmark failed, err:", err)
				}
				if routeFound(res) {
					success.Add(1)
				}
			}(req)
		}
		wg.Wait()
	}
	timeCost := time.Since(start) * time.Duration(*benchmarkCPU)
	log.Error(
		"benchmark finished", "\n",
		"count:", len(reqs), "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(max(len(reqs), 1)), "\n",
		"success:", success.Load(), "\n",
	)
}
