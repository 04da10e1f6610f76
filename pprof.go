package main

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"

	"git.fiblab.net/sim/transit/engine"
)

// 访问/debug/pprof/进入pprof实时分析页面，/debug/transit查看目录与最短路缓存规模
func newHTTPDebugger(addr string, e *engine.Engine) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/transit", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(e.Stats()); err != nil {
			log.Warnf("failed to write debug stats: %v", err)
		}
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func startHTTPDebugger(server *http.Server) {
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warnf("pprof server stopped: %v", err)
		}
	}()
	log.Infof("pprof listening at %v", server.Addr)
}
