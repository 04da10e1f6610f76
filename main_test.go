package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/transit/config"
	"git.fiblab.net/sim/transit/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "routing_settings": {"bus_wait_time": 2, "bus_velocity": 30},
  "base_requests": [
    {"type": "Stop", "name": "Tolstopaltsevo", "latitude": 55.611087, "longitude": 37.20829, "road_distances": {"Marushkino": 3900}},
    {"type": "Stop", "name": "Marushkino", "latitude": 55.595884, "longitude": 37.209755, "road_distances": {"Rasskazovka": 9900, "Marushkino": 100}},
    {"type": "Stop", "name": "Rasskazovka", "latitude": 55.632761, "longitude": 37.333324, "road_distances": {"Marushkino": 9500}},
    {"type": "Stop", "name": "Biryulyovo Zapadnoye", "latitude": 55.574371, "longitude": 37.6517, "road_distances": {"Biryusinka": 1800, "Universam": 2400}},
    {"type": "Stop", "name": "Biryusinka", "latitude": 55.581065, "longitude": 37.64839, "road_distances": {"Universam": 750}},
    {"type": "Stop", "name": "Universam", "latitude": 55.587655, "longitude": 37.645687, "road_distances": {"Biryulyovo Zapadnoye": 2500}},
    {"type": "Stop", "name": "Pokrovskaya", "latitude": 55.603601, "longitude": 37.635517},
    {"type": "Bus", "name": "297", "stops": ["Biryulyovo Zapadnoye", "Biryusinka", "Universam", "Biryulyovo Zapadnoye"], "is_roundtrip": true},
    {"type": "Bus", "name": "750", "stops": ["Tolstopaltsevo", "Marushkino", "Marushkino", "Rasskazovka"], "is_roundtrip": false}
  ],
  "stat_requests": []
}`

func newTestServer(t testing.TB) *TransitServer {
	doc, err := document.Read(strings.NewReader(testDocument))
	require.NoError(t, err)
	e := NewEngine(config.Default(), doc)
	require.NoError(t, document.Apply(e, doc.RoutingSettings, doc.BaseRequests))
	require.NoError(t, e.Freeze(context.Background()))
	server, err := NewTransitServer(e)
	require.NoError(t, err)
	return server
}

func FuzzRouter(f *testing.F) {
	server := newTestServer(f)
	stops := server.engine.StopNames()
	f.Add(uint8(0), uint8(1))
	f.Add(uint8(3), uint8(3))

	// 构造随机请求
	f.Fuzz(func(t *testing.T, from uint8, to uint8) {
		req := &document.StatRequest{
			From: stops[int(from)%len(stops)],
			To:   stops[int(to)%len(stops)],
		}
		res, err := server.GetRoute(context.Background(), connect.NewRequest(req))
		// 有且只有一个是nil
		assert.True(t, (res == nil) != (err == nil))
		require.NoError(t, err)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(*res.Msg, &body))
		if req.From == req.To {
			assert.Equal(t, 0.0, body["total_time"])
		}
		if total, ok := body["total_time"].(float64); ok {
			assert.GreaterOrEqual(t, total, 0.0)
		}
	})
}

func TestRandomRouteRequests(t *testing.T) {
	stops := []string{"a", "b", "c"}
	reqs := randomRouteRequests(stops, 20, 1)
	assert.Len(t, reqs, 20)
	for _, req := range reqs {
		assert.Contains(t, stops, req.Msg.From)
		assert.Contains(t, stops, req.Msg.To)
	}
	// 相同种子结果相同
	again := randomRouteRequests(stops, 20, 1)
	for i := range reqs {
		assert.Equal(t, reqs[i].Msg, again[i].Msg)
	}
}
