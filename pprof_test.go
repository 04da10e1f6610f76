package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.fiblab.net/sim/transit/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugStats(t *testing.T) {
	server := newTestServer(t)
	_, ok, err := server.engine.BuildRoute("Biryusinka", "Universam")
	require.NoError(t, err)
	require.True(t, ok)

	debugger := newHTTPDebugger("localhost:0", server.engine)
	rec := httptest.NewRecorder()
	debugger.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/transit", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var stats engine.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, "frozen", stats.Phase)
	assert.Equal(t, 7, stats.Stops)
	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 14, stats.GraphNodes)
	assert.Positive(t, stats.GraphEdges)
	assert.Equal(t, 1, stats.CachedTrees)
}
