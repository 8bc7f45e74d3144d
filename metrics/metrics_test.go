package metrics_test

import (
	// Go Internal Packages
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	// Local Packages
	metrics "wiki-stream/metrics"

	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegister_IsIdempotent(t *testing.T) {
	m := metrics.New("")
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg, m.Collectors()...))
	require.NoError(t, metrics.Register(reg, m.Collectors()...))
}

func TestNewRegistry(t *testing.T) {
	m := metrics.New("")
	reg, err := metrics.NewRegistry(m)
	require.NoError(t, err)

	m.RecordsPrinted.WithLabelValues("wikimedia").Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["wiki_stream_records_printed_total"])
	assert.True(t, names["go_goroutines"])
}

func TestNew_UsesNamespace(t *testing.T) {
	m := metrics.New("opensearch_consumer")
	reg, err := metrics.NewRegistry(m)
	require.NoError(t, err)

	m.RecordsPrinted.WithLabelValues("wikimedia").Add(2)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RecordsPrinted.WithLabelValues("wikimedia")))

	n, err := testutil.GatherAndCount(reg, "opensearch_consumer_records_printed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = testutil.GatherAndCount(reg, "wiki_stream_records_printed_total")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRouter(t *testing.T) {
	m := metrics.New("")
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg, m.Collectors()...))
	m.RecordsPrinted.WithLabelValues("router-test").Inc()

	r := metrics.NewRouter(reg, zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `wiki_stream_records_printed_total{topic="router-test"}`)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{Addr: addr, Handler: metrics.NewRouter(prometheus.NewRegistry(), zap.NewNop())}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- metrics.Serve(ctx, srv, zap.NewNop()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Serve to stop")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = metrics.Serve(context.Background(), srv, zap.NewNop())
	assert.Error(t, err)
}
