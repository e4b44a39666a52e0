package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
)

func TestInfluxRecorderWritesLineProtocol(t *testing.T) {
	var (
		mu   sync.Mutex
		body string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = string(data)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rec := NewInfluxRecorder(InfluxConfig{URL: srv.URL, Token: "tok", Org: "org", Bucket: "bucket"})
	defer func() { assert.NoError(t, rec.Close()) }()

	s := coretelemetry.Snapshot{
		RunID: "run", CellID: "c1", Segment: "discharge", Time: time.Unix(1700000000, 0),
		Step: 4, SimTime: 40, Current: 2.7, Voltage: 3.71234567, Temperature: 298.15,
		SEIThickness: 1e-9, Resistance: 0.0102,
	}
	require.NoError(t, rec.Record(context.Background(), s))

	want := strings.TrimSpace(write.PointToLineProtocol(Point(s), time.Nanosecond))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, strings.TrimSpace(body))
	assert.Contains(t, body, "cell_state,cell_id=c1,run_id=run,segment=discharge")
	assert.Contains(t, body, "voltage=3.712346")
}

func TestNewInfluxRecorderWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	rec := NewInfluxRecorderWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	assert.True(t, called)
	assert.IsType(t, coretelemetry.NopRecorder{}, rec)
}
