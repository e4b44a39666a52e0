package telemetry

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
	"github.com/kilianp07/cellsim/infra/logger"
)

// InfluxConfig are the connection settings of an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxRecorder writes snapshots as "cell_state" points.
type InfluxRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxRecorder creates a recorder writing to the configured bucket.
func NewInfluxRecorder(cfg InfluxConfig) *InfluxRecorder {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-recorder", logger.DefaultVerbosity),
	}
}

// NewInfluxRecorderWithFallback pings the InfluxDB instance and returns a
// NopRecorder if the health check fails.
func NewInfluxRecorderWithFallback(cfg InfluxConfig) coretelemetry.Recorder {
	rec := NewInfluxRecorder(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := rec.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			rec.log.Errorf("influx health check error: %v", err)
		} else {
			rec.log.Errorf("influx health status: %s", health.Status)
		}
		rec.client.Close()
		return coretelemetry.NopRecorder{}
	}
	return rec
}

// Point converts a snapshot to its line protocol point.
func Point(s coretelemetry.Snapshot) *write.Point {
	return write.NewPointWithMeasurement("cell_state").
		AddTag("run_id", s.RunID).
		AddTag("cell_id", s.CellID).
		AddTag("segment", s.Segment).
		AddField("step", s.Step).
		AddField("sim_time", s.SimTime).
		AddField("current", s.Current).
		AddField("voltage", round6(s.Voltage)).
		AddField("ocv", round6(s.OCV)).
		AddField("temperature", round6(s.Temperature)).
		AddField("charge", s.Charge).
		AddField("sei_thickness", s.SEIThickness).
		AddField("crack_area", s.CrackArea).
		AddField("lost_lithium", s.LostLithium).
		AddField("resistance", s.Resistance).
		AddField("plated_thickness", s.PlatedThickness).
		AddField("vol_frac_pos", s.VolFracPos).
		AddField("vol_frac_neg", s.VolFracNeg).
		SetTime(s.Time)
}

// Record writes one point.
func (r *InfluxRecorder) Record(ctx context.Context, s coretelemetry.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.writeAPI.WritePoint(ctx, Point(s)); err != nil {
		return err
	}
	r.log.Tracef("wrote %s step %d", s.CellID, s.Step)
	return nil
}

// Close releases the client.
func (r *InfluxRecorder) Close() error {
	r.client.Close()
	return nil
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
