package telemetry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
)

// PlotConfig configures the plot recorder.
type PlotConfig struct {
	// Path of the image, the extension selects the format (png, svg, pdf).
	Path string `json:"path"`
	// Field is the snapshot quantity drawn against simulated time.
	Field  string  `json:"field"`
	Width  float64 `json:"width"`  // [cm]
	Height float64 `json:"height"` // [cm]
}

var plotFields = map[string]struct {
	label string
	value func(coretelemetry.Snapshot) float64
}{
	"voltage":       {"Voltage [V]", func(s coretelemetry.Snapshot) float64 { return s.Voltage }},
	"ocv":           {"OCV [V]", func(s coretelemetry.Snapshot) float64 { return s.OCV }},
	"temperature":   {"Temperature [K]", func(s coretelemetry.Snapshot) float64 { return s.Temperature }},
	"sei_thickness": {"SEI thickness [m]", func(s coretelemetry.Snapshot) float64 { return s.SEIThickness }},
	"crack_area":    {"Crack area [m2]", func(s coretelemetry.Snapshot) float64 { return s.CrackArea }},
	"lost_lithium":  {"Lost lithium [Ah]", func(s coretelemetry.Snapshot) float64 { return s.LostLithium }},
	"resistance":    {"Resistance [Ohm]", func(s coretelemetry.Snapshot) float64 { return s.Resistance }},
}

// PlotFields lists the quantities a PlotRecorder can draw.
func PlotFields() []string {
	out := make([]string, 0, len(plotFields))
	for k := range plotFields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PlotRecorder buffers snapshots and draws one line per cell when closed.
type PlotRecorder struct {
	cfg PlotConfig

	mu     sync.Mutex
	series map[string]plotter.XYs
}

// NewPlotRecorder validates cfg and creates a PlotRecorder.
func NewPlotRecorder(cfg PlotConfig) (*PlotRecorder, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("plot recorder: path is required")
	}
	if cfg.Field == "" {
		cfg.Field = "voltage"
	}
	if _, ok := plotFields[cfg.Field]; !ok {
		return nil, fmt.Errorf("plot recorder: unknown field %q", cfg.Field)
	}
	if cfg.Width <= 0 {
		cfg.Width = 16
	}
	if cfg.Height <= 0 {
		cfg.Height = 10
	}
	return &PlotRecorder{cfg: cfg, series: make(map[string]plotter.XYs)}, nil
}

func (r *PlotRecorder) Record(_ context.Context, s coretelemetry.Snapshot) error {
	v := plotFields[r.cfg.Field].value(s)
	r.mu.Lock()
	r.series[s.CellID] = append(r.series[s.CellID], plotter.XY{X: s.SimTime / 3600, Y: v})
	r.mu.Unlock()
	return nil
}

// Plot builds the figure of the recorded series.
func (r *PlotRecorder) Plot() (*plot.Plot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := plot.New()
	p.Title.Text = plotFields[r.cfg.Field].label
	p.X.Label.Text = "Time [h]"
	p.Y.Label.Text = plotFields[r.cfg.Field].label

	ids := make([]string, 0, len(r.series))
	for id := range r.series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i, id := range ids {
		l, err := plotter.NewLine(r.series[id])
		if err != nil {
			return nil, fmt.Errorf("plot recorder: %s: %w", id, err)
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(id, l)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// Close writes the image. Nothing is written when no snapshot was recorded.
func (r *PlotRecorder) Close() error {
	r.mu.Lock()
	empty := len(r.series) == 0
	r.mu.Unlock()
	if empty {
		return nil
	}
	p, err := r.Plot()
	if err != nil {
		return err
	}
	return p.Save(vg.Length(r.cfg.Width)*vg.Centimeter, vg.Length(r.cfg.Height)*vg.Centimeter, r.cfg.Path)
}
