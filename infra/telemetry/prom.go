package telemetry

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
)

var cellLabels = []string{"run_id", "cell_id"}

// PromRecorder exposes the last snapshot of every cell as Prometheus gauges.
type PromRecorder struct {
	voltage     *prometheus.GaugeVec
	temperature *prometheus.GaugeVec
	sei         *prometheus.GaugeVec
	crack       *prometheus.GaugeVec
	lli         *prometheus.GaugeVec
	resistance  *prometheus.GaugeVec
	plated      *prometheus.GaugeVec
	steps       *prometheus.CounterVec
}

// NewPromRecorder registers the cell metrics on the default Prometheus
// registerer. The HTTP endpoint is started separately with StartPromServer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gauge := func(name, help string) (*prometheus.GaugeVec, error) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, cellLabels)
		if err := reg.Register(g); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				return are.ExistingCollector.(*prometheus.GaugeVec), nil
			}
			return nil, err
		}
		return g, nil
	}

	var r PromRecorder
	var err error
	for _, g := range []struct {
		dst        **prometheus.GaugeVec
		name, help string
	}{
		{&r.voltage, "cellsim_voltage_volts", "Terminal voltage of the cell"},
		{&r.temperature, "cellsim_temperature_kelvin", "Cell temperature"},
		{&r.sei, "cellsim_sei_thickness_meters", "Thickness of the SEI layer"},
		{&r.crack, "cellsim_crack_area_square_meters", "Surface of the anode cracks"},
		{&r.lli, "cellsim_lost_lithium_ampere_hours", "Cumulative loss of lithium inventory"},
		{&r.resistance, "cellsim_resistance_ohms", "DC resistance of the cell"},
		{&r.plated, "cellsim_plated_thickness_meters", "Thickness of the plated lithium layer"},
	} {
		if *g.dst, err = gauge(g.name, g.help); err != nil {
			return nil, err
		}
	}

	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cellsim_recorded_steps_total",
		Help: "Number of recorded simulation steps",
	}, cellLabels)
	if err := reg.Register(steps); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		steps = are.ExistingCollector.(*prometheus.CounterVec)
	}
	r.steps = steps
	return &r, nil
}

// Record sets the gauges of the snapshot's cell.
func (r *PromRecorder) Record(_ context.Context, s coretelemetry.Snapshot) error {
	l := prometheus.Labels{"run_id": s.RunID, "cell_id": s.CellID}
	r.voltage.With(l).Set(s.Voltage)
	r.temperature.With(l).Set(s.Temperature)
	r.sei.With(l).Set(s.SEIThickness)
	r.crack.With(l).Set(s.CrackArea)
	r.lli.With(l).Set(s.LostLithium)
	r.resistance.With(l).Set(s.Resistance)
	r.plated.With(l).Set(s.PlatedThickness)
	r.steps.With(l).Inc()
	return nil
}

// Close is a no-op; metrics stay exposed until the process exits.
func (r *PromRecorder) Close() error { return nil }
