package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/cellsim/core/factory"
	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
	"github.com/kilianp07/cellsim/infra/logger"
)

// init registers the built-in recorders.
func init() {
	_ = coretelemetry.RegisterRecorder("nop", func(map[string]any) (coretelemetry.Recorder, error) {
		return coretelemetry.NopRecorder{}, nil
	})

	_ = coretelemetry.RegisterRecorder("log", func(conf map[string]any) (coretelemetry.Recorder, error) {
		c := struct {
			Verbosity int `json:"verbosity"`
		}{Verbosity: logger.DefaultVerbosity}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewLogRecorder(logger.New("telemetry", c.Verbosity)), nil
	})

	_ = coretelemetry.RegisterRecorder("prometheus", func(map[string]any) (coretelemetry.Recorder, error) {
		// The endpoint is served by StartPromServer, see simulation.prometheus_addr.
		return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coretelemetry.RegisterRecorder("influx", func(conf map[string]any) (coretelemetry.Recorder, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxRecorderWithFallback(c), nil
	})

	_ = coretelemetry.RegisterRecorder("mqtt", func(conf map[string]any) (coretelemetry.Recorder, error) {
		var c MQTTConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMQTTRecorder(c)
	})

	_ = coretelemetry.RegisterRecorder("plot", func(conf map[string]any) (coretelemetry.Recorder, error) {
		var c PlotConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPlotRecorder(c)
	})
}
