package telemetry

import "github.com/kilianp07/cellsim/core/factory"

var recorderRegistry = factory.NewRegistry[Recorder]()

// RegisterRecorder adds a recorder factory identified by name.
func RegisterRecorder(name string, f factory.Factory[Recorder]) error {
	return recorderRegistry.Register(name, f)
}

// RecorderTypes lists the registered recorder names.
func RecorderTypes() []string { return recorderRegistry.Types() }

// NewRecorder creates a Recorder from the provided configuration.
func NewRecorder(cfgs []factory.ModuleConfig) (Recorder, error) {
	if len(cfgs) == 0 {
		return NopRecorder{}, nil
	}
	if len(cfgs) == 1 {
		return recorderRegistry.Create(cfgs[0])
	}
	recs, err := recorderRegistry.CreateAll(cfgs)
	if err != nil {
		_ = NewMultiRecorder(recs...).Close()
		return nil, err
	}
	return NewMultiRecorder(recs...), nil
}
