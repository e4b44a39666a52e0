package telemetry

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cellsim/core/factory"
	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
)

func TestNewPlotRecorderValidation(t *testing.T) {
	_, err := NewPlotRecorder(PlotConfig{})
	assert.Error(t, err)

	_, err = NewPlotRecorder(PlotConfig{Path: "out.png", Field: "soc"})
	assert.Error(t, err)

	r, err := NewPlotRecorder(PlotConfig{Path: "out.png"})
	require.NoError(t, err)
	assert.Equal(t, "voltage", r.cfg.Field)
	assert.Contains(t, PlotFields(), "sei_thickness")
}

func TestPlotRecorderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltage.png")
	r, err := NewPlotRecorder(PlotConfig{Path: path})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{"cell-1", "cell-0"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_ = r.Record(context.Background(), coretelemetry.Snapshot{CellID: id, SimTime: float64(i) * 60, Voltage: 3.8 - 0.01*float64(i)})
			}
		}(id)
	}
	wg.Wait()

	p, err := r.Plot()
	require.NoError(t, err)
	assert.Equal(t, "Time [h]", p.X.Label.Text)

	require.NoError(t, r.Close())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestPlotRecorderEmptyWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	r, err := NewPlotRecorder(PlotConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, r.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPlotRecorderFromFactory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sei.svg")
	r, err := coretelemetry.NewRecorder([]factory.ModuleConfig{{Type: "plot", Conf: map[string]any{"path": path, "field": "sei_thickness", "width": "12"}}})
	require.NoError(t, err)
	require.NoError(t, r.Record(context.Background(), coretelemetry.Snapshot{CellID: "c", SimTime: 10, SEIThickness: 5e-9}))
	require.NoError(t, r.Close())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
}
