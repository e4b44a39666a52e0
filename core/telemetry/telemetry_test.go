package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cellsim/core/factory"
)

type memRecorder struct {
	mu     sync.Mutex
	snaps  []Snapshot
	err    error
	closed bool
}

func (m *memRecorder) Record(_ context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.snaps = append(m.snaps, s)
	return nil
}

func (m *memRecorder) Close() error {
	m.closed = true
	return nil
}

func TestMultiRecorderFansOut(t *testing.T) {
	a, b := &memRecorder{}, &memRecorder{}
	m := NewMultiRecorder(a, b)
	require.NoError(t, m.Record(context.Background(), Snapshot{CellID: "c1", Step: 3}))
	assert.Len(t, a.snaps, 1)
	assert.Equal(t, "c1", b.snaps[0].CellID)
	require.NoError(t, m.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestMultiRecorderDeliversPastFailingSink(t *testing.T) {
	boom, bust := errors.New("boom"), errors.New("bust")
	a, b, c := &memRecorder{err: boom}, &memRecorder{}, &memRecorder{err: bust}
	err := NewMultiRecorder(a, b, c).Record(context.Background(), Snapshot{CellID: "c2"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, bust)
	require.Len(t, b.snaps, 1)
	assert.Equal(t, "c2", b.snaps[0].CellID)
}

func TestNewRecorderFromRegistry(t *testing.T) {
	mem := &memRecorder{}
	require.NoError(t, RegisterRecorder("test-mem", func(map[string]any) (Recorder, error) { return mem, nil }))
	assert.Contains(t, RecorderTypes(), "test-mem")

	r, err := NewRecorder(nil)
	require.NoError(t, err)
	assert.IsType(t, NopRecorder{}, r)

	r, err = NewRecorder([]factory.ModuleConfig{{Type: "test-mem"}})
	require.NoError(t, err)
	assert.Same(t, mem, r)

	r, err = NewRecorder([]factory.ModuleConfig{{Type: "test-mem"}, {Type: "test-mem"}})
	require.NoError(t, err)
	require.IsType(t, &MultiRecorder{}, r)
	assert.Len(t, r.(*MultiRecorder).Recorders, 2)

	_, err = NewRecorder([]factory.ModuleConfig{{Type: "test-mem"}, {Type: "missing"}})
	assert.Error(t, err)
}
