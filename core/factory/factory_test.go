package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A       int           `json:"a"`
	Timeout time.Duration `json:"timeout"`
}

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}))
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.A)
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.ErrorIs(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }), ErrDuplicateType)
	assert.Error(t, reg.Register("z", nil))
	assert.Error(t, reg.Register("", func(map[string]any) (int, error) { return 0, nil }))

	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Contains(t, err.Error(), "known: x")

	boom := errors.New("boom")
	require.NoError(t, reg.Register("bad", func(map[string]any) (int, error) { return 0, boom }))
	_, err = reg.Create(ModuleConfig{Type: "bad"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad: boom")
}

func TestRegistryCreateAll(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("one", func(map[string]any) (int, error) { return 1, nil }))
	require.NoError(t, reg.Register("two", func(map[string]any) (int, error) { return 2, nil }))

	got, err := reg.CreateAll([]ModuleConfig{{Type: "two"}, {Type: "one"}})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, got)

	got, err = reg.CreateAll([]ModuleConfig{{Type: "one"}, {Type: "three"}})
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, []int{1}, got)
}

func TestRegistryTypes(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"prometheus", "influx", "mqtt"} {
		require.NoError(t, reg.Register(n, func(map[string]any) (int, error) { return 0, nil }))
	}
	assert.Equal(t, []string{"influx", "mqtt", "prometheus"}, reg.Types())
}

func TestDecodeWeakTypesAndDurations(t *testing.T) {
	var c sampleConf
	require.NoError(t, Decode(map[string]any{"a": "7", "timeout": "1500ms"}, &c))
	assert.Equal(t, 7, c.A)
	assert.Equal(t, 1500*time.Millisecond, c.Timeout)
}
