package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
)

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type mockClient struct {
	opts       *paho.ClientOptions
	published  []published
	connectErr error
}

func (m *mockClient) Connect() paho.Token {
	if m.connectErr == nil && m.opts != nil && m.opts.OnConnect != nil {
		m.opts.OnConnect(nil)
	}
	return dummyToken{err: m.connectErr}
}
func (m *mockClient) Disconnect(uint) {}
func (m *mockClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	m.published = append(m.published, published{topic, qos, payload.([]byte)})
	return dummyToken{}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (d dummyToken) Error() error                   { return d.err }

func withMockClient(t *testing.T, mc *mockClient) {
	t.Helper()
	prev := newMQTTClient
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() { newMQTTClient = prev })
}

func TestMQTTRecorderPublishesJSON(t *testing.T) {
	mc := &mockClient{}
	withMockClient(t, mc)

	rec, err := NewMQTTRecorder(MQTTConfig{Broker: "tcp://localhost:1883", TopicPrefix: "lab/cells/", QoS: 1})
	require.NoError(t, err)
	require.NoError(t, rec.Record(context.Background(), coretelemetry.Snapshot{CellID: "c7", Step: 2, Voltage: 3.9}))
	require.NoError(t, rec.Close())

	require.Len(t, mc.published, 1)
	assert.Equal(t, "lab/cells/c7", mc.published[0].topic)
	assert.Equal(t, byte(1), mc.published[0].qos)
	var got coretelemetry.Snapshot
	require.NoError(t, json.Unmarshal(mc.published[0].payload, &got))
	assert.Equal(t, 3.9, got.Voltage)
	assert.Equal(t, 2, got.Step)
	assert.Contains(t, mc.opts.ClientID, "cellsim-")
}

func TestMQTTRecorderErrors(t *testing.T) {
	_, err := NewMQTTRecorder(MQTTConfig{})
	assert.Error(t, err)

	mc := &mockClient{connectErr: fmt.Errorf("refused")}
	withMockClient(t, mc)
	_, err = NewMQTTRecorder(MQTTConfig{Broker: "tcp://localhost:1883"})
	assert.EqualError(t, err, "refused")
}

func TestMQTTRecorderIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			ExposedPorts: []string{"1883/tcp"},
			Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, container.Terminate(ctx)) }()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "1883")
	require.NoError(t, err)
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	msgs := make(chan []byte, 1)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("sub"))
	token := sub.Connect()
	require.True(t, token.WaitTimeout(5*time.Second))
	require.NoError(t, token.Error())
	defer sub.Disconnect(100)
	token = sub.Subscribe("cellsim/#", 1, func(_ paho.Client, m paho.Message) { msgs <- m.Payload() })
	require.True(t, token.WaitTimeout(5*time.Second))
	require.NoError(t, token.Error())

	rec, err := NewMQTTRecorder(MQTTConfig{Broker: broker, QoS: 1})
	require.NoError(t, err)
	defer func() { assert.NoError(t, rec.Close()) }()
	require.NoError(t, rec.Record(ctx, coretelemetry.Snapshot{CellID: "c1", Voltage: 3.8}))

	select {
	case p := <-msgs:
		var got coretelemetry.Snapshot
		require.NoError(t, json.Unmarshal(p, &got))
		assert.Equal(t, "c1", got.CellID)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for snapshot")
	}
}
