package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coretelemetry "github.com/kilianp07/cellsim/core/telemetry"
	"github.com/kilianp07/cellsim/infra/logger"
)

// MQTTConfig defines the broker connection of the MQTT recorder.
type MQTTConfig struct {
	Broker      string        `json:"broker"`
	ClientID    string        `json:"client_id"`
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	TopicPrefix string        `json:"topic_prefix"`
	QoS         byte          `json:"qos"`
	Retain      bool          `json:"retain"`
	Timeout     time.Duration `json:"timeout"`
}

type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// MQTTRecorder publishes snapshots as JSON on <topic_prefix>/<cell_id>.
type MQTTRecorder struct {
	cli     pahoClient
	prefix  string
	qos     byte
	retain  bool
	timeout time.Duration
	log     logger.Logger
}

// NewClientOptions builds paho client options from cfg.
func NewClientOptions(cfg MQTTConfig) *paho.ClientOptions {
	id := cfg.ClientID
	if id == "" {
		id = "cellsim-" + uuid.NewString()
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(id)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	return opts
}

// NewMQTTRecorder connects to the broker.
func NewMQTTRecorder(cfg MQTTConfig) (*MQTTRecorder, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt recorder: broker required")
	}
	log := logger.New("mqtt-recorder", logger.DefaultVerbosity)
	opts := NewClientOptions(cfg)
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	prefix := strings.TrimSuffix(cfg.TopicPrefix, "/")
	if prefix == "" {
		prefix = "cellsim"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTRecorder{cli: c, prefix: prefix, qos: cfg.QoS, retain: cfg.Retain, timeout: timeout, log: log}, nil
}

// Topic returns the topic the snapshots of cellID are published on.
func (r *MQTTRecorder) Topic(cellID string) string { return r.prefix + "/" + cellID }

// Record publishes the snapshot and waits for the broker to accept it.
func (r *MQTTRecorder) Record(ctx context.Context, s coretelemetry.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	token := r.cli.Publish(r.Topic(s.CellID), r.qos, r.retain, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.timeout):
		return fmt.Errorf("mqtt recorder: publish timeout on %s", r.Topic(s.CellID))
	}
	return token.Error()
}

// Close disconnects from the broker.
func (r *MQTTRecorder) Close() error {
	r.cli.Disconnect(250)
	return nil
}
