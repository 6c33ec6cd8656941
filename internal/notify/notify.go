// Package notify pushes rota changes to venue display screens over MQTT.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

const (
	publishTimeout = 2 * time.Second
	connectTimeout = 5 * time.Second
)

// Break actions carried by BreakEvent.
const (
	BreakSaved   = "saved"
	BreakDeleted = "deleted"
)

type PrayerStatusEvent struct {
	WorkerID   string    `json:"worker_id"`
	PrayerDate string    `json:"prayer_date"`
	PrayerName string    `json:"prayer_name"`
	HasPrayed  bool      `json:"has_prayed"`
	At         time.Time `json:"at"`
}

type BreakEvent struct {
	Action string       `json:"action"`
	Break  *model.Break `json:"break,omitempty"`
	ID     string       `json:"id"`
	At     time.Time    `json:"at"`
}

// Notifier publishes change events. Implementations never return errors to
// the caller; a failed publish is logged and dropped.
type Notifier interface {
	PrayerStatusChanged(ev PrayerStatusEvent)
	BreaksChanged(ev BreakEvent)
	Close()
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PrayerStatusChanged(PrayerStatusEvent) {}
func (Nop) BreaksChanged(BreakEvent)              {}
func (Nop) Close()                                {}

// publisher is the subset of mqtt.Client the notifier uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

type MQTTNotifier struct {
	client publisher
	prefix string
}

// NewMQTT connects to brokerURL and returns a notifier publishing under
// prefix, e.g. "rota/prayer/status".
func NewMQTT(brokerURL, clientID, prefix string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("failed to connect to MQTT broker: timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return newMQTTNotifier(client, prefix), nil
}

func newMQTTNotifier(client publisher, prefix string) *MQTTNotifier {
	return &MQTTNotifier{client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

func (n *MQTTNotifier) PrayerStatusChanged(ev PrayerStatusEvent) {
	n.publish("prayer/status", ev)
}

func (n *MQTTNotifier) BreaksChanged(ev BreakEvent) {
	n.publish("breaks", ev)
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
	log.Info().Msg("MQTT client disconnected")
}

func (n *MQTTNotifier) topic(suffix string) string {
	if n.prefix == "" {
		return suffix
	}
	return n.prefix + "/" + suffix
}

func (n *MQTTNotifier) publish(suffix string, v any) {
	topic := n.topic(suffix)
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to encode MQTT message")
		return
	}

	token := n.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("topic", topic).Msg("MQTT publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("failed to publish MQTT message")
		return
	}
	log.Debug().Str("topic", topic).Msg("MQTT message published")
}
