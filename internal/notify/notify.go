// Package notify publishes translation memory events over MQTT so that
// reviewers and downstream caches learn about new machine translations.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/model"
)

const (
	topicPrefix    = "tarjumo/translations"
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

// Publisher announces translations written to the memory.
type Publisher interface {
	TranslationStored(ctx context.Context, e *model.TranslationEntry)
	Close()
}

// Event is the payload of a translation event.
type Event struct {
	Key        string    `json:"key"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	Provider   string    `json:"provider"`
	Method     string    `json:"method"`
	Score      float64   `json:"score"`
	Verified   bool      `json:"verified"`
	At         time.Time `json:"at"`
}

// Topic is the topic events for a language pair are published on.
func Topic(source, target string) string {
	return fmt.Sprintf("%s/%s/%s", topicPrefix, source, target)
}

func NewEvent(e *model.TranslationEntry) Event {
	return Event{
		Key:        e.Key,
		SourceLang: e.SourceLang,
		TargetLang: e.TargetLang,
		Provider:   e.Provider,
		Method:     e.Method,
		Score:      e.Score,
		Verified:   e.Verified,
		At:         time.Now().UTC(),
	}
}

type mqttPublisher struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("[notify] connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("[notify] MQTT connection lost")
}

// Connect returns a publisher for brokerURL. An empty URL gives a publisher
// that drops every event.
func Connect(brokerURL, clientID string) (Publisher, error) {
	if brokerURL == "" {
		log.Info().Msg("[notify] no MQTT broker configured, events disabled")
		return Nop{}, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return NewPublisher(client), nil
}

// NewPublisher publishes through an already configured client.
func NewPublisher(client mqtt.Client) Publisher {
	return &mqttPublisher{client: client}
}

func (p *mqttPublisher) TranslationStored(ctx context.Context, e *model.TranslationEntry) {
	payload, err := json.Marshal(NewEvent(e))
	if err != nil {
		log.Error().Err(err).Msg("[notify] failed to encode event")
		return
	}

	topic := Topic(e.SourceLang, e.TargetLang)
	token := p.client.Publish(topic, 1, false, payload)

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if !token.WaitTimeout(timeout) {
		log.Warn().Str("topic", topic).Msg("[notify] publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("[notify] publish failed")
		return
	}
	log.Debug().Str("topic", topic).Str("key", e.Key).Msg("[notify] event published")
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(disconnectWait)
	log.Info().Msg("[notify] MQTT client disconnected")
}

// Nop drops events.
type Nop struct{}

func (Nop) TranslationStored(context.Context, *model.TranslationEntry) {}
func (Nop) Close()                                                      {}
