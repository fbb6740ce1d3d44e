package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/models"
)

const mqttConnectTimeout = 10 * time.Second

// mqttClient is the subset of mqtt.Client the publisher needs.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes spot events with QoS 1.
type MQTTPublisher struct {
	client mqttClient
	topic  string
}

// NewMQTTPublisher connects to broker and returns a publisher for topic.
func NewMQTTPublisher(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", broker, err)
	}

	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Publishing spot events to MQTT")
	return &MQTTPublisher{client: client, topic: topic}, nil
}

// Publish sends event and waits for the broker acknowledgement or ctx.
func (p *MQTTPublisher) Publish(ctx context.Context, event models.SpotEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal spot event: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, data)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects after letting in-flight messages drain.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
