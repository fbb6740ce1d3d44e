// Package events publishes a record of each served lunch spot to an optional
// message broker. Publishing is best effort and never affects the lookup.
package events

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/config"
	"github.com/ukydev/lunch-spot/internal/models"
)

const (
	BackendNone  = "none"
	BackendMQTT  = "mqtt"
	BackendKafka = "kafka"
	BackendMongo = "mongo"
)

// Publisher delivers spot events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event models.SpotEvent) error
	Close() error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, models.SpotEvent) error { return nil }
func (Noop) Close() error                                     { return nil }

// New builds the publisher selected by cfg.EventsBackend.
func New(cfg *config.Config) (Publisher, error) {
	switch cfg.EventsBackend {
	case "", BackendNone:
		return Noop{}, nil
	case BackendMQTT:
		if cfg.MQTTBroker == "" {
			return nil, fmt.Errorf("MQTT_BROKER is required for the mqtt events backend")
		}
		return NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
	case BackendKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("KAFKA_BROKERS is required for the kafka events backend")
		}
		log.WithFields(log.Fields{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic}).Info("Publishing spot events to Kafka")
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case BackendMongo:
		return NewMongoPublisher(cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.EventsBackend)
	}
}
