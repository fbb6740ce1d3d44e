package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPort          = "3000"
	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"
	DefaultMQTTTopic     = "lunchspot/spots"
	DefaultKafkaTopic    = "lunchspot.spots"
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "lunchspot"
)

// Config holds all configuration for the relay.
type Config struct {
	Port             string
	GoogleMapsAPIKey string
	PlacesBaseURL    string
	PlacesTimeout    time.Duration
	LogLevel         string
	LogFormat        string

	EventsBackend string
	MQTTBroker    string
	MQTTTopic     string
	MQTTClientID  string
	KafkaBrokers  []string
	KafkaTopic    string
	MongoURI      string
	MongoDatabase string
}

// LoadEnv reads a .env file into the process environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, assuming environment variables are set directly")
	}
}

// Load builds a Config from environment variables.
func Load() *Config {
	timeout := time.Duration(0)
	if v := os.Getenv("PLACES_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			timeout = parsed
		} else {
			log.WithField("value", v).Warn("Ignoring invalid PLACES_TIMEOUT")
		}
	}

	return &Config{
		Port:             getEnv("PORT", DefaultPort),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		PlacesBaseURL:    strings.TrimRight(getEnv("PLACES_BASE_URL", DefaultPlacesBaseURL), "/"),
		PlacesTimeout:    timeout,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		EventsBackend:    strings.ToLower(getEnv("EVENTS_BACKEND", "none")),
		MQTTBroker:       os.Getenv("MQTT_BROKER"),
		MQTTTopic:        getEnv("MQTT_TOPIC", DefaultMQTTTopic),
		MQTTClientID:     getEnv("MQTT_CLIENT_ID", "lunch-spot-relay"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", DefaultKafkaTopic),
		MongoURI:         getEnv("MONGO_URI", DefaultMongoURI),
		MongoDatabase:    getEnv("MONGO_DB", DefaultMongoDatabase),
	}
}

// ConfigureLogger applies the level and format to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetFloat parses a float environment variable. ok is false when unset or invalid.
func GetFloat(key string) (value float64, ok bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
