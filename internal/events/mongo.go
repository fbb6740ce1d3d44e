package events

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/db"
	"github.com/ukydev/lunch-spot/internal/models"
)

const (
	SpotEventsCollection = "spot_events"
	mongoCloseTimeout    = 5 * time.Second
)

// MongoPublisher stores every spot event as a document.
type MongoPublisher struct {
	collection db.SpotEventCollection
	disconnect func(ctx context.Context) error
}

// NewMongoPublisher connects to uri and writes to the spot events collection of database.
func NewMongoPublisher(uri, database string) (*MongoPublisher, error) {
	client, err := db.ConnectMongo(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.WithFields(log.Fields{"database": database, "collection": SpotEventsCollection}).Info("Storing spot events in MongoDB")
	return &MongoPublisher{
		collection: &db.MongoCollection{Collection: client.Database(database).Collection(SpotEventsCollection)},
		disconnect: client.Disconnect,
	}, nil
}

func (p *MongoPublisher) Publish(ctx context.Context, event models.SpotEvent) error {
	if err := p.collection.InsertSpotEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to store spot event: %w", err)
	}
	return nil
}

func (p *MongoPublisher) Close() error {
	if p.disconnect == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return p.disconnect(ctx)
}
