package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/lunch-spot/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// ConnectMongo connects to MongoDB at uri and pings it.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoCollection wraps a MongoDB collection of spot events.
type MongoCollection struct {
	Collection *mongo.Collection
}

// InsertSpotEvent stores one served lunch spot.
func (c *MongoCollection) InsertSpotEvent(ctx context.Context, event models.SpotEvent) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, event)
	return err
}
