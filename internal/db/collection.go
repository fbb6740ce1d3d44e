package db

import (
	"context"

	"github.com/ukydev/lunch-spot/internal/models"
)

// SpotEventCollection defines the interface for spot event storage.
type SpotEventCollection interface {
	InsertSpotEvent(ctx context.Context, event models.SpotEvent) error
}
