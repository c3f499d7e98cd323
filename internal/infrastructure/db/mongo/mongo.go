package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach the Identity Store.
type Config struct {
	URI       string
	Database  string
	AccessKey string
	Timeout   time.Duration
}

// Connect establishes the Identity Store client, verifies connectivity
// with a ping, and returns both the client and the selected database. A
// default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AccessKey != "" {
		opts.SetAuth(options.Credential{
			Username: "hotel-console",
			Password: cfg.AccessKey,
		})
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("identity store connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("identity store ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}
