// Package redis provides Redis persistence for flows. Each flow is stored as
// one JSON blob, with a set keeping the flow ID index.
package redis

import (
	"context"
	"fmt"

	"github.com/dexforge/dexforge/pkg/persistence"
	goredis "github.com/redis/go-redis/v9"
)

const (
	flowKeyPrefix = "dexforge:flow:"
	flowIndexKey  = "dexforge:flows"
)

// Persistence implements the persistence layer on Redis.
type Persistence struct {
	client   goredis.UniversalClient
	flowRepo *FlowRepository
}

// NewPersistence parses a redis:// URL and connects.
func NewPersistence(ctx context.Context, redisURL string) (*Persistence, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	err = client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Persistence{
		client:   client,
		flowRepo: NewFlowRepository(client),
	}, nil
}

// Close closes the client connection pool.
func (p *Persistence) Close(_ context.Context) error {
	err := p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// HealthCheck pings the server.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}

func (p *Persistence) FlowRepository() persistence.FlowRepository {
	return p.flowRepo
}

func (p *Persistence) NodeRepository() persistence.NodeRepository {
	return &nodeRepository{flows: p.flowRepo}
}
