package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-api/pkg/circuitbreaker"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
}

func TestPublishOpensBreakerWhenRedisIsDown(t *testing.T) {
	p := NewWithClient(unreachableClient(), zerolog.Nop())
	defer p.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.Error(t, p.Publish(ctx, "clinic.events", map[string]string{"type": "patient.created"}))
	}
	assert.Equal(t, circuitbreaker.StateOpen, p.cb.State())

	err := p.Publish(ctx, "clinic.events", map[string]string{"type": "patient.created"})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}

func TestPublishRejectsUnmarshalableMessage(t *testing.T) {
	p := NewWithClient(unreachableClient(), zerolog.Nop())
	defer p.Close()

	err := p.Publish(context.Background(), "clinic.events", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal message")
	assert.Equal(t, circuitbreaker.StateClosed, p.cb.State())
}

func TestNewRedisPublisherRejectsBadURL(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), Config{URL: "not a url"}, zerolog.Nop())
	assert.Error(t, err)
}
