package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func passing() error { return nil }

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "test", MaxFailures: 2, Timeout: time.Second})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	assert.ErrorIs(t, cb.Execute(failing), errBoom)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(failing), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestHalfOpenTrial(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "test", MaxFailures: 1, Timeout: time.Second})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb.now = func() time.Time { return now }

	assert.Error(t, cb.Execute(failing))
	assert.Equal(t, StateOpen, cb.State())

	// a failed trial call reopens the breaker
	now = now.Add(2 * time.Second)
	assert.ErrorIs(t, cb.Execute(failing), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	now = now.Add(2 * time.Second)
	assert.NoError(t, cb.Execute(passing))
	assert.Equal(t, StateClosed, cb.State())
}

func TestSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "redis", MaxFailures: 2, Timeout: time.Second})

	assert.Error(t, cb.Execute(failing))
	assert.NoError(t, cb.Execute(passing))
	assert.Error(t, cb.Execute(failing))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, "redis", cb.Name())
}
