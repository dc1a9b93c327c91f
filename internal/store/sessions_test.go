package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryKV) Del(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestSessionStore_SaveResolveRevoke(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionStore(newMemoryKV(), time.Hour)

	require.NoError(t, sessions.Save(ctx, "tok-1", 42))

	id, err := sessions.Resolve(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, sessions.Revoke(ctx, "tok-1"))

	_, err = sessions.Resolve(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSessionStore_UnknownTokenIsMiss(t *testing.T) {
	sessions := NewSessionStore(newMemoryKV(), time.Hour)

	_, err := sessions.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMiss)
}
