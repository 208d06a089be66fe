//go:build integration
// +build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_RoundTrip(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	r, err := NewRedis(ctx, redisURL, nil)
	require.NoError(t, err)
	defer r.Close()

	key := Key("test", t.Name(), time.Now().String())
	_, ok := r.Get(ctx, key)
	assert.False(t, ok)

	r.Set(ctx, key, []byte(`["python","docker"]`), time.Minute)
	got, ok := r.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, `["python","docker"]`, string(got))
}

func TestPostgres_RoundTrip(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	p, err := NewPostgres(ctx, databaseURL, nil)
	require.NoError(t, err)
	defer p.Close()

	key := Key("test", t.Name(), time.Now().String())
	_, ok := p.Get(ctx, key)
	assert.False(t, ok)

	p.Set(ctx, key, []byte(`["aws"]`), time.Minute)
	got, ok := p.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, `["aws"]`, string(got))

	// upsert replaces the value
	p.Set(ctx, key, []byte(`["gcp"]`), time.Minute)
	got, ok = p.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, `["gcp"]`, string(got))
}
