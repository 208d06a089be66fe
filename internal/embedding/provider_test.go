package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/observability"
)

func constantEncoder() Encoder {
	return encoderFunc(func(_ context.Context, texts []string) ([]Vector, error) {
		out := make([]Vector, len(texts))
		for i := range texts {
			out[i] = Vector{1, 0}
		}
		return out, nil
	})
}

// newTestProvider returns a provider with a controllable clock and recorded waits
func newTestProvider(load Loader, opts Options) (*Provider, *time.Time, *[]time.Duration) {
	p := NewProvider(load, opts, nil, observability.NewMetrics())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var waits []time.Duration
	p.now = func() time.Time { return now }
	p.wait = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return p, &now, &waits
}

func TestProvider_ConcurrentFirstUseLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	load := func(context.Context) (Encoder, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return constantEncoder(), nil
	}
	p, _, _ := newTestProvider(load, DefaultOptions())

	var wg sync.WaitGroup
	var available atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := p.Get(context.Background()); ok {
				available.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, int32(16), available.Load())
}

func TestProvider_RetriesWithBackoffThenUnavailable(t *testing.T) {
	var loads int
	load := func(context.Context) (Encoder, error) {
		loads++
		return nil, errors.New("model download failed")
	}
	p, _, waits := newTestProvider(load, Options{MaxAttempts: 3, Backoff: 100 * time.Millisecond, Cooldown: time.Minute})

	_, ok := p.Get(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 3, loads)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *waits)

	// within the cooldown no new attempt is made
	_, ok = p.Get(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 3, loads)
}

func TestProvider_RetriesAfterCooldownAndRecovers(t *testing.T) {
	var loads int
	load := func(context.Context) (Encoder, error) {
		loads++
		if loads <= 2 {
			return nil, errors.New("service unavailable")
		}
		return constantEncoder(), nil
	}
	p, now, _ := newTestProvider(load, Options{MaxAttempts: 2, Cooldown: 30 * time.Second})

	_, ok := p.Get(context.Background())
	require.False(t, ok)
	assert.Equal(t, 2, loads)

	*now = now.Add(31 * time.Second)

	enc, ok := p.Get(context.Background())
	require.True(t, ok)
	assert.NotNil(t, enc)
	assert.Equal(t, 3, loads)

	// loaded encoder is reused without further loads
	_, ok = p.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, 3, loads)
}

func TestProvider_SucceedsOnRetry(t *testing.T) {
	var loads int
	load := func(context.Context) (Encoder, error) {
		loads++
		if loads == 1 {
			return nil, errors.New("transient")
		}
		return constantEncoder(), nil
	}
	p, _, waits := newTestProvider(load, Options{MaxAttempts: 3, Backoff: time.Second})

	_, ok := p.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, 2, loads)
	assert.Len(t, *waits, 1)
}

func TestProvider_NilLoaderAndNilProvider(t *testing.T) {
	p := NewProvider(nil, DefaultOptions(), nil, nil)
	_, ok := p.Get(context.Background())
	assert.False(t, ok)

	_, err := p.Encode(context.Background(), []string{"go"})
	assert.ErrorIs(t, err, ErrUnavailable)

	var nilProvider *Provider
	assert.False(t, nilProvider.Available(context.Background()))
}

func TestProvider_EncodeTimeoutIsUnavailable(t *testing.T) {
	blocking := encoderFunc(func(ctx context.Context, _ []string) ([]Vector, error) {
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
		}
		return nil, ctx.Err()
	})
	load := func(context.Context) (Encoder, error) { return blocking, nil }
	p, _, _ := newTestProvider(load, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, err := p.Encode(context.Background(), []string{"kubernetes"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProvider_StalledLoadTimesOut(t *testing.T) {
	var loads atomic.Int32
	load := func(ctx context.Context) (Encoder, error) {
		loads.Add(1)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	p, _, _ := newTestProvider(load, Options{Timeout: 50 * time.Millisecond, MaxAttempts: 1, Cooldown: time.Minute})

	done := make(chan error, 1)
	go func() {
		_, err := p.Encode(context.Background(), []string{"kubernetes"})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrUnavailable)
	case <-time.After(2 * time.Second):
		t.Fatal("Encode blocked on a stalled loader")
	}
	assert.Equal(t, int32(1), loads.Load())
	assert.False(t, p.Available(context.Background()), "failed load is held for the cooldown")
}

func TestProvider_EncodeDelegates(t *testing.T) {
	load := func(context.Context) (Encoder, error) { return constantEncoder(), nil }
	p, _, _ := newTestProvider(load, DefaultOptions())

	vecs, err := p.Encode(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
}

func TestWaitFor(t *testing.T) {
	assert.NoError(t, waitFor(context.Background(), 0))
	assert.NoError(t, waitFor(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, waitFor(ctx, time.Hour), context.Canceled)
}
