package embedding

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
)

// Loader constructs a ready-to-use Encoder. It is called lazily on first use
// and again after a failed load once the cooldown has passed. Each attempt
// gets a context bounded by Options.Timeout.
type Loader func(ctx context.Context) (Encoder, error)

type loadedEncoder struct {
	enc Encoder
}

// Provider is a lazily-initialised, shared Encoder. Concurrent first use loads
// the backend once; failed loads are retried with exponential backoff and are
// never cached permanently. Provider itself implements Encoder.
type Provider struct {
	load    Loader
	opts    Options
	logger  *zap.Logger
	metrics *observability.Metrics

	loaded atomic.Pointer[loadedEncoder]

	mu          sync.Mutex
	lastFailure time.Time
	warned      bool

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// NewProvider creates a provider around load. A nil load yields a provider
// that is always unavailable.
func NewProvider(load Loader, opts Options, logger *zap.Logger, metrics *observability.Metrics) *Provider {
	return &Provider{
		load:    load,
		opts:    opts.withDefaults(),
		logger:  observability.Component(logger, "embedding"),
		metrics: metrics,
		now:     time.Now,
		wait:    waitFor,
	}
}

// Get returns the loaded encoder, loading it if needed. It never returns an
// error: false means the provider is currently unavailable.
func (p *Provider) Get(ctx context.Context) (Encoder, bool) {
	if p == nil {
		return nil, false
	}
	if l := p.loaded.Load(); l != nil {
		return l.enc, true
	}
	if p.load == nil {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// another caller may have finished loading while we waited
	if l := p.loaded.Load(); l != nil {
		return l.enc, true
	}
	if !p.lastFailure.IsZero() && p.now().Sub(p.lastFailure) < p.opts.Cooldown {
		return nil, false
	}

	var lastErr error
	for attempt := 0; attempt < p.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := p.wait(ctx, p.opts.backoff(attempt)); err != nil {
				lastErr = err
				break
			}
		}

		loadCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
		enc, err := p.load(loadCtx)
		cancel()
		p.metrics.EmbeddingLoad(err == nil)
		if err == nil && enc != nil {
			p.loaded.Store(&loadedEncoder{enc: enc})
			p.lastFailure = time.Time{}
			if p.warned {
				p.logger.Info("embedding provider recovered")
			} else {
				p.logger.Debug("embedding provider loaded")
			}
			p.warned = false
			return enc, true
		}
		if err == nil {
			err = fmt.Errorf("loader returned no encoder")
		}
		lastErr = err
		p.logger.Debug("embedding provider load failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", p.opts.MaxAttempts),
			zap.Error(err),
		)
	}

	p.lastFailure = p.now()
	if !p.warned {
		p.logger.Warn("embedding provider unavailable, semantic features disabled",
			zap.Duration("retry_after", p.opts.Cooldown),
			zap.Error(lastErr),
		)
		p.warned = true
	}
	return nil, false
}

// Available reports whether an encoder is loaded or can be loaded now
func (p *Provider) Available(ctx context.Context) bool {
	_, ok := p.Get(ctx)
	return ok
}

// Encode embeds texts with the loaded encoder under the configured timeout.
// Unavailability, timeouts and backend errors all wrap ErrUnavailable.
func (p *Provider) Encode(ctx context.Context, texts []string) ([]Vector, error) {
	enc, ok := p.Get(ctx)
	if !ok {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	type result struct {
		vecs []Vector
		err  error
	}
	done := make(chan result, 1)
	go func() {
		vecs, err := enc.Encode(ctx, texts)
		done <- result{vecs: vecs, err: err}
	}()

	select {
	case <-ctx.Done():
		p.logger.Debug("embedding call abandoned", zap.Int("texts", len(texts)), zap.Error(ctx.Err()))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	case r := <-done:
		if r.err != nil {
			p.logger.Debug("embedding call failed", zap.Int("texts", len(texts)), zap.Error(r.err))
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, r.err)
		}
		return r.vecs, nil
	}
}

// waitFor sleeps for d or until ctx is done
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
