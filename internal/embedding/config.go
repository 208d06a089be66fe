package embedding

import "time"

// ProviderName names an embedding backend
type ProviderName string

// ProviderName constants define supported embedding backends
const (
	// ProviderNone disables semantic features
	ProviderNone ProviderName = "none"
	// ProviderGemini is the Google Gemini embedding API
	ProviderGemini ProviderName = "gemini"
	// ProviderOpenAI is the OpenAI embeddings API or any compatible server
	ProviderOpenAI ProviderName = "openai"
)

// DefaultModel returns the embedding model used when none is configured
func DefaultModel(p ProviderName) string {
	switch p {
	case ProviderGemini:
		return "text-embedding-004"
	case ProviderOpenAI:
		return "text-embedding-3-small"
	default:
		return ""
	}
}

// Options tunes loading and calling of the provider
type Options struct {
	// Timeout bounds every Encode call
	Timeout time.Duration
	// MaxAttempts is the number of load attempts before giving up
	MaxAttempts int
	// Backoff is the wait before the second attempt; it doubles after that
	Backoff time.Duration
	// Cooldown is how long a failed load is remembered before retrying
	Cooldown time.Duration
}

// DefaultOptions returns the default provider options
func DefaultOptions() Options {
	return Options{
		Timeout:     10 * time.Second,
		MaxAttempts: 3,
		Backoff:     500 * time.Millisecond,
		Cooldown:    30 * time.Second,
	}
}

const maxBackoff = 10 * time.Second

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.Backoff < 0 {
		o.Backoff = 0
	}
	if o.Cooldown < 0 {
		o.Cooldown = 0
	}
	return o
}

// backoff returns the wait before the given attempt (attempt 1 is the first retry)
func (o Options) backoff(attempt int) time.Duration {
	d := o.Backoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return min(d, maxBackoff)
}
