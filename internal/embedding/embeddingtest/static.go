// Package embeddingtest provides deterministic encoders for tests.
package embeddingtest

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

// Static maps texts to fixed vectors. A text with no exact entry gets the
// vector of the first Rules substring it contains, then Default.
type Static struct {
	Vectors map[string]embedding.Vector
	Rules   []Rule
	Default embedding.Vector
	Err     error

	calls atomic.Int64
}

// Rule assigns Vector to any text containing Substring
type Rule struct {
	Substring string
	Vector    embedding.Vector
}

// Encode implements embedding.Encoder
func (s *Static) Encode(_ context.Context, texts []string) ([]embedding.Vector, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]embedding.Vector, len(texts))
	for i, text := range texts {
		out[i] = s.lookup(text)
	}
	return out, nil
}

// Calls returns how many times Encode ran
func (s *Static) Calls() int {
	return int(s.calls.Load())
}

func (s *Static) lookup(text string) embedding.Vector {
	if v, ok := s.Vectors[text]; ok {
		return v
	}
	lower := strings.ToLower(text)
	for _, r := range s.Rules {
		if strings.Contains(lower, r.Substring) {
			return r.Vector
		}
	}
	if s.Default != nil {
		return s.Default
	}
	return embedding.Vector{0, 0, 1}
}
