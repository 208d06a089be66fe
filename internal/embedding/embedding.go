// Package embedding provides text embedding providers and vector similarity helpers.
// All semantic features of the matcher go through the Encoder interface; a nil
// Encoder, a provider that failed to load, or a timed-out call all surface as
// ErrUnavailable so callers can fall back to exact matching.
package embedding

//go:generate mockgen -source=./embedding.go -package=mocks -destination=./mocks/encoder.mock.go Encoder

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Vector is a dense embedding
type Vector []float32

// Encoder turns texts into embeddings, one vector per text in input order
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([]Vector, error)
}

// ErrUnavailable is returned when no embeddings can be produced
var ErrUnavailable = errors.New("embedding provider unavailable")

// LoadError represents a failure to construct an embedding backend
type LoadError struct {
	Provider ProviderName
	Message  string
	Cause    error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s embeddings: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s embeddings: %s", e.Provider, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// EncodeTexts encodes texts with enc, treating a nil encoder as unavailable.
// Any failure is reported as ErrUnavailable; the result has one unit-length
// vector per input text.
func EncodeTexts(ctx context.Context, enc Encoder, texts []string) ([]Vector, error) {
	if enc == nil {
		return nil, ErrUnavailable
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vecs, err := enc.Encode(ctx, texts)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrUnavailable, len(vecs), len(texts))
	}

	for i := range vecs {
		vecs[i] = Normalize(vecs[i])
	}
	return vecs, nil
}

// Normalize returns v scaled to unit length. Zero vectors are returned unchanged.
func Normalize(v Vector) Vector {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Cosine returns the cosine similarity of a and b. Vectors of different
// length compare over their common prefix.
func Cosine(a, b Vector) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + 1e-8)
}

// MaxCosine returns the highest similarity between v and any of candidates
func MaxCosine(v Vector, candidates []Vector) float64 {
	best := math.Inf(-1)
	for _, c := range candidates {
		if s := Cosine(v, c); s > best {
			best = s
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}
