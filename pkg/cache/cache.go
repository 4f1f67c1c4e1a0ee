// Package cache stores solve results keyed by their input, so repeated
// runs over the same decomposition skip the dynamic programming pass.
// Backends: a file cache for single-machine CLI use, a Redis cache for
// shared deployments, and a null cache that disables caching.
package cache

import (
	"context"
	"time"
)

// SchemaVersion is baked into every generated key. Bump it when the
// cached payload layout or the solver semantics change, so entries
// written by older builds turn into misses instead of bad reads.
const SchemaVersion = "v1"

// TTLAnswer is how long cached answers stay valid. An answer is a pure
// function of its input, so the TTL only bounds storage growth.
const TTLAnswer = 30 * 24 * time.Hour

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// AnswerKeyOpts carries the solver options that change what a run can
// produce. MaxWidth is part of the key because it turns wide inputs
// into errors rather than answers.
type AnswerKeyOpts struct {
	MaxWidth int
}

// Keyer generates cache keys for the pipeline.
type Keyer interface {
	// AnswerKey generates the key for a solve result, from the sha256
	// hash of the decomposition text and the options that affect the
	// outcome.
	AnswerKey(srcHash string, opts AnswerKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AnswerKey generates a key for a solve result.
func (k *DefaultKeyer) AnswerKey(srcHash string, opts AnswerKeyOpts) string {
	return hashKey("answer:"+SchemaVersion, srcHash, opts)
}
