package cache

// ScopedKeyer wraps a Keyer with a prefix, giving tenants of a shared
// backend separate key namespaces.
//
// Example usage:
//
//	// Per-project keys on a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:42:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key the
// inner keyer generates. A nil inner defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AnswerKey generates a prefixed key for a solve result.
func (k *ScopedKeyer) AnswerKey(srcHash string, opts AnswerKeyOpts) string {
	return k.prefix + k.inner.AnswerKey(srcHash, opts)
}
