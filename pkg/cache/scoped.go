package cache

// ScopedKeyer wraps a Keyer with a prefix so several cohorts or projects
// can share one backend.
//
// Example usage:
//
//	// Keys for one study
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "study:ukb:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(familyHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(familyHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
