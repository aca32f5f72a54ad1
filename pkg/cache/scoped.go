package cache

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "chordmap:")
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

// SubstitutionsKey implements Keyer.
func (k *ScopedKeyer) SubstitutionsKey(opts SubstitutionKeyOpts) string {
	return k.prefix + k.inner.SubstitutionsKey(opts)
}

// MenuKey implements Keyer.
func (k *ScopedKeyer) MenuKey(opts MenuKeyOpts) string {
	return k.prefix + k.inner.MenuKey(opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(menuHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(menuHash, opts)
}
