package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// or schema versions can share one Redis without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "orbital:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ProfileKey returns the prefixed profile key.
func (k *ScopedKeyer) ProfileKey(opts ProfileKeyOpts) string {
	return k.prefix + k.inner.ProfileKey(opts)
}

// CloudKey returns the prefixed cloud key.
func (k *ScopedKeyer) CloudKey(opts CloudKeyOpts) string {
	return k.prefix + k.inner.CloudKey(opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}

// SweepKey returns the prefixed sweep key.
func (k *ScopedKeyer) SweepKey(id string) string {
	return k.prefix + k.inner.SweepKey(id)
}
