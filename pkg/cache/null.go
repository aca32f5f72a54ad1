package cache

import (
	"context"
	"time"
)

// NullCache backs runs with caching turned off: --no-cache, a disabled
// [cache] section, or a Runner built without a backend. Every lookup misses,
// so each menu is generated, laid out and rendered fresh.
//
// NullCache does not implement [Clearer]; `chordmap cache clear`
// reports that caching is disabled instead.
type NullCache struct{}

// NewNullCache returns the disabled backend.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
