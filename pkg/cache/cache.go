// Package cache stores computed menus and rendered artifacts.
//
// Every result chordmap produces is a pure function of its fully-defaulted
// options, so entries are keyed by a hash of those options and never
// invalidated, only expired. Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// A [Keyer] turns options into keys; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes.
const (
	TTLSubstitutions = 24 * time.Hour
	TTLMenu          = 24 * time.Hour
	TTLArtifact      = 7 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	SubstitutionsKey(opts SubstitutionKeyOpts) string
	MenuKey(opts MenuKeyOpts) string
	ArtifactKey(menuHash string, opts ArtifactKeyOpts) string
}

// SubstitutionKeyOpts identify a graded candidate list.
type SubstitutionKeyOpts struct {
	Chord   string `json:"chord"`
	Key     string `json:"key"`
	Scale   string `json:"scale"`
	Ranking string `json:"ranking"`
	Passing string `json:"passing,omitempty"`

	// Weights is a hash of the ranking weights in effect.
	Weights string `json:"weights,omitempty"`
}

// MenuKeyOpts identify a laid-out menu.
type MenuKeyOpts struct {
	SubstitutionKeyOpts

	Filter     string  `json:"filter"`
	Layout     string  `json:"layout"`
	Exhaustive bool    `json:"exhaustive"`
	Complexity int     `json:"complexity"`
	Threshold  int     `json:"threshold"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Seed       uint64  `json:"seed"`

	// Params is a hash of the layout parameters in effect.
	Params string `json:"params,omitempty"`
}

// ArtifactKeyOpts identify a rendered artifact of a menu.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes options into keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SubstitutionsKey implements Keyer.
func (DefaultKeyer) SubstitutionsKey(opts SubstitutionKeyOpts) string {
	return hashKey("subs", opts)
}

// MenuKey implements Keyer.
func (DefaultKeyer) MenuKey(opts MenuKeyOpts) string {
	return hashKey("menu", opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(menuHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", menuHash, opts)
}
