package cdc

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultResponseCacheTTL matches the short rolling window within which
// repeated downloads of the same resource are pointless.
const DefaultResponseCacheTTL = 300 * time.Second

// ResponseCache is a URI-keyed body cache on disk with a fixed
// expiration. It only avoids redundant downloads within the TTL window;
// expiring it never changes query results, only latency. It is entirely
// separate from the measurement cache database.
type ResponseCache struct {
	dir   string
	ttl   time.Duration
	clock clockwork.Clock
}

func NewResponseCache(dir string, ttl time.Duration) (*ResponseCache, error) {
	if ttl <= 0 {
		ttl = DefaultResponseCacheTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResponseCache{dir: dir, ttl: ttl, clock: clockwork.NewRealClock()}, nil
}

// SetClock swaps the time source, so tests can step past the TTL.
func (rc *ResponseCache) SetClock(clock clockwork.Clock) {
	rc.clock = clock
}

func (rc *ResponseCache) path(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return filepath.Join(rc.dir, hex.EncodeToString(sum[:]))
}

func (rc *ResponseCache) Get(uri string) ([]byte, bool) {
	name := rc.path(uri)
	info, err := os.Stat(name)
	if err != nil {
		return nil, false
	}
	if rc.clock.Now().Sub(info.ModTime()) > rc.ttl {
		os.Remove(name)
		return nil, false
	}
	body, err := os.ReadFile(name)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (rc *ResponseCache) Put(uri string, body []byte) error {
	return os.WriteFile(rc.path(uri), body, 0o644)
}
