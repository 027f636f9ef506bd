package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fixdict/internal/dict"
)

// Current schema version - increment when dictPayload format changes
const dictCacheSchemaVersion uint16 = 1

// Digest keys cache entries by the raw content of a dictionary file.
type Digest = [sha256.Size]byte

// DictCache stores parsed dictionary documents on disk keyed by content
// digest, so repeated merges and prunes over the same base dictionary skip
// the XML parse. Thread-safe for concurrent access.
type DictCache struct {
	mu  sync.RWMutex
	dir string
}

type dictPayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16
	Doc    *dict.Document
}

// OpenDictCache initializes and returns a cache at the standard location.
func OpenDictCache(app string) (*DictCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DictCache{dir: dir}, nil
}

// openDictCacheAt pins the cache to an explicit directory (tests).
func openDictCacheAt(dir string) (*DictCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DictCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *DictCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DictCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// subdirectory keeps the root readable and easy to wipe
	return filepath.Join(c.dir, "dicts", hexKey+".mp")
}

// Put serializes and writes a parsed document under its content digest.
func (c *DictCache) Put(key Digest, doc *dict.Document) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&dictPayload{Schema: dictCacheSchemaVersion, Doc: doc}); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// atomic replacement
	return os.Rename(f.Name(), p)
}

// Get reads a parsed document back by digest. The boolean reports a hit; a
// stale schema version is treated as a miss.
func (c *DictCache) Get(key Digest) (*dict.Document, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Printf("failed to close cache file: %v", closeErr)
		}
	}()
	var payload dictPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != dictCacheSchemaVersion || payload.Doc == nil {
		return nil, false, nil
	}
	return payload.Doc, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DictCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "dicts"))
}
