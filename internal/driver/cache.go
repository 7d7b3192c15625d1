package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"contentaudit/internal/record"
)

// Current schema version - increment when the payload or the extractor output changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит извлечённые записи по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached extraction result of one file.
type DiskPayload struct {
	Schema  uint16
	Records []record.Record
}

// CacheKey derives the cache key from a file content hash and the schema version.
type CacheKey [32]byte

// KeyFor returns the key for content with the given sha256 digest.
func KeyFor(contentHash [32]byte) CacheKey {
	h := sha256.New()
	var ver [2]byte
	binary.LittleEndian.PutUint16(ver[:], diskCacheSchemaVersion)
	_, _ = h.Write(ver[:])
	_, _ = h.Write(contentHash[:])
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
// An empty dir selects $XDG_CACHE_HOME/contentaudit or ~/.cache/contentaudit.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to locate cache directory: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "contentaudit")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный префикс, чтобы не держать десятки тысяч файлов в одном каталоге
	return filepath.Join(c.dir, "records", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes records to the cache.
func (c *DiskCache) Put(key CacheKey, recs []record.Record) (err error) {
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
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Records: recs}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads cached records. A missing entry or a payload from another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key CacheKey) ([]record.Record, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Records, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "records")); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	return nil
}
