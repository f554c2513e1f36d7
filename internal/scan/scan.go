// Package scan walks a directory tree into a *cakerack.Rack: files become
// Synapse Cakes over their bytes, subdirectories become Neuron Cakes over
// their own recursively-scanned Rack. A cache keyed by path lets repeat
// scans of an unchanged tree skip re-reading file bytes, without ever
// substituting the quick hash it records for the SHA-256 identity a Cake
// addresses by: every Cake this package computes is built through
// cake.FromBytes, and a cache hit returns the Cake stored in the cache
// entry without reading the file.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lukechampine.com/blake3"

	"github.com/1nfdev/hashstore-go/internal/cake"
	"github.com/1nfdev/hashstore-go/internal/cakerack"
)

// QuickHash is a digest over a file's (size, mtime, contents), recorded
// alongside its Cake when the file is read. The cache hit check in
// scanFile does not consult it. It is never a substitute for a Cake's own
// digest.
type QuickHash [32]byte

// CacheEntry pairs a file's last-seen metadata with the Cake computed for
// it then, so an unchanged file can be skipped on the next scan.
type CacheEntry struct {
	Size      int64
	ModTime   int64 // Unix nanoseconds
	QuickHash QuickHash
	Cake      cake.Cake
}

// Cache maps a file's path to its last-seen CacheEntry. A nil Cache
// disables caching: every file is read and hashed unconditionally.
type Cache map[string]CacheEntry

// Result is the outcome of scanning one directory: the Rack of its
// immediate entries, and the Cake that addresses the Rack itself.
type Result struct {
	Rack *cakerack.Rack
	Cake cake.Cake
}

// Dir walks root and returns a Result for it. Subdirectories are scanned
// recursively and entered into the Rack as Neuron Cakes over their own
// Result.Cake; files are entered as Synapse Cakes over their contents.
// Entries are skipped, not erroring the whole scan, if they are neither a
// regular file nor a directory (sockets, devices, and all symlinks, since
// entries are examined with os.Lstat and links are not followed).
//
// cache, if non-nil, is consulted and updated in place: an unchanged file
// (same size and mtime) is re-admitted via its cached Cake instead of
// being re-read and re-hashed.
func Dir(root string, cache Cache) (Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Result{}, fmt.Errorf("scan: read dir %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	rack := cakerack.New()
	for _, name := range names {
		full := filepath.Join(root, name)
		info, err := os.Lstat(full)
		if err != nil {
			return Result{}, fmt.Errorf("scan: stat %s: %w", full, err)
		}

		switch {
		case info.Mode().IsDir():
			sub, err := Dir(full, cache)
			if err != nil {
				return Result{}, err
			}
			c := sub.Cake
			rack.Set(name, &c)
		case info.Mode().IsRegular():
			c, err := scanFile(full, info, cache)
			if err != nil {
				return Result{}, err
			}
			rack.Set(name, &c)
		default:
			continue
		}
	}

	rackCake, err := rack.Cake()
	if err != nil {
		return Result{}, fmt.Errorf("scan: rack cake for %s: %w", root, err)
	}
	return Result{Rack: rack, Cake: rackCake}, nil
}

// scanFile hashes path into a Cake, short-circuiting the read entirely when
// cache already holds an entry for path whose size and mtime still match:
// size and mtime come from a cheap Lstat the caller already performed, so
// that check costs nothing beyond what Dir already paid. Only a size/mtime
// mismatch (or no prior entry) causes the file to actually be read.
func scanFile(path string, info os.FileInfo, cache Cache) (cake.Cake, error) {
	size := info.Size()
	modTime := info.ModTime().UnixNano()

	if cache != nil {
		if prior, ok := cache[path]; ok && prior.Size == size && prior.ModTime == modTime {
			return prior.Cake, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cake.Cake{}, fmt.Errorf("scan: read %s: %w", path, err)
	}

	c, err := cake.FromBytes(data, cake.Synapse)
	if err != nil {
		return cake.Cake{}, fmt.Errorf("scan: hash %s: %w", path, err)
	}

	if cache != nil {
		cache[path] = CacheEntry{
			Size:      size,
			ModTime:   modTime,
			QuickHash: sumQuickHash(size, modTime, data),
			Cake:      c,
		}
	}
	return c, nil
}

func sumQuickHash(size, modTime int64, data []byte) QuickHash {
	h := blake3.New(32, nil)
	var header [16]byte
	putInt64(header[0:8], size)
	putInt64(header[8:16], modTime)
	h.Write(header[:])
	h.Write(data)
	var out QuickHash
	copy(out[:], h.Sum(nil))
	return out
}

func putInt64(b []byte, v int64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
