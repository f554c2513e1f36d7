// Package blobstore persists the content-addressed blob relation the core
// assumes exists externally: ContentAddress -> blob bytes + size + creation
// time, bucketed by shard (internal/cake.ShardNum) and zstd-compressed on
// disk.
package blobstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"go.etcd.io/bbolt"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

var metaBucket = []byte("blob-meta")

// BlobInfo is the metadata the store keeps alongside each blob's bytes.
type BlobInfo struct {
	Size      int
	CreatedAt time.Time
}

// Store is a bbolt-backed, shard-bucketed, zstd-compressed blob store.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(metaBucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blobstore: init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func shardBucketName(addr cake.Address) []byte {
	return []byte("blob-shard-" + addr.ShardName())
}

func (s *Store) shardBucket(tx *bbolt.Tx, addr cake.Address, create bool) (*bbolt.Bucket, error) {
	name := shardBucketName(addr)
	if create {
		return tx.CreateBucketIfNotExists(name)
	}
	b := tx.Bucket(name)
	if b == nil {
		return nil, fmt.Errorf("blobstore: shard bucket %s not yet created", name)
	}
	return b, nil
}

// NotFoundError reports that no blob is stored under the given address.
type NotFoundError struct {
	Address cake.Address
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("blobstore: no blob stored for %s", e.Address.String())
}

// MismatchError reports that Put was called with bytes whose digest does not
// match the address they were addressed under.
type MismatchError struct {
	Address cake.Address
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("blobstore: data does not hash to %s", e.Address.String())
}

// Put stores data under addr, compressing it with zstd. It is idempotent: a
// second Put of the same bytes under the same address is a no-op. It fails
// with *MismatchError if data's SHA-256 does not equal addr's hash, the
// content-addressed store's one load-bearing invariant.
func (s *Store) Put(addr cake.Address, data []byte) error {
	digest := cake.SumSHA256(data)
	if !bytesEqual(digest, addr.HashBytes()) {
		return &MismatchError{Address: addr}
	}

	compressed, err := compress(data)
	if err != nil {
		return fmt.Errorf("blobstore: compress: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		shard, err := s.shardBucket(tx, addr, true)
		if err != nil {
			return err
		}
		key := []byte(addr.String())
		if shard.Get(key) != nil {
			return nil
		}
		if err := shard.Put(key, compressed); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}
		return meta.Put(key, encodeMeta(BlobInfo{Size: len(data), CreatedAt: now()}))
	})
}

// Get returns the decompressed bytes stored under addr.
func (s *Store) Get(addr cake.Address) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		shard, err := s.shardBucket(tx, addr, false)
		if err != nil {
			return &NotFoundError{Address: addr}
		}
		compressed := shard.Get([]byte(addr.String()))
		if compressed == nil {
			return &NotFoundError{Address: addr}
		}
		data, err := decompress(compressed)
		if err != nil {
			return fmt.Errorf("blobstore: decompress: %w", err)
		}
		out = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Has reports whether a blob is stored under addr.
func (s *Store) Has(addr cake.Address) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		shard, err := s.shardBucket(tx, addr, false)
		if err != nil {
			return nil
		}
		found = shard.Get([]byte(addr.String())) != nil
		return nil
	})
	return found, err
}

// Stat returns size and creation-time metadata for the blob at addr.
func (s *Store) Stat(addr cake.Address) (BlobInfo, error) {
	var info BlobInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil {
			return &NotFoundError{Address: addr}
		}
		raw := meta.Get([]byte(addr.String()))
		if raw == nil {
			return &NotFoundError{Address: addr}
		}
		decoded, err := decodeMeta(raw)
		if err != nil {
			return err
		}
		info = decoded
		return nil
	})
	return info, err
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(compressed []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func encodeMeta(info BlobInfo) []byte {
	buf := make([]byte, 8+8)
	binary.BigEndian.PutUint64(buf[:8], uint64(info.Size))
	binary.BigEndian.PutUint64(buf[8:], uint64(info.CreatedAt.UnixNano()))
	return buf
}

func decodeMeta(b []byte) (BlobInfo, error) {
	if len(b) != 16 {
		return BlobInfo{}, fmt.Errorf("blobstore: corrupt metadata record (%d bytes)", len(b))
	}
	size := binary.BigEndian.Uint64(b[:8])
	nanos := binary.BigEndian.Uint64(b[8:])
	return BlobInfo{
		Size:      int(size),
		CreatedAt: time.Unix(0, int64(nanos)),
	}, nil
}

var now = time.Now

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
