// Package portalstore persists the other relation the core assumes exists
// externally: portal Cake -> current target Cake, plus an append-only
// history of every target the portal has ever pointed at. It implements
// resolver.Lookup directly so internal/resolver can be driven against real
// persisted state.
package portalstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/1nfdev/hashstore-go/internal/cake"
	"github.com/1nfdev/hashstore-go/internal/resolver"
)

var (
	currentBucket = []byte("portal-current")
	historyBucket = []byte("portal-history")
)

// HistoryEntry records one target a portal was transformed to point at.
type HistoryEntry struct {
	Target    string    `json:"target"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is a bbolt-backed portal->target relation with history.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("portalstore: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(currentBucket); e != nil {
			return e
		}
		_, e := tx.CreateBucketIfNotExists(historyBucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("portalstore: init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// UnknownPortalError reports that a portal has never been pointed anywhere.
type UnknownPortalError struct {
	Portal cake.Cake
}

func (e *UnknownPortalError) Error() string {
	return fmt.Sprintf("portalstore: %s has no recorded target", e.Portal.String())
}

// LookupPortal implements resolver.Lookup: it returns the current target
// recorded for portal, or *UnknownPortalError if none was ever set.
func (s *Store) LookupPortal(ctx context.Context, portal cake.Cake) (cake.Cake, error) {
	if err := portal.AssertPortal(); err != nil {
		return cake.Cake{}, err
	}
	var target cake.Cake
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(currentBucket).Get(portalKey(portal))
		if raw == nil {
			return &UnknownPortalError{Portal: portal}
		}
		t, err := cake.Parse(string(raw))
		if err != nil {
			return fmt.Errorf("portalstore: corrupt current target for %s: %w", portal.String(), err)
		}
		target = t
		return nil
	})
	return target, err
}

var _ resolver.Lookup = (*Store)(nil)

// Transform records target as portal's new current value and appends a
// history entry. author is recorded on the entry when non-empty.
func (s *Store) Transform(portal cake.Cake, target cake.Cake, author string) error {
	if err := portal.AssertPortal(); err != nil {
		return err
	}
	entry := HistoryEntry{Target: target.String(), Author: author, Timestamp: now()}
	return s.db.Update(func(tx *bbolt.Tx) error {
		cur := tx.Bucket(currentBucket)
		hist := tx.Bucket(historyBucket)

		key := portalKey(portal)
		history, err := loadHistory(hist, key)
		if err != nil {
			return err
		}
		history = append(history, entry)
		encoded, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("portalstore: encode history: %w", err)
		}
		if err := hist.Put(key, encoded); err != nil {
			return err
		}
		return cur.Put(key, []byte(target.String()))
	})
}

// History returns every target portal has ever been transformed to point
// at, oldest first. It returns an empty slice, not an error, for a portal
// with no recorded history.
func (s *Store) History(portal cake.Cake) ([]HistoryEntry, error) {
	var history []HistoryEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		h, err := loadHistory(tx.Bucket(historyBucket), portalKey(portal))
		history = h
		return err
	})
	return history, err
}

func loadHistory(bucket *bbolt.Bucket, key []byte) ([]HistoryEntry, error) {
	raw := bucket.Get(key)
	if raw == nil {
		return nil, nil
	}
	var history []HistoryEntry
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("portalstore: decode history: %w", err)
	}
	return history, nil
}

func portalKey(portal cake.Cake) []byte {
	return []byte(portal.String())
}

var now = time.Now
