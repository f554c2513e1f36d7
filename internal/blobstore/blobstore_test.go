package blobstore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blobs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addressOf(t *testing.T, data []byte) cake.Address {
	t.Helper()
	c, err := cake.FromBytes(data, cake.Synapse)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() == cake.Inline {
		// AddressFromCake only accepts resolved Cakes, so an inline
		// Cake here means the caller passed data that is too short.
		t.Fatalf("test data must exceed the inline boundary (%d bytes)", cake.InlineMaxBytes)
	}
	addr, err := cake.AddressFromCake(c)
	if err != nil {
		t.Fatal(err)
	}
	return addr
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	data := bytes.Repeat([]byte("hashstore blob content "), 10)
	addr := addressOf(t, data)

	if err := s.Put(addr, data); err != nil {
		t.Fatal(err)
	}

	has, err := s.Has(addr)
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("Has() = false after Put")
	}

	got, err := s.Get(addr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Get() returned different bytes than Put")
	}

	info, err := s.Stat(addr)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != len(data) {
		t.Errorf("Stat().Size = %d, want %d", info.Size, len(data))
	}
	if info.CreatedAt.IsZero() {
		t.Error("Stat().CreatedAt should be set")
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := openTestStore(t)
	addr := addressOf(t, bytes.Repeat([]byte("never stored"), 5))

	_, err := s.Get(addr)
	if err == nil {
		t.Fatal("expected an error fetching an unstored blob")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("error = %v (%T), want *NotFoundError", err, err)
	}
}

func TestPutRejectsMismatchedBytes(t *testing.T) {
	s := openTestStore(t)
	data := bytes.Repeat([]byte("real content"), 5)
	addr := addressOf(t, data)

	wrong := bytes.Repeat([]byte("wrong content"), 5)
	err := s.Put(addr, wrong)
	if err == nil {
		t.Fatal("expected an error storing bytes that don't hash to addr")
	}
	if _, ok := err.(*MismatchError); !ok {
		t.Errorf("error = %v (%T), want *MismatchError", err, err)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	data := bytes.Repeat([]byte("idempotent put"), 5)
	addr := addressOf(t, data)

	if err := s.Put(addr, data); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(addr, data); err != nil {
		t.Fatalf("second Put of identical bytes should succeed, got: %v", err)
	}

	got, err := s.Get(addr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Get() after repeated Put returned different bytes")
	}
}
