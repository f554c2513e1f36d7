package cake

import (
	"fmt"
	"strings"

	"github.com/1nfdev/hashstore-go/internal/basex"
)

// Address is the canonical, case-insensitive base-36 form of a 32-byte hash,
// used as the on-disk/DB primary key for blobs. It precomputes the shard it
// routes to.
type Address struct {
	hashBytes []byte
	id        string
	shardName string
}

// AddressFromHasher builds an Address from a Hasher's current digest.
func AddressFromHasher(h *Hasher) Address {
	return newAddress(h.Digest())
}

// AddressFromCake builds an Address from a hash-bearing Cake. It fails if c
// is not a resolved Cake (i.e. its payload is not a content digest).
func AddressFromCake(c Cake) (Address, error) {
	hb, err := c.HashBytes()
	if err != nil {
		return Address{}, fmt.Errorf("cake: address from cake: %w", err)
	}
	return newAddress(hb), nil
}

// ParseAddress parses the canonical string form of an Address. The input is
// lowercased before decoding, so parsing is case-insensitive.
func ParseAddress(s string) (Address, error) {
	b, err := basex.B36.Decode(strings.ToLower(s))
	if err != nil {
		return Address{}, fmt.Errorf("cake: invalid content address %q: %w", s, err)
	}
	if len(b) != 32 {
		return Address{}, fmt.Errorf("cake: content address %q decodes to %d bytes, want 32", s, len(b))
	}
	return newAddress(b), nil
}

func newAddress(hashBytes []byte) Address {
	a := Address{hashBytes: append([]byte(nil), hashBytes...)}
	a.id = basex.B36.Encode(a.hashBytes)
	a.shardName = ShardName(ShardNum(a.hashBytes, MaxShards))
	return a
}

// HashBytes returns the underlying 32-byte hash.
func (a Address) HashBytes() []byte { return a.hashBytes }

// ShardName is the base-36 shard bucket this address routes to.
func (a Address) ShardName() string { return a.shardName }

// String is the canonical lowercase base-36 form.
func (a Address) String() string { return a.id }

// Match reports whether c's hash bytes equal this address's hash.
func (a Address) Match(c Cake) bool {
	hb, err := c.HashBytes()
	if err != nil {
		return false
	}
	return byteSliceEqual(hb, a.hashBytes)
}

// Equal reports structural equality over the canonical id string.
func (a Address) Equal(other Address) bool { return a.id == other.id }

func byteSliceEqual(a, b []byte) bool {
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
