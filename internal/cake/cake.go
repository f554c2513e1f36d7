package cake

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/1nfdev/hashstore-go/internal/basex"
)

// Cake is a content/identity key: a tuple of (type, role, data) that either
// inlines a small payload (len(data) <= InlineMaxBytes, only for Inline) or
// carries a fixed 32-byte digest or random value for every other type.
//
// Equality is structural over all three fields. The in-memory hash (Hash)
// is a function of Digest alone, so two Cakes with the same content but
// different (type, role) are distinguishable by Equal but collide by Hash;
// that mirrors the source system and is intentional, not a bug.
type Cake struct {
	typ  Type
	role Role
	data []byte
}

// New constructs a Cake directly from its parts. It fails if data is not
// exactly 32 bytes for any non-Inline type.
func New(typ Type, role Role, data []byte) (Cake, error) {
	if typ != Inline && len(data) != 32 {
		return Cake{}, fmt.Errorf("cake: invalid cake: type %s requires 32 bytes, got %d", typ, len(data))
	}
	if typ == Inline && len(data) > InlineMaxBytes {
		return Cake{}, fmt.Errorf("cake: invalid cake: inline payload of %d bytes exceeds %d", len(data), InlineMaxBytes)
	}
	return Cake{typ: typ, role: role, data: append([]byte(nil), data...)}, nil
}

func header(typ Type, role Role) byte {
	return byte(typ)<<1 | byte(role)
}

// Parse decodes the base-62 string form of a Cake produced by String.
func Parse(s string) (Cake, error) {
	decoded, err := basex.B62.Decode(s)
	if err != nil {
		return Cake{}, fmt.Errorf("cake: parse %q: %w", s, err)
	}
	if len(decoded) == 0 {
		return Cake{}, fmt.Errorf("cake: parse %q: empty", s)
	}
	h := decoded[0]
	data := decoded[1:]
	typ, err := TypeFromCode(h >> 1)
	if err != nil {
		return Cake{}, fmt.Errorf("cake: parse %q: %w", s, err)
	}
	role, err := RoleFromCode(h & 1)
	if err != nil {
		return Cake{}, fmt.Errorf("cake: parse %q: %w", s, err)
	}
	return New(typ, role, data)
}

// FromDigestAndInlineData builds the smaller of an Inline or Sha256 Cake:
// when buffer is present and at most InlineMaxBytes long, it is embedded
// directly; otherwise digest (the SHA-256 of the full content) is used.
func FromDigestAndInlineData(digest []byte, buffer []byte, role Role) (Cake, error) {
	if buffer != nil && len(buffer) <= InlineMaxBytes {
		return New(Inline, role, buffer)
	}
	return New(Sha256, role, digest)
}

// FromStream hashes fd (consuming and closing it) and wraps the result as
// the smallest faithful Cake: Inline if the stream was at most
// InlineMaxBytes long, Sha256 otherwise.
func FromStream(fd io.ReadCloser, role Role) (Cake, error) {
	digest, inline, err := ProcessStream(fd, nil, DefaultChunkSize)
	if err != nil {
		return Cake{}, err
	}
	return FromDigestAndInlineData(digest, inline, role)
}

// FromBytes wraps s in an in-memory reader and delegates to FromStream.
func FromBytes(s []byte, role Role) (Cake, error) {
	return FromStream(io.NopCloser(bytes.NewReader(s)), role)
}

// NewPortal draws 32 cryptographically random bytes and wraps them as a
// portal-typed Cake. A nil role defaults to Synapse; a nil typ defaults to
// Portal.
func NewPortal(role *Role, typ *Type) (Cake, error) {
	r := Synapse
	if role != nil {
		r = *role
	}
	t := Portal
	if typ != nil {
		t = *typ
	}
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		return Cake{}, fmt.Errorf("cake: new portal: %w", err)
	}
	c, err := New(t, r, data)
	if err != nil {
		return Cake{}, err
	}
	if err := c.AssertPortal(); err != nil {
		return Cake{}, err
	}
	return c, nil
}

// TransformPortal reissues this Cake's random bytes under a new type and/or
// role. Both the current and target type must be portal types. It is
// idempotent: transforming to the same type and role returns an equal Cake.
// A nil role or typ keeps the current value.
func (c Cake) TransformPortal(role *Role, typ *Type) (Cake, error) {
	if err := c.AssertPortal(); err != nil {
		return Cake{}, err
	}
	t := c.typ
	if typ != nil {
		t = *typ
	}
	r := c.role
	if role != nil {
		r = *role
	}
	if !t.IsPortal() {
		return Cake{}, fmt.Errorf("cake: transform_portal: target type %s is not a portal type", t)
	}
	if t == c.typ && r == c.role {
		return c, nil
	}
	return New(t, r, c.data)
}

// HasData reports whether this Cake carries its payload inline.
func (c Cake) HasData() bool { return c.typ == Inline }

// Data returns the inline payload, and false if this Cake is not Inline.
func (c Cake) Data() ([]byte, bool) {
	if !c.HasData() {
		return nil, false
	}
	return append([]byte(nil), c.data...), true
}

// Digest returns the 32-byte value this Cake hash-addresses to: the SHA-256
// of the payload for Inline Cakes, or the raw data for every other type.
func (c Cake) Digest() []byte {
	if c.HasData() {
		return SumSHA256(c.data)
	}
	return append([]byte(nil), c.data...)
}

// IsImmutable reports whether this Cake's identity is fixed by its content:
// true for Inline Cakes (content-derived by construction) and resolved
// types (content-derived by digest). False for portals, which are mutable
// references resolved by external lookup.
func (c Cake) IsImmutable() bool { return c.HasData() || c.typ.IsResolved() }

// AssertPortal fails unless this Cake's type is a portal type.
func (c Cake) AssertPortal() error {
	if !c.typ.IsPortal() {
		return fmt.Errorf("cake: %s is not a portal type", c.typ)
	}
	return nil
}

// HashBytes returns the raw hash bytes of a resolved Cake. It fails for any
// type that is not resolved -- notably Inline, whose hash-address is
// Digest(), not its raw (unhashed) payload.
func (c Cake) HashBytes() ([]byte, error) {
	if !c.typ.IsResolved() {
		return nil, fmt.Errorf("cake: %s is not hash-resolved", c.typ)
	}
	return append([]byte(nil), c.data...), nil
}

// ShardNum computes the shard bucket for this Cake's raw payload.
func (c Cake) ShardNum(base int) int { return ShardNum(c.data, base) }

// ShardName is the base-36 rendering of ShardNum.
func (c Cake) ShardName(base int) string { return ShardName(c.ShardNum(base)) }

// Type returns this Cake's type.
func (c Cake) Type() Type { return c.typ }

// Role returns this Cake's role.
func (c Cake) Role() Role { return c.role }

// String renders the canonical base-62 form: base62(header ++ data).
func (c Cake) String() string {
	packed := make([]byte, 1+len(c.data))
	packed[0] = header(c.typ, c.role)
	copy(packed[1:], c.data)
	return basex.B62.Encode(packed)
}

// Equal reports structural equality over type, role, and data.
func (c Cake) Equal(other Cake) bool {
	return c.typ == other.typ && c.role == other.role && byteSliceEqual(c.data, other.data)
}

// Hash is a stable key for use as a Go map key, since Cake itself contains a
// slice field and so is not comparable. It is a function of Digest alone:
// two Cakes of different (type, role) but the same content collide here,
// matching the source system's in-memory hash semantics.
func (c Cake) Hash() string {
	return string(c.Digest())
}
