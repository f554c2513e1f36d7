// Package basex implements positional base-N encoding for byte strings and
// non-negative integers. It backs the Cake (base-62) and ContentAddress /
// shard name (base-36) string forms used throughout the identity core.
package basex

import "math/big"

// Alphabets ordered low digits first, then lowercase, then uppercase. This
// ordering (not the conventional base62 "0-9A-Za-z" digit order) is what the
// rest of the system's encoded strings are built on; changing it changes
// every Cake and ContentAddress string.
const (
	Alphabet36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	Alphabet62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Codec is a positional encoder/decoder for a fixed alphabet.
type Codec struct {
	alphabet string
	index    [256]int8
}

// New builds a Codec for the given alphabet. Alphabet characters must be
// unique and fit in a single byte.
func New(alphabet string) *Codec {
	c := &Codec{alphabet: alphabet}
	for i := range c.index {
		c.index[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c.index[alphabet[i]] = int8(i)
	}
	return c
}

// B62 is the base-62 codec used for Cake strings.
var B62 = New(Alphabet62)

// B36 is the base-36 codec used for ContentAddress and shard name strings.
var B36 = New(Alphabet36)

func (c *Codec) base() int64 {
	return int64(len(c.alphabet))
}

// Encode renders data in this codec's alphabet. Leading zero bytes in data
// are preserved by emitting one zero-digit character per leading zero byte,
// so the mapping round-trips through Decode exactly.
func (c *Codec) Encode(data []byte) string {
	nz := 0
	for nz < len(data) && data[nz] == 0 {
		nz++
	}
	rest := data[nz:]

	digits := ""
	if len(rest) > 0 {
		v := new(big.Int).SetBytes(rest)
		digits = c.digitsOf(v)
	}

	out := make([]byte, nz+len(digits))
	for i := 0; i < nz; i++ {
		out[i] = c.alphabet[0]
	}
	copy(out[nz:], digits)
	return string(out)
}

// Decode parses a string produced by Encode back into its original bytes.
// It fails if s contains a character outside the codec's alphabet.
func (c *Codec) Decode(s string) ([]byte, error) {
	nz := 0
	for nz < len(s) && s[nz] == c.alphabet[0] {
		nz++
	}
	rest := s[nz:]

	v := new(big.Int)
	base := big.NewInt(c.base())
	for i := 0; i < len(rest); i++ {
		d := c.index[rest[i]]
		if d < 0 {
			return nil, &InvalidCharError{Char: rest[i], Codec: c.alphabet}
		}
		v.Mul(v, base)
		v.Add(v, big.NewInt(int64(d)))
	}

	var valueBytes []byte
	if len(rest) > 0 {
		valueBytes = v.Bytes()
	}

	out := make([]byte, nz+len(valueBytes))
	copy(out[nz:], valueBytes)
	return out, nil
}

// EncodeInt renders a non-negative integer in pure positional form, with no
// leading-zero-byte semantics: EncodeInt(0) is "0", not "".
func (c *Codec) EncodeInt(n uint64) string {
	if n == 0 {
		return string(c.alphabet[0])
	}
	v := new(big.Int).SetUint64(n)
	return c.digitsOf(v)
}

// DecodeInt parses a string produced by EncodeInt into a non-negative
// integer.
func (c *Codec) DecodeInt(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, &InvalidCharError{Codec: c.alphabet}
	}
	base := c.base()
	var v uint64
	for i := 0; i < len(s); i++ {
		d := c.index[s[i]]
		if d < 0 {
			return 0, &InvalidCharError{Char: s[i], Codec: c.alphabet}
		}
		v = v*uint64(base) + uint64(d)
	}
	return v, nil
}

func (c *Codec) digitsOf(v *big.Int) string {
	if v.Sign() == 0 {
		return ""
	}
	base := big.NewInt(c.base())
	zero := big.NewInt(0)
	mod := new(big.Int)
	v = new(big.Int).Set(v)

	var buf []byte
	for v.Cmp(zero) > 0 {
		v.DivMod(v, base, mod)
		buf = append(buf, c.alphabet[mod.Int64()])
	}
	// buf was built least-significant digit first; reverse it.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// InvalidCharError reports a character outside a codec's alphabet.
type InvalidCharError struct {
	Char  byte
	Codec string
}

func (e *InvalidCharError) Error() string {
	if e.Char == 0 {
		return "basex: empty input"
	}
	return "basex: character " + string(e.Char) + " not in alphabet " + e.Codec
}
