package cake

import (
	"strings"

	"github.com/1nfdev/hashstore-go/internal/basex"
)

// MaxShards is the number of shard buckets hashes are routed into.
const MaxShards = 8192

// ShardNum deterministically maps hash bytes to a shard id in [0, base).
// Payloads shorter than two bytes fall back: a single byte yields its own
// value directly (not mod base), and an empty payload yields 0. This
// fallback is preserved as-is from the original system rather than
// generalized, per an explicit open question in the source design.
func ShardNum(hashBytes []byte, base int) int {
	switch {
	case len(hashBytes) >= 2:
		n := (int(hashBytes[0])*256 + int(hashBytes[1])) % base
		return n
	case len(hashBytes) == 1:
		return int(hashBytes[0])
	default:
		return 0
	}
}

// ShardName renders a shard id as a base-36 string.
func ShardName(num int) string {
	return basex.B36.EncodeInt(uint64(num))
}

// ShardNameInt is an alias of ShardName kept for symmetry with DecodeShard.
func ShardNameInt(num int) string { return ShardName(num) }

// DecodeShard parses a shard name back into its integer id. Decoding is
// case-insensitive.
func DecodeShard(name string) (int, error) {
	n, err := basex.B36.DecodeInt(strings.ToLower(name))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// IsItShard reports whether name is a syntactically and semantically valid
// shard name: 1 to 3 characters, base-36 (case-insensitive), decoding to a
// value in [0, max).
func IsItShard(name string, max int) bool {
	if name == "" || len(name) > 3 {
		return false
	}
	n, err := DecodeShard(name)
	if err != nil {
		return false
	}
	return n >= 0 && n < max
}
