// Package saltedsha implements LDAP-style salted SHA-1 password digests
// ({SSHA}), used to verify secrets without storing them in the clear.
package saltedsha

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const (
	prefix     = "{SSHA}"
	digestLen  = 20
	saltLen    = 4
	payloadLen = digestLen + saltLen
)

// SaltedSha is a salted SHA-1 digest of a secret, in the LDAP {SSHA} family.
type SaltedSha struct {
	digest [digestLen]byte
	salt   [saltLen]byte
}

// FromSecret draws a random salt and digests secret ∥ salt, secret first.
func FromSecret(secret []byte) (SaltedSha, error) {
	var s SaltedSha
	if _, err := rand.Read(s.salt[:]); err != nil {
		return SaltedSha{}, fmt.Errorf("saltedsha: from secret: %w", err)
	}
	s.digest = sha1.Sum(append(append([]byte(nil), secret...), s.salt[:]...))
	return s, nil
}

// Parse decodes the canonical "{SSHA}"+base64(digest||salt) form.
func Parse(s string) (SaltedSha, error) {
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return SaltedSha{}, fmt.Errorf("saltedsha: missing %q prefix", prefix)
	}
	payload, err := base64.StdEncoding.DecodeString(s[len(prefix):])
	if err != nil {
		return SaltedSha{}, fmt.Errorf("saltedsha: invalid base64 payload: %w", err)
	}
	if len(payload) != payloadLen {
		return SaltedSha{}, fmt.Errorf("saltedsha: payload is %d bytes, want %d", len(payload), payloadLen)
	}
	var out SaltedSha
	copy(out.digest[:], payload[:digestLen])
	copy(out.salt[:], payload[digestLen:])
	return out, nil
}

// CheckSecret reports whether candidate hashes (with this SaltedSha's salt)
// to the stored digest, using a constant-time comparison.
func (s SaltedSha) CheckSecret(candidate []byte) bool {
	got := sha1.Sum(append(append([]byte(nil), candidate...), s.salt[:]...))
	return subtle.ConstantTimeCompare(got[:], s.digest[:]) == 1
}

// String renders the canonical "{SSHA}"+base64(digest||salt) form.
func (s SaltedSha) String() string {
	payload := make([]byte, 0, payloadLen)
	payload = append(payload, s.digest[:]...)
	payload = append(payload, s.salt[:]...)
	return prefix + base64.StdEncoding.EncodeToString(payload)
}

// Equal reports structural equality over digest and salt.
func (s SaltedSha) Equal(other SaltedSha) bool {
	return s.digest == other.digest && s.salt == other.salt
}
