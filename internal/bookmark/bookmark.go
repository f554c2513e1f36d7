// Package bookmark validates and suggests names for portals: the
// human-facing labels a repository's users attach to a portal Cake.
package bookmark

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
)

// reserved names a bookmark may never take, because the core or its
// tooling gives them special meaning elsewhere (current-portal markers,
// detached states, placeholders).
var reserved = map[string]bool{
	"_": true,
	"~": true,
	"-": true,
}

// ReservedNameError reports that a requested bookmark name is disallowed.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("bookmark: %q is a reserved name", e.Name)
}

// Validate fails with *ReservedNameError if name is one of the reserved
// single-character names, and with a plain error if name contains a "/"
// (bookmark names are flat; they do not nest like a CakePath).
func Validate(name string) error {
	if reserved[name] {
		return &ReservedNameError{Name: name}
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("bookmark: name %q may not contain '/'", name)
	}
	if name == "" {
		return fmt.Errorf("bookmark: name may not be empty")
	}
	return nil
}

// words is a small list used to generate human-readable suggested names.
var words = []string{
	"amber", "bison", "copper", "drift", "ember", "flint", "grove", "harbor", "ivory", "juniper",
	"kestrel", "lilac", "meadow", "nectar", "onyx", "prairie", "quartz", "river", "sage", "tundra",
	"umber", "violet", "willow", "xenon", "yarrow", "zephyr",
}

func randUint32() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func randChoice(n int) int {
	return int(randUint32() % uint32(n))
}

// Taken reports whether a candidate bookmark name is already in use. It is
// the sole externally-supplied collaborator Suggest needs to avoid
// collisions.
type Taken interface {
	BookmarkTaken(name string) (bool, error)
}

// Suggest generates a bookmark name of numWords hyphen-joined words, and
// checks it against taken for collisions, retrying up to 10 times before
// falling back to an extra word for more entropy. The result always
// passes Validate, since no generated phrase can match a single reserved
// character or contain a "/".
func Suggest(taken Taken, numWords int) (string, error) {
	if numWords < 1 {
		numWords = 2
	}
	for attempt := 0; attempt < 10; attempt++ {
		name := makePhrase(numWords)
		busy, err := taken.BookmarkTaken(name)
		if err != nil {
			return "", fmt.Errorf("bookmark: suggest: %w", err)
		}
		if !busy {
			return name, nil
		}
	}
	return makePhrase(numWords + 1), nil
}

func makePhrase(numWords int) string {
	parts := make([]string, numWords)
	for i := range parts {
		parts[i] = words[randChoice(len(words))]
	}
	return strings.Join(parts, "-")
}
