// Package cakepath implements CakePath, a filesystem-like path rooted at a
// Cake (typically a Neuron directory Cake) or left relative for later
// resolution against some other path's root.
package cakepath

import (
	"fmt"
	"strings"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

// Path is a sequence of path segments, optionally rooted at a Cake. A nil
// Root means the path is relative.
type Path struct {
	root *cake.Cake
	path []string
}

// New parses the string form of a Path: "/<cake>/seg/seg..." for an
// absolute path, or "seg/seg..." for a relative one.
func New(s string) (Path, error) {
	if strings.HasPrefix(s, "/") {
		rest := s[1:]
		segs := splitNonEmpty(rest)
		if len(segs) == 0 {
			return Path{}, fmt.Errorf("cakepath: %q: missing root cake", s)
		}
		root, err := cake.Parse(segs[0])
		if err != nil {
			return Path{}, fmt.Errorf("cakepath: %q: %w", s, err)
		}
		return Path{root: &root, path: segs[1:]}, nil
	}
	return Path{path: splitNonEmpty(s)}, nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromCake returns the root path for c: an absolute path with an empty
// segment list.
func FromCake(c cake.Cake) Path {
	return Path{root: &c}
}

// Relative reports whether this path has no root Cake.
func (p Path) Relative() bool { return p.root == nil }

// IsRoot reports whether this is an absolute path with no segments below
// its root.
func (p Path) IsRoot() bool { return !p.Relative() && len(p.path) == 0 }

// Root returns this path's root Cake, and false if the path is relative.
func (p Path) Root() (cake.Cake, bool) {
	if p.root == nil {
		return cake.Cake{}, false
	}
	return *p.root, true
}

// Child returns a new path with name appended, sharing this path's root.
func (p Path) Child(name string) Path {
	path := make([]string, len(p.path)+1)
	copy(path, p.path)
	path[len(p.path)] = name
	return Path{root: p.root, path: path}
}

// Parent returns this path's parent, and false for a relative path or an
// already-root absolute path (neither has a well-defined parent).
func (p Path) Parent() (Path, bool) {
	if p.Relative() || len(p.path) == 0 {
		return Path{}, false
	}
	return Path{root: p.root, path: p.path[:len(p.path)-1]}, true
}

// NextInRelativePath splits a relative path into its first segment and the
// remainder (the remainder is the zero Path when there is exactly one
// segment; hasNext is false only when there are no segments at all). It
// fails if called on an absolute path.
func (p Path) NextInRelativePath() (next string, remainder Path, hasNext bool, err error) {
	if !p.Relative() {
		return "", Path{}, false, fmt.Errorf("cakepath: next_in_relative_path: only valid on a relative path")
	}
	if len(p.path) < 1 {
		return "", Path{}, false, nil
	}
	next = p.path[0]
	if len(p.path) > 1 {
		remainder = Path{path: p.path[1:]}
		return next, remainder, true, nil
	}
	return next, Path{}, true, nil
}

// MakeAbsolute resolves a relative path against current's root and
// segments. An already-absolute path is returned unchanged.
func (p Path) MakeAbsolute(current Path) Path {
	if !p.Relative() {
		return p
	}
	path := make([]string, 0, len(current.path)+len(p.path))
	path = append(path, current.path...)
	path = append(path, p.path...)
	return Path{root: current.root, path: path}
}

// PathJoin renders the segment list alone, without a leading root.
func (p Path) PathJoin() string { return strings.Join(p.path, "/") }

// Filename returns the last segment, and false if there are no segments.
func (p Path) Filename() (string, bool) {
	if len(p.path) == 0 {
		return "", false
	}
	last := p.path[len(p.path)-1]
	if last == "" {
		return "", false
	}
	return last, true
}

// String renders the canonical form: "/<root>/segments" when absolute, or
// just "segments" when relative.
func (p Path) String() string {
	if p.Relative() {
		return p.PathJoin()
	}
	return fmt.Sprintf("/%s/%s", p.root.String(), p.PathJoin())
}

// Ref is the result of CakeOrPath: exactly one of Path or Cake is
// meaningful, selected by IsPath.
type Ref struct {
	Path   Path
	Cake   cake.Cake
	IsPath bool
}

// CakeOrPath dispatches a user-supplied string s to either a CakePath or a
// bare Cake:
//
//   - a leading "/" means s is already a CakePath; parse it as one.
//   - otherwise, when relativeToRoot is true and s contains a "/", s is a
//     root Cake followed by path segments; prepend "/" and parse it as an
//     absolute CakePath whose root is the first segment of s.
//   - otherwise s names a Cake directly; parse it as one.
func CakeOrPath(s string, relativeToRoot bool) (Ref, error) {
	if strings.HasPrefix(s, "/") {
		p, err := New(s)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Path: p, IsPath: true}, nil
	}
	if relativeToRoot && strings.Contains(s, "/") {
		p, err := New("/" + s)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Path: p, IsPath: true}, nil
	}
	c, err := cake.Parse(s)
	if err != nil {
		return Ref{}, fmt.Errorf("cakepath: %q: not a path or a cake: %w", s, err)
	}
	return Ref{Cake: c}, nil
}
