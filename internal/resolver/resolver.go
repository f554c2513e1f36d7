// Package resolver chases a portal Cake through external lookups until an
// immutable Cake is reached, guarding against loops and unbounded chains.
//
// The source system holds the external session behind a thread-local slot
// (get/set/close). This package instead threads the session explicitly as a
// context.Context value: callers attach a Lookup with WithLookup and
// Resolve/Session retrieve it. That avoids a process-global mutable slot
// while keeping the same "ambient, per-caller handle" shape the source
// system's sessions have.
package resolver

import (
	"context"
	"fmt"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

// MaxHops is the longest portal chain Resolve will follow before failing.
const MaxHops = 10

// Lookup resolves one hop of a portal Cake to its current target. It is the
// sole externally-supplied collaborator the core depends on for
// resolution; everything else (loop detection, hop counting) lives here.
type Lookup interface {
	LookupPortal(ctx context.Context, portal cake.Cake) (next cake.Cake, err error)
}

type lookupKey struct{}

// WithLookup attaches l to ctx, making it available to Resolve and Session
// for the lifetime of ctx and any children derived from it.
func WithLookup(ctx context.Context, l Lookup) context.Context {
	return context.WithValue(ctx, lookupKey{}, l)
}

// Session retrieves the Lookup attached to ctx, and false if none is set.
func Session(ctx context.Context) (Lookup, bool) {
	l, ok := ctx.Value(lookupKey{}).(Lookup)
	return l, ok
}

// LoopError reports that a portal chain revisited a Cake it had already
// seen.
type LoopError struct {
	Cake cake.Cake
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("resolver: loop detected: %s seen twice", e.Cake.String())
}

// ChainTooLongError reports that a portal chain exceeded MaxHops.
type ChainTooLongError struct {
	Hops int
}

func (e *ChainTooLongError) Error() string {
	return fmt.Sprintf("resolver: chain exceeded %d hops (got %d)", MaxHops, e.Hops)
}

// Resolve chases c through portal indirection until an immutable Cake is
// reached: if c is already immutable, it is its own resolution and is
// returned as-is with no lookup performed. Otherwise the Lookup attached to
// ctx (see WithLookup) is consulted repeatedly, failing if any Cake repeats
// in the chain or the chain exceeds MaxHops.
func Resolve(ctx context.Context, c cake.Cake) (cake.Cake, error) {
	if c.IsImmutable() {
		return c, nil
	}
	l, ok := Session(ctx)
	if !ok {
		return cake.Cake{}, fmt.Errorf("resolver: no lookup session in context")
	}

	seen := map[string]bool{c.Hash(): true}
	current := c
	for hop := 0; hop < MaxHops; hop++ {
		if current.IsImmutable() {
			return current, nil
		}
		next, err := l.LookupPortal(ctx, current)
		if err != nil {
			return cake.Cake{}, fmt.Errorf("resolver: lookup %s: %w", current.String(), err)
		}
		if seen[next.Hash()] {
			return cake.Cake{}, &LoopError{Cake: next}
		}
		seen[next.Hash()] = true
		current = next
	}
	if current.IsImmutable() {
		return current, nil
	}
	return cake.Cake{}, &ChainTooLongError{Hops: MaxHops}
}
