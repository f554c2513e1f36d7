package resolver

import (
	"context"
	"testing"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

type mapLookup map[string]cake.Cake

func (m mapLookup) LookupPortal(ctx context.Context, portal cake.Cake) (cake.Cake, error) {
	next, ok := m[portal.Hash()]
	if !ok {
		return cake.Cake{}, errUnknownPortal
	}
	return next, nil
}

var errUnknownPortal = portalNotFoundError{}

type portalNotFoundError struct{}

func (portalNotFoundError) Error() string { return "unknown portal" }

func newPortal(t *testing.T) cake.Cake {
	t.Helper()
	p, err := cake.NewPortal(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolveImmutableIsSelf(t *testing.T) {
	c, err := cake.FromBytes([]byte("immutable content"), cake.Synapse)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	got, err := Resolve(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(c) {
		t.Error("Resolve on an already-immutable Cake should return it unchanged")
	}
}

func TestResolveChain(t *testing.T) {
	p1 := newPortal(t)
	p2 := newPortal(t)
	target, err := cake.FromBytes([]byte("final target"), cake.Synapse)
	if err != nil {
		t.Fatal(err)
	}

	lookup := mapLookup{
		p1.Hash(): p2,
		p2.Hash(): target,
	}
	ctx := WithLookup(context.Background(), lookup)

	got, err := Resolve(ctx, p1)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(target) {
		t.Errorf("Resolve(p1) = %s, want %s", got.String(), target.String())
	}
}

func TestResolveDetectsLoop(t *testing.T) {
	p1 := newPortal(t)
	p2 := newPortal(t)
	lookup := mapLookup{
		p1.Hash(): p2,
		p2.Hash(): p1,
	}
	ctx := WithLookup(context.Background(), lookup)

	_, err := Resolve(ctx, p1)
	if err == nil {
		t.Fatal("expected a loop error")
	}
	if _, ok := err.(*LoopError); !ok {
		t.Errorf("error = %v (%T), want *LoopError", err, err)
	}
}

func TestResolveFailsWithoutSession(t *testing.T) {
	p := newPortal(t)
	_, err := Resolve(context.Background(), p)
	if err == nil {
		t.Fatal("expected an error resolving a portal with no session in context")
	}
}

func TestResolveFailsOnUnresolvedChain(t *testing.T) {
	// A chain of distinct portals longer than MaxHops should fail with
	// ChainTooLongError, not loop detection, since no Cake repeats.
	portals := make([]cake.Cake, MaxHops+2)
	for i := range portals {
		portals[i] = newPortal(t)
	}
	lookup := mapLookup{}
	for i := 0; i < len(portals)-1; i++ {
		lookup[portals[i].Hash()] = portals[i+1]
	}
	ctx := WithLookup(context.Background(), lookup)

	_, err := Resolve(ctx, portals[0])
	if err == nil {
		t.Fatal("expected a chain-too-long error")
	}
	if _, ok := err.(*ChainTooLongError); !ok {
		t.Errorf("error = %v (%T), want *ChainTooLongError", err, err)
	}
}
