package cake

import (
	"bytes"
	"testing"
)

func TestFromBytesInlineBoundary(t *testing.T) {
	short := []byte("The quick brown fox jumps over")
	c, err := FromBytes(short, Synapse)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() != Inline {
		t.Errorf("type = %s, want INLINE", c.Type())
	}
	data, ok := c.Data()
	if !ok || !bytes.Equal(data, short) {
		t.Errorf("data = %v, ok=%v", data, ok)
	}
	want := "01aMUQDApalaaYbXFjBVMMvyCAMfSPcTojI0745igi"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFromBytesSha256Boundary(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 33)
	c, err := FromBytes(long, Synapse)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() != Sha256 {
		t.Errorf("type = %s, want SHA256", c.Type())
	}
	if c.HasData() {
		t.Error("HasData() = true, want false")
	}
	if len(c.String()) != 44 {
		t.Errorf("len(String()) = %d, want 44", len(c.String()))
	}
	want := SumSHA256(long)
	if !bytes.Equal(c.Digest(), want) {
		t.Error("digest mismatch")
	}
}

func TestFromBytesEmptyIsInline(t *testing.T) {
	for name, s := range map[string][]byte{"nil": nil, "empty": {}} {
		c, err := FromBytes(s, Synapse)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if c.Type() != Inline {
			t.Errorf("%s: type = %s, want INLINE", name, c.Type())
		}
		data, ok := c.Data()
		if !ok || len(data) != 0 {
			t.Errorf("%s: data = %v, ok=%v, want empty data, ok=true", name, data, ok)
		}
		if !bytes.Equal(c.Digest(), SumSHA256(nil)) {
			t.Errorf("%s: digest = %x, want SHA-256(\"\")", name, c.Digest())
		}
	}
}

func TestCakeRoundTrip(t *testing.T) {
	for _, s := range [][]byte{
		nil,
		{0},
		[]byte("x"),
		bytes.Repeat([]byte("z"), 46),
	} {
		c, err := FromBytes(s, Neuron)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.String(), err)
		}
		if !back.Equal(c) {
			t.Errorf("round trip mismatch for %q", c.String())
		}
	}
}

func TestEqualityAndHash(t *testing.T) {
	a, _ := FromBytes([]byte("same content"), Synapse)
	b, _ := FromBytes([]byte("same content"), Synapse)
	if !a.Equal(b) {
		t.Error("expected equal cakes")
	}
	if a.Hash() != b.Hash() {
		t.Error("expected equal hash for equal digests")
	}

	c, _ := FromBytes([]byte("same content"), Neuron)
	if a.Equal(c) {
		t.Error("expected different role to break equality")
	}
}

func TestDigestAgreement(t *testing.T) {
	content := []byte("Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.")
	c, err := FromBytes(content, Synapse)
	if err != nil {
		t.Fatal(err)
	}
	want := "2xgkyws1ZbSlXUvZRCSIrjne73Pv1kmYArYvhOrTtqkX"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !bytes.Equal(c.Digest(), SumSHA256(content)) {
		t.Error("digest does not match SHA-256(content)")
	}
}

func TestNewPortalAndTransform(t *testing.T) {
	p, err := NewPortal(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Type() != Portal {
		t.Errorf("type = %s, want PORTAL", p.Type())
	}
	if len(p.String()) != 44 {
		t.Errorf("portal string length = %d, want 44", len(p.String()))
	}

	vtree := Vtree
	t2, err := p.TransformPortal(nil, &vtree)
	if err != nil {
		t.Fatal(err)
	}
	if t2.Type() != Vtree {
		t.Errorf("transformed type = %s, want VTREE", t2.Type())
	}

	same, err := t2.TransformPortal(nil, &vtree)
	if err != nil {
		t.Fatal(err)
	}
	if !same.Equal(t2) {
		t.Error("idempotent transform should return an equal cake")
	}
}

func TestTransformPortalRejectsNonPortal(t *testing.T) {
	c, _ := FromBytes([]byte("x"), Synapse)
	if _, err := c.TransformPortal(nil, nil); err == nil {
		t.Error("expected error transforming a non-portal cake")
	}
}

func TestHashBytesRejectsNonResolved(t *testing.T) {
	c, _ := FromBytes([]byte("short"), Synapse)
	if _, err := c.HashBytes(); err == nil {
		t.Error("expected error calling HashBytes on an inline cake")
	}
}

func TestImmutability(t *testing.T) {
	inline, _ := FromBytes([]byte("short"), Synapse)
	if !inline.IsImmutable() {
		t.Error("inline cake should be immutable")
	}

	long := bytes.Repeat([]byte("y"), 40)
	resolved, _ := FromBytes(long, Synapse)
	if !resolved.IsImmutable() {
		t.Error("sha256 cake should be immutable")
	}

	p, _ := NewPortal(nil, nil)
	if p.IsImmutable() {
		t.Error("portal cake should not be immutable")
	}
}

func TestEventPayloadRoundTrip(t *testing.T) {
	e := NewEventPayload()
	b, err := e.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	c, err := EventCake(e, Synapse)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() != Event {
		t.Errorf("type = %s, want EVENT", c.Type())
	}
	if !bytes.Equal(c.Digest(), SumSHA256(b)) {
		t.Error("event cake digest should match SHA-256 of canonical JSON")
	}
}
