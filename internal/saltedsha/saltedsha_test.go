package saltedsha

import "testing"

func TestFromSecretCheckSecret(t *testing.T) {
	s, err := FromSecret([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	if !s.CheckSecret([]byte("hunter2")) {
		t.Error("CheckSecret(correct secret) = false, want true")
	}
	if s.CheckSecret([]byte("hunter3")) {
		t.Error("CheckSecret(wrong secret) = true, want false")
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	s, err := FromSecret([]byte("correct horse battery staple"))
	if err != nil {
		t.Fatal(err)
	}
	str := s.String()
	if len(str) < len(prefix) || str[:len(prefix)] != prefix {
		t.Fatalf("String() = %q, missing %q prefix", str, prefix)
	}
	back, err := Parse(str)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(s) {
		t.Error("round trip produced a different SaltedSha")
	}
	if !back.CheckSecret([]byte("correct horse battery staple")) {
		t.Error("round-tripped SaltedSha failed to check the original secret")
	}
}

func TestParseRejectsBadPrefix(t *testing.T) {
	if _, err := Parse("not-ssha-at-all"); err == nil {
		t.Error("expected error for missing {SSHA} prefix")
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	if _, err := Parse("{SSHA}" + "AAAA"); err == nil {
		t.Error("expected error for a too-short payload")
	}
}

func TestDistinctSaltsForSameSecret(t *testing.T) {
	a, err := FromSecret([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromSecret([]byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("two independent SaltedSha values for the same secret should not collide (random salt)")
	}
	if !a.CheckSecret([]byte("same")) || !b.CheckSecret([]byte("same")) {
		t.Error("both should still verify the same secret despite different salts")
	}
}
