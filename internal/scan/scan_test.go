package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDirProducesRackOfImmediateEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "b.txt"), "bravo")
	if err := os.Mkdir(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "charlie")

	result, err := Dir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rack.Len() != 3 {
		t.Fatalf("Rack.Len() = %d, want 3", result.Rack.Len())
	}

	want, _ := cake.FromBytes([]byte("alpha"), cake.Synapse)
	got, ok := result.Rack.Get("a.txt")
	if !ok || got == nil || !got.Equal(want) {
		t.Errorf("a.txt cake = %v, want %s", got, want.String())
	}

	sub, ok := result.Rack.Get("sub")
	if !ok || sub == nil {
		t.Fatal("expected sub to be present")
	}
	if sub.Role() != cake.Neuron {
		t.Errorf("sub role = %s, want NEURON", sub.Role())
	}
}

func TestDirIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "same content")
	writeFile(t, filepath.Join(root, "b.txt"), "other content")

	r1, err := Dir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Dir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r1.Cake.Equal(r2.Cake) {
		t.Error("scanning the same tree twice produced different Cakes")
	}
}

func TestCacheShortCircuitsUnchangedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "cached content")

	cache := Cache{}
	r1, err := Dir(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(cache) != 1 {
		t.Fatalf("len(cache) = %d, want 1", len(cache))
	}

	r2, err := Dir(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !r1.Cake.Equal(r2.Cake) {
		t.Error("cached scan produced a different Cake than the original scan")
	}

	c1, _ := r1.Rack.Get("a.txt")
	c2, _ := r2.Rack.Get("a.txt")
	if !c1.Equal(*c2) {
		t.Error("cached entry's Cake differs from the freshly computed one")
	}
}

func TestCacheDetectsContentChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "version one")

	cache := Cache{}
	r1, err := Dir(root, cache)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "version two, which is longer")
	r2, err := Dir(root, cache)
	if err != nil {
		t.Fatal(err)
	}

	if r1.Cake.Equal(r2.Cake) {
		t.Error("expected scan to notice changed file content")
	}
}

func TestCacheHitTrustsMetadataWithoutRereading(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "original content")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	stale, err := cake.FromBytes([]byte("a stale cake that does not match the file"), cake.Synapse)
	if err != nil {
		t.Fatal(err)
	}
	cache := Cache{
		path: {
			Size:    info.Size(),
			ModTime: info.ModTime().UnixNano(),
			Cake:    stale,
		},
	}

	// Overwrite the file's content without touching length or mtime: a
	// cache keyed on size+mtime cannot distinguish this from an unchanged
	// file, and scanFile must not read the file to find out — it should
	// trust the cache entry and return the stale Cake.
	if err := os.WriteFile(path, []byte("different values"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, info.ModTime(), info.ModTime()); err != nil {
		t.Fatal(err)
	}

	result, err := Dir(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := result.Rack.Get("a.txt")
	if !got.Equal(stale) {
		t.Errorf("cache hit should short-circuit on size+mtime alone; got %s, want stale cake %s", got.String(), stale.String())
	}
}

func TestEmptyDirProducesEmptyRack(t *testing.T) {
	root := t.TempDir()
	result, err := Dir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rack.Len() != 0 {
		t.Errorf("Rack.Len() = %d, want 0", result.Rack.Len())
	}
}
