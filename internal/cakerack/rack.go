// Package cakerack implements CakeRack, a sorted name-to-Cake mapping that
// is itself content-addressed and diffable against a previous version.
package cakerack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

// Rack is a sorted dictionary of names to Cakes. A nil entry means the name
// is reserved but not yet assigned a value.
type Rack struct {
	store map[string]*cake.Cake
}

// New returns an empty Rack.
func New() *Rack {
	return &Rack{store: map[string]*cake.Cake{}}
}

// Parse decodes the canonical JSON form produced by Content.
func Parse(s string) (*Rack, error) {
	r := New()
	if err := r.parse(s); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rack) parse(s string) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal([]byte(s), &pair); err != nil {
		return fmt.Errorf("cakerack: parse: %w", err)
	}
	var names []string
	if err := json.Unmarshal(pair[0], &names); err != nil {
		return fmt.Errorf("cakerack: parse names: %w", err)
	}
	var rawCakes []*string
	if err := json.Unmarshal(pair[1], &rawCakes); err != nil {
		return fmt.Errorf("cakerack: parse cakes: %w", err)
	}
	if len(names) != len(rawCakes) {
		return fmt.Errorf("cakerack: parse: %d names but %d cakes", len(names), len(rawCakes))
	}
	for i, name := range names {
		if rawCakes[i] == nil {
			r.store[name] = nil
			continue
		}
		c, err := cake.Parse(*rawCakes[i])
		if err != nil {
			return fmt.Errorf("cakerack: parse cake for %q: %w", name, err)
		}
		r.store[name] = &c
	}
	return nil
}

// Set assigns name to c. A nil c reserves the name without a value.
func (r *Rack) Set(name string, c *cake.Cake) {
	r.store[name] = c
}

// Delete removes name entirely.
func (r *Rack) Delete(name string) {
	delete(r.store, name)
}

// Get returns the Cake assigned to name, and whether name is present at all
// (distinct from present-but-nil).
func (r *Rack) Get(name string) (*cake.Cake, bool) {
	c, ok := r.store[name]
	return c, ok
}

// Len is the number of names, including nil-valued ones.
func (r *Rack) Len() int { return len(r.store) }

// Contains reports whether name is present, nil-valued or not.
func (r *Rack) Contains(name string) bool {
	_, ok := r.store[name]
	return ok
}

// Keys returns all names in sorted order.
func (r *Rack) Keys() []string {
	names := make([]string, 0, len(r.store))
	for k := range r.store {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// GetNameByCake returns the first name (in sorted order) mapped to c.
func (r *Rack) GetNameByCake(c cake.Cake) (string, bool) {
	for _, name := range r.Keys() {
		if v := r.store[name]; v != nil && v.Equal(c) {
			return name, true
		}
	}
	return "", false
}

// IsNeuron reports whether the Cake stored at name is nil or has role
// Neuron. The caller must check Contains(name) first.
func (r *Rack) IsNeuron(name string) bool {
	v := r.store[name]
	return v == nil || v.Role() == cake.Neuron
}

// Content renders the canonical JSON form: a pair of [sorted names, parallel
// cake strings-or-null]. This is what the Rack's own Cake hash-addresses.
//
// The separators matter: the source system serializes with Python's
// json.dumps default item separator (", ", comma followed by a space), not
// the compact form encoding/json produces by default. Matching that exactly
// is required for the Rack's own Cake to come out byte-for-byte identical
// to the source system's.
func (r *Rack) Content() (string, error) {
	names := r.Keys()
	nameJSON := make([]string, len(names))
	cakeJSON := make([]string, len(names))
	for i, name := range names {
		nb, err := marshalPyString(name)
		if err != nil {
			return "", fmt.Errorf("cakerack: content: %w", err)
		}
		nameJSON[i] = nb

		v := r.store[name]
		if v == nil {
			cakeJSON[i] = "null"
			continue
		}
		// Cake.String() is always plain ASCII base62, so the extra escaping
		// pass in marshalPyString is a no-op here; it's used for symmetry
		// with the name encoding above.
		cb, err := marshalPyString(v.String())
		if err != nil {
			return "", fmt.Errorf("cakerack: content: %w", err)
		}
		cakeJSON[i] = cb
	}
	return fmt.Sprintf("[[%s], [%s]]",
		strings.Join(nameJSON, ", "), strings.Join(cakeJSON, ", ")), nil
}

// marshalPyString renders s as a JSON string literal matching Python's
// json.dumps default: quotes, backslashes and control characters escaped as
// encoding/json already does, "<", ">" and "&" left unescaped (Go's default
// HTML-escaping has no Python equivalent), and every non-ASCII rune escaped
// as \uXXXX (\uXXXX\uXXXX surrogate pairs above the BMP) to match Python's
// ensure_ascii=True default. Without this, a name containing non-ASCII
// characters would make this Rack's Content, and therefore its own Cake,
// diverge from the source system's.
func marshalPyString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	quoted := bytes.TrimRight(buf.Bytes(), "\n")

	var out strings.Builder
	for _, r := range string(quoted) {
		if r < 0x80 {
			out.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&out, "\\u%04x\\u%04x", r1, r2)
		} else {
			fmt.Fprintf(&out, "\\u%04x", r)
		}
	}
	return out.String(), nil
}

// Cake computes this Rack's own content-address: a Neuron-role Cake over its
// canonical JSON content.
func (r *Rack) Cake() (cake.Cake, error) {
	content, err := r.Content()
	if err != nil {
		return cake.Cake{}, err
	}
	return cake.FromBytes([]byte(content), cake.Neuron)
}

// PatchAction describes how a Merge entry changed relative to the previous
// Rack.
type PatchAction int

const (
	// Update marks a name whose value in the current Rack should be
	// written (possibly nil, to reserve a name with no value yet).
	Update PatchAction = 1
	// Delete marks a name present in the previous Rack but gone from the
	// current one.
	Delete PatchAction = -1
)

func (a PatchAction) String() string {
	switch a {
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("PatchAction(%d)", int(a))
	}
}

// PatchEntry is one step of a Merge diff.
type PatchEntry struct {
	Action PatchAction
	Name   string
	Cake   *cake.Cake
}

// Merge yields the sequence of changes that turn previous into r: deletions
// for names dropped entirely, updates for names added or whose value
// changed, and a delete+update pair when a name flips between a Synapse
// value and a neuron-like one (since that is a structural change, not a
// content change). A nil value counts as neuron-like, as in IsNeuron. A
// name whose value is unchanged, or whose value changed while both sides
// are neuron-like (Neuron or nil), is treated as settled and produces no
// entry.
func (r *Rack) Merge(previous *Rack) []PatchEntry {
	seen := map[string]bool{}
	var all []string
	for k := range r.store {
		if !seen[k] {
			seen[k] = true
			all = append(all, k)
		}
	}
	for k := range previous.store {
		if !seen[k] {
			seen[k] = true
			all = append(all, k)
		}
	}
	sort.Strings(all)

	var out []PatchEntry
	for _, k := range all {
		_, inSelf := r.store[k]
		_, inPrev := previous.store[k]
		switch {
		case !inSelf && inPrev:
			out = append(out, PatchEntry{Action: Delete, Name: k})
		case inSelf && !inPrev:
			out = append(out, PatchEntry{Action: Update, Name: k, Cake: r.store[k]})
		default:
			v := r.store[k]
			prevV := previous.store[k]
			if cakeEqual(v, prevV) {
				continue
			}
			neuron := r.IsNeuron(k)
			prevNeuron := previous.IsNeuron(k)
			switch {
			case neuron && prevNeuron:
				continue
			case neuron == prevNeuron:
				out = append(out, PatchEntry{Action: Update, Name: k, Cake: v})
			default:
				out = append(out, PatchEntry{Action: Delete, Name: k})
				out = append(out, PatchEntry{Action: Update, Name: k, Cake: v})
			}
		}
	}
	return out
}

func cakeEqual(a, b *cake.Cake) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
