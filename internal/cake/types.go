// Package cake implements the Cake content/identity key: a compact,
// self-describing value that either inlines a small payload or carries a
// SHA-256 digest, tagged with a type and a role.
package cake

import "fmt"

// Role is a structural hint carried in the low bit of a Cake's header byte.
type Role uint8

const (
	// Synapse marks a leaf, data-bearing Cake.
	Synapse Role = 0
	// Neuron marks a structural, directory-like Cake.
	Neuron Role = 1
)

func (r Role) String() string {
	switch r {
	case Synapse:
		return "SYNAPSE"
	case Neuron:
		return "NEURON"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// RoleFromCode validates and returns the Role for a 1-bit code.
func RoleFromCode(code uint8) (Role, error) {
	switch Role(code) {
	case Synapse, Neuron:
		return Role(code), nil
	default:
		return 0, fmt.Errorf("cake: invalid role code %d", code)
	}
}

// Type is the semantic kind of a Cake, packed in the upper 7 bits of the
// header byte. Each type carries precomputed modifier booleans rather than
// requiring callers to re-derive them at runtime.
type Type uint8

const (
	Inline Type = iota
	Sha256
	Portal
	Vtree
	Dmount
	Event
	DagState
	JSONWrap
)

type typeInfo struct {
	name        string
	impliedRole Role
	hasImplied  bool
	isPortal    bool
	isVtree     bool
	isResolved  bool
}

var typeTable = [...]typeInfo{
	Inline:   {name: "INLINE"},
	Sha256:   {name: "SHA256", isResolved: true},
	Portal:   {name: "PORTAL", isPortal: true},
	Vtree:    {name: "VTREE", isPortal: true, isVtree: true},
	Dmount:   {name: "DMOUNT", isPortal: true},
	Event:    {name: "EVENT", impliedRole: Synapse, hasImplied: true, isResolved: true},
	DagState: {name: "DAG_STATE", impliedRole: Neuron, hasImplied: true, isPortal: true, isVtree: true},
	JSONWrap: {name: "JSON_WRAP", impliedRole: Synapse, hasImplied: true, isResolved: true},
}

func (t Type) info() typeInfo {
	if int(t) >= len(typeTable) {
		panic(fmt.Sprintf("cake: invalid type code %d", t))
	}
	return typeTable[t]
}

func (t Type) String() string { return t.info().name }

// IsPortal reports whether Cakes of this type are mutable references
// resolved via external lookup. VTREE and DAG_STATE are portals too.
func (t Type) IsPortal() bool { return t.info().isPortal }

// IsVtree reports whether this type additionally carries volatile-tree
// semantics. IsVtree implies IsPortal.
func (t Type) IsVtree() bool { return t.info().isVtree }

// IsResolved reports whether a Cake of this type is immutable because its
// payload is a content digest rather than a random or inline value.
func (t Type) IsResolved() bool { return t.info().isResolved }

// ImpliedRole returns the role this type is conventionally paired with, and
// whether the type has one at all (most types leave role free).
func (t Type) ImpliedRole() (Role, bool) {
	info := t.info()
	return info.impliedRole, info.hasImplied
}

// TypeFromCode validates and returns the Type for a 7-bit code.
func TypeFromCode(code uint8) (Type, error) {
	if int(code) >= len(typeTable) {
		return 0, fmt.Errorf("cake: invalid type code %d", code)
	}
	return Type(code), nil
}

// PortalTypeFromName resolves a named portal type. An empty name defaults to
// Portal. It fails if the named type is not a portal type.
func PortalTypeFromName(name string) (Type, error) {
	if name == "" {
		return Portal, nil
	}
	for code := Inline; int(code) < len(typeTable); code++ {
		if typeTable[code].name == name {
			if !typeTable[code].isPortal {
				return 0, fmt.Errorf("cake: not a portal type: %s", name)
			}
			return code, nil
		}
	}
	return 0, fmt.Errorf("cake: unknown type: %s", name)
}
