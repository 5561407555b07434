package frost

import (
	"fmt"
	"sort"

	"github.com/cryptops/frost/group"
)

// Identifier names a participant in a threshold signing group. It wraps a
// non-zero group.Scalar: spec.md §9 Open Question (b) resolves in favor of
// the scalar-valued identifier, so that Lagrange interpolation works
// uniformly over every ciphersuite regardless of group order.
type Identifier struct {
	g     group.Group
	value group.Scalar
}

// IdentifierFromUint16 builds the identifier for dealer-assigned participant
// number n (n must be in [1, 65535]), the common case of sequential
// 1..max_signers assignment from trusted-dealer keygen.
func IdentifierFromUint16(g group.Group, n uint16) (Identifier, error) {
	if n == 0 {
		return Identifier{}, newErr(KindIdentifierDerivationFailed, "identifier must be non-zero")
	}
	return Identifier{g: g, value: g.ScalarFromUint64(uint64(n))}, nil
}

// IdentifierFromScalar wraps an arbitrary caller-supplied non-zero scalar as
// an Identifier, for groups that assign identifiers by some other scheme
// (spec.md §3: "any non-zero field element is a valid identifier").
func IdentifierFromScalar(g group.Group, s group.Scalar) (Identifier, error) {
	if s == nil || s.IsZero() {
		return Identifier{}, newErr(KindIdentifierDerivationFailed, "identifier must be non-zero")
	}
	v := g.NewScalar().Set(s)
	return Identifier{g: g, value: v}, nil
}

// Scalar returns the underlying field element.
func (id Identifier) Scalar() group.Scalar { return id.value }

// Bytes returns the canonical encoding of the identifier's scalar.
func (id Identifier) Bytes() []byte {
	if id.value == nil {
		return nil
	}
	return id.value.Bytes()
}

// Equal reports whether id and other name the same participant.
func (id Identifier) Equal(other Identifier) bool {
	if id.value == nil || other.value == nil {
		return id.value == nil && other.value == nil
	}
	return id.value.Equal(other.value)
}

// IsZero reports whether id is the zero value (never a valid identifier).
func (id Identifier) IsZero() bool { return id.value == nil || id.value.IsZero() }

func (id Identifier) String() string {
	if id.value == nil {
		return "<nil-identifier>"
	}
	return fmt.Sprintf("%x", id.value.Bytes())
}

// SortIdentifiers returns a new slice of ids sorted by their canonical byte
// encoding, compared lexicographically; this is also the commitment-list
// order. For a big-endian scalar encoding (secp256k1) it is ascending numeric
// order; for a little-endian one (ristretto255) it is ascending numeric order
// only while every identifier is below 256.
func SortIdentifiers(ids []Identifier) []Identifier {
	out := make([]Identifier, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return lessBytes(out[i].Bytes(), out[j].Bytes())
	})
	return out
}

func lessBytes(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Lagrange computes λ_i, the Lagrange coefficient for participant id
// interpolating the polynomial at x=0 from the identifier set others
// (spec.md §4.H). others must include id itself.
func Lagrange(g group.Group, id Identifier, others []Identifier) (group.Scalar, error) {
	if id.IsZero() {
		return nil, newErr(KindIdentifierDerivationFailed, "Lagrange: identifier is zero")
	}
	num := g.NewScalar().Set(g.ScalarFromUint64(1))
	den := g.NewScalar().Set(num)

	seen := make(map[string]bool, len(others))
	for _, other := range others {
		if seen[other.String()] {
			return nil, newErr(KindDuplicatedIdentifier, "Lagrange: duplicate identifier %s", other)
		}
		seen[other.String()] = true
		if other.Equal(id) {
			continue
		}
		if other.IsZero() {
			return nil, newErr(KindIdentifierDerivationFailed, "Lagrange: zero identifier in participant set")
		}
		// num *= other
		num = num.Mul(num, other.value)
		// den *= (other - id)
		diff := g.NewScalar().Sub(other.value, id.value)
		if diff.IsZero() {
			return nil, newErr(KindDuplicatedIdentifier, "Lagrange: duplicate identifier %s", id)
		}
		den = den.Mul(den, diff)
	}

	inv := g.NewScalar().Invert(den)
	return g.NewScalar().Mul(num, inv), nil
}
