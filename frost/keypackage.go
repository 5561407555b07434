package frost

import "github.com/cryptops/frost/group"

// SigningShare is a participant's secret share f(i) of the group secret key
// (spec.md §3). It is produced by keygen and consumed by Round 2; callers
// should zero the backing bytes once a KeyPackage is no longer needed.
type SigningShare struct {
	value group.Scalar
}

func NewSigningShare(s group.Scalar) SigningShare { return SigningShare{value: s} }

func (s SigningShare) Scalar() group.Scalar { return s.value }
func (s SigningShare) Bytes() []byte        { return s.value.Bytes() }

// VerifyingShare is the public commitment f(i)*G to a participant's signing
// share, used to verify that participant's signature share in Round 2.
type VerifyingShare struct {
	value group.Point
}

func NewVerifyingShare(p group.Point) VerifyingShare { return VerifyingShare{value: p} }

func (s VerifyingShare) Point() group.Point { return s.value }
func (s VerifyingShare) Bytes() []byte      { return s.value.Bytes() }

// VerifyingKey is the group's public key Y = f(0)*G, against which the final
// aggregate signature verifies with ordinary single-party Schnorr
// verification (spec.md §3, §4.I).
type VerifyingKey struct {
	value group.Point
}

func NewVerifyingKey(p group.Point) VerifyingKey { return VerifyingKey{value: p} }

func (k VerifyingKey) Point() group.Point { return k.value }
func (k VerifyingKey) Bytes() []byte      { return k.value.Bytes() }

// PublicKeyPackage is the public output of keygen shared with every
// participant and the coordinator: the group verifying key plus every
// participant's verifying share, keyed by Identifier (spec.md §3).
type PublicKeyPackage struct {
	VerifyingKey    VerifyingKey
	VerifyingShares map[string]VerifyingShare // keyed by Identifier.String()
}

// VerifyingShareFor looks up the verifying share for id.
func (pk PublicKeyPackage) VerifyingShareFor(id Identifier) (VerifyingShare, error) {
	vs, ok := pk.VerifyingShares[id.String()]
	if !ok {
		return VerifyingShare{}, newErr(KindUnknownIdentifier, "no verifying share for identifier %s", id)
	}
	return vs, nil
}

// KeyPackage is the private output of keygen held by a single participant:
// its own signing share, its own verifying share, the group verifying key,
// and the participant set's threshold (spec.md §3).
type KeyPackage struct {
	Identifier     Identifier
	SigningShare   SigningShare
	VerifyingShare VerifyingShare
	VerifyingKey   VerifyingKey
	MinSigners     uint16
}
