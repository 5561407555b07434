// Package group abstracts the prime-order group, scalar field, and
// domain-separated hash suite that a FROST ciphersuite is built from. It is
// the single seam between the ciphersuite-agnostic protocol logic in frost
// and keygen and any concrete elliptic curve backend.
//
// All arithmetic methods use a mutable-receiver pattern: they write their
// result into the receiver and return it, so call sites can chain without
// extra allocations. Implementations MUST perform scalar and point
// arithmetic in constant time with respect to secret values.
package group

import "io"

// Scalar is an element of a prime-order group's scalar field.
type Scalar interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Negate sets the receiver to -a and returns it.
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^-1 and returns it. a must be non-zero.
	Invert(a Scalar) Scalar
	// Set sets the receiver to a and returns it.
	Set(a Scalar) Scalar
	// Bytes returns the canonical fixed-width encoding of the scalar.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding. It rejects
	// non-canonical or out-of-range input with MalformedScalar.
	SetBytes(data []byte) (Scalar, error)
	// Equal reports whether the receiver equals b.
	Equal(b Scalar) bool
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
}

// Point is an element of a prime-order group.
type Point interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Negate sets the receiver to -a and returns it.
	Negate(a Point) Point
	// ScalarMult sets the receiver to s*p and returns it.
	ScalarMult(s Scalar, p Point) Point
	// Set sets the receiver to a and returns it.
	Set(a Point) Point
	// Bytes returns the canonical fixed-width compressed encoding.
	Bytes() []byte
	// SetBytes sets the receiver from a canonical encoding. It rejects
	// decompression failure and (where forbidden by the caller) the
	// identity element with MalformedElement.
	SetBytes(data []byte) (Point, error)
	// Equal reports whether the receiver equals b.
	Equal(b Point) bool
	// IsIdentity reports whether the receiver is the group identity.
	IsIdentity() bool
}

// Group encapsulates a prime-order group's factories, generator, and
// randomness/hashing primitives, so frost and keygen are generic over the
// concrete elliptic curve.
type Group interface {
	// NewScalar returns a new zero scalar.
	NewScalar() Scalar
	// NewPoint returns a new identity point.
	NewPoint() Point
	// Generator returns the group's base point.
	Generator() Point
	// RandomScalar returns a uniformly random non-zero scalar.
	RandomScalar(r io.Reader) (Scalar, error)
	// ScalarFromUint64 returns the scalar equal to the small integer n,
	// respecting whatever internal encoding (big- or little-endian) the
	// concrete group uses. Used to build identifiers and small constants
	// (e.g. one, for Lagrange numerators) without callers ever assuming
	// an endianness.
	ScalarFromUint64(n uint64) Scalar
	// ScalarSize is the byte width of a canonical scalar encoding.
	ScalarSize() int
	// ElementSize is the byte width of a canonical point encoding.
	ElementSize() int
}

// Hashing is the FROST domain-separated hash suite H1…H5 (spec.md §6): H1
// derives binding factors, H2 derives the Schnorr challenge, H3 derives
// nonces, H4 hashes the message and H5 hashes the verifying key before both
// are folded into H1's binding-factor input alongside the raw, unhashed
// commitment-list encoding (spec.md §4.F).
type Hashing interface {
	// H1 derives a binding factor scalar from rho_input.
	H1(input []byte) Scalar
	// H2 derives the Schnorr challenge scalar from the encoded group
	// commitment, encoded verifying key, message, and optional tweak.
	H2(groupCommitment, verifyingKey, message, tweak []byte) Scalar
	// H3 derives a nonce scalar from fresh randomness and the signing
	// share, per the hedged construction of spec.md §4.E.
	H3(randomness, signingShare []byte) Scalar
	// H4 hashes the message to a fixed-length digest.
	H4(message []byte) []byte
	// H5 hashes the encoded verifying key to a fixed-length digest.
	H5(encodedVerifyingKey []byte) []byte
}

// Ciphersuite binds a Group, its Hashing suite, and an optional Taproot
// (BIP-340/341) compatibility layer into the single capability set the
// generic source uses a type parameter for (spec.md §9 Design Notes).
type Ciphersuite interface {
	Group
	Hashing

	// ContextString is the suite-unique domain separation prefix folded
	// into every H1…H5 tag (spec.md §6).
	ContextString() []byte

	// IsTaprootCompatible reports whether this suite enforces BIP-340
	// even-y group commitments and BIP-341 tweak folding.
	IsTaprootCompatible() bool

	// TaprootCompatCommitmentShare conditionally negates a signer's
	// nonce-commitment contribution (D_i + rho_i*E_i) to match the
	// even-y correction applied to the group commitment R. Only called
	// when IsTaprootCompatible is true.
	TaprootCompatCommitmentShare(share Point, groupCommitment Point) Point

	// TaprootCompatVerifyingShare conditionally negates a verifying
	// share Y_i to match the even-y correction applied to the group
	// verifying key Y. Only called when IsTaprootCompatible is true.
	TaprootCompatVerifyingShare(share Point, verifyingKey Point) Point

	// TweakVerifyingKey folds an optional BIP-341 tweak into the group
	// verifying key before challenge computation, normalizing the result
	// to even-y: Q = lift_x(Y) + TapTweak(Y, tweak)*G. tweak may be nil,
	// in which case this only performs the even-y normalization of Y
	// itself. Only called when IsTaprootCompatible is true.
	TweakVerifyingKey(verifyingKey Point, tweak []byte) Point

	// TapTweakScalar returns the tweak scalar t added to the group
	// secret by TweakVerifyingKey, so a coordinator can add the public
	// correction c*t to an aggregated signature without any signer
	// needing to know the tweak. Returns the zero scalar when tweak is
	// nil. Only called when IsTaprootCompatible is true.
	TapTweakScalar(verifyingKey Point, tweak []byte) Scalar

	// TaprootNegateNonces conditionally negates a signer's hiding and
	// binding nonce scalars to match the even-y correction applied to
	// the group commitment R, per BIP-340's "R always has even y"
	// convention. Only called when IsTaprootCompatible is true.
	TaprootNegateNonces(groupCommitment Point, hiding, binding Scalar) (Scalar, Scalar)

	// TaprootNegateSigningShare conditionally negates a signer's own
	// signing share to match the even-y correction applied to the
	// original, untweaked group verifying key Y (BIP-340's lift_x
	// normalization). tweak-specific correction is applied separately by
	// the coordinator via TapTweakScalar. Only called when
	// IsTaprootCompatible is true.
	TaprootNegateSigningShare(verifyingKey Point, share Scalar) Scalar

	// TaprootNormalizeGroupCommitment returns the even-y form of the raw
	// group commitment R = sum_i(D_i + rho_i*E_i), the form that must be
	// used for challenge computation and stored as Signature.R (spec.md
	// §4.G, §8 scenario 8). The raw, un-normalized R is still what
	// TaprootNegateNonces/TaprootCompatCommitmentShare/
	// TaprootCompatVerifyingShare take as their parity reference: only the
	// final challenge and signature use the normalized form. Only called
	// when IsTaprootCompatible is true.
	TaprootNormalizeGroupCommitment(groupCommitment Point) Point
}
