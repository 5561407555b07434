// Package ristretto255 implements the group.Ciphersuite
// FROST(ristretto255, SHA-512), the non-Taproot reference suite named in
// spec.md §6/§8. Grounded on
// _examples/codahale-thyrse/schemes/complex/frost/frost.go's
// evalPolynomial/lagrangeCoefficient/binding-factor shape, but reimplemented
// against the classic FROST H1…H5 domain-separated tagged-hash construction
// (spec.md §6) rather than thyrse's own transcript abstraction, using
// github.com/gtank/ristretto255 (thyrse's own direct dependency) and
// crypto/sha512 for uniform-bytes hash-to-scalar.
package ristretto255

import (
	"crypto/sha512"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/cryptops/frost/group"
)

const contextString = "FROST-ristretto255-SHA512-v1"

// Scalar wraps a ristretto255 scalar.
type Scalar struct {
	v *ristretto255.Scalar
}

func newScalar() *Scalar { return &Scalar{v: ristretto255.NewScalar()} }

func asScalar(s group.Scalar) *Scalar { return s.(*Scalar) }

func (s *Scalar) Add(a, b group.Scalar) group.Scalar {
	s.v.Add(asScalar(a).v, asScalar(b).v)
	return s
}

func (s *Scalar) Sub(a, b group.Scalar) group.Scalar {
	neg := ristretto255.NewScalar().Negate(asScalar(b).v)
	s.v.Add(asScalar(a).v, neg)
	return s
}

func (s *Scalar) Mul(a, b group.Scalar) group.Scalar {
	s.v.Multiply(asScalar(a).v, asScalar(b).v)
	return s
}

func (s *Scalar) Negate(a group.Scalar) group.Scalar {
	s.v.Negate(asScalar(a).v)
	return s
}

func (s *Scalar) Invert(a group.Scalar) group.Scalar {
	s.v.Invert(asScalar(a).v)
	return s
}

func (s *Scalar) Set(a group.Scalar) group.Scalar {
	s.v.Set(asScalar(a).v)
	return s
}

func (s *Scalar) Bytes() []byte { return s.v.Bytes() }

func (s *Scalar) SetBytes(data []byte) (group.Scalar, error) {
	if _, err := s.v.SetCanonicalBytes(data); err != nil {
		return nil, &malformedError{"scalar: " + err.Error()}
	}
	return s, nil
}

func (s *Scalar) Equal(b group.Scalar) bool { return s.v.Equal(asScalar(b).v) == 1 }

func (s *Scalar) IsZero() bool { return s.v.Equal(ristretto255.NewScalar()) == 1 }

// Point wraps a ristretto255 group element.
type Point struct {
	v *ristretto255.Element
}

func newPoint() *Point { return &Point{v: ristretto255.NewIdentityElement()} }

func asPoint(p group.Point) *Point { return p.(*Point) }

func (p *Point) Add(a, b group.Point) group.Point {
	p.v.Add(asPoint(a).v, asPoint(b).v)
	return p
}

func (p *Point) Sub(a, b group.Point) group.Point {
	neg := ristretto255.NewIdentityElement().Negate(asPoint(b).v)
	p.v.Add(asPoint(a).v, neg)
	return p
}

func (p *Point) Negate(a group.Point) group.Point {
	p.v.Negate(asPoint(a).v)
	return p
}

func (p *Point) ScalarMult(s group.Scalar, a group.Point) group.Point {
	p.v.ScalarMult(asScalar(s).v, asPoint(a).v)
	return p
}

func (p *Point) Set(a group.Point) group.Point {
	p.v.Set(asPoint(a).v)
	return p
}

func (p *Point) Bytes() []byte { return p.v.Bytes() }

func (p *Point) SetBytes(data []byte) (group.Point, error) {
	if _, err := p.v.SetCanonicalBytes(data); err != nil {
		return nil, &malformedError{"point: " + err.Error()}
	}
	return p, nil
}

func (p *Point) Equal(b group.Point) bool { return p.v.Equal(asPoint(b).v) == 1 }

func (p *Point) IsIdentity() bool { return p.v.Equal(ristretto255.NewIdentityElement()) == 1 }

type malformedError struct{ msg string }

func (e *malformedError) Error() string { return "ristretto255: " + e.msg }

// Suite is the FROST(ristretto255, SHA-512) ciphersuite.
type Suite struct{}

// New returns the FROST(ristretto255, SHA-512) ciphersuite.
func New() *Suite { return &Suite{} }

func (Suite) NewScalar() group.Scalar { return newScalar() }
func (Suite) NewPoint() group.Point   { return newPoint() }

func (s Suite) Generator() group.Point {
	p := newPoint()
	p.v.ScalarBaseMult(asScalar(s.ScalarFromUint64(1)).v)
	return p
}

func (Suite) RandomScalar(r io.Reader) (group.Scalar, error) {
	buf := make([]byte, 64)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		s := newScalar()
		if _, err := s.v.SetUniformBytes(buf); err != nil {
			continue
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// ScalarFromUint64 builds the scalar for small integer n from its
// little-endian byte representation, matching ristretto255's canonical
// scalar encoding (unlike secp256k1's big-endian convention).
func (Suite) ScalarFromUint64(n uint64) group.Scalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * i))
	}
	s := newScalar()
	if _, err := s.v.SetCanonicalBytes(buf[:]); err != nil {
		panic(err)
	}
	return s
}

func (Suite) ScalarSize() int  { return 32 }
func (Suite) ElementSize() int { return 32 }

func (Suite) ContextString() []byte { return []byte(contextString) }

func (Suite) IsTaprootCompatible() bool { return false }

func (s Suite) H1(input []byte) group.Scalar {
	return hashToScalar(concatTag(contextString, "rho"), input)
}

func (s Suite) H2(groupCommitment, verifyingKey, message, tweak []byte) group.Scalar {
	return hashToScalar(concatTag(contextString, "chal"), concatAll(groupCommitment, verifyingKey, message, tweak))
}

func (s Suite) H3(randomness, signingShare []byte) group.Scalar {
	return hashToScalar(concatTag(contextString, "nonce"), concatAll(randomness, signingShare))
}

func (s Suite) H4(message []byte) []byte {
	h := sha512.Sum512(concatTag(contextString, "msg", message))
	return h[:]
}

func (s Suite) H5(encodedVerifyingKey []byte) []byte {
	h := sha512.Sum512(concatTag(contextString, "com", encodedVerifyingKey))
	return h[:]
}

func hashToScalar(tag, msg []byte) group.Scalar {
	h := sha512.Sum512(concatAll(tag, msg))
	s := newScalar()
	if _, err := s.v.SetUniformBytes(h[:]); err != nil {
		// SetUniformBytes only fails on wrong input length; h is always 64
		// bytes, so this is unreachable.
		panic(err)
	}
	return s
}

func concatTag(parts ...any) []byte {
	var out []byte
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			out = append(out, v...)
		case []byte:
			out = append(out, v...)
		}
	}
	return out
}

func concatAll(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Ciphersuite's Taproot hooks are unused for this non-Taproot suite
// (IsTaprootCompatible reports false, so frost/ and keygen/ never call
// these), but the methods must exist to satisfy group.Ciphersuite.
func (Suite) TaprootCompatCommitmentShare(share group.Point, _ group.Point) group.Point { return share }
func (Suite) TaprootCompatVerifyingShare(share group.Point, _ group.Point) group.Point  { return share }
func (Suite) TweakVerifyingKey(verifyingKey group.Point, _ []byte) group.Point          { return verifyingKey }
func (Suite) TapTweakScalar(_ group.Point, _ []byte) group.Scalar                       { return newScalar() }
func (Suite) TaprootNegateNonces(_ group.Point, hiding, binding group.Scalar) (group.Scalar, group.Scalar) {
	return hiding, binding
}
func (Suite) TaprootNegateSigningShare(_ group.Point, share group.Scalar) group.Scalar { return share }
func (Suite) TaprootNormalizeGroupCommitment(groupCommitment group.Point) group.Point  { return groupCommitment }
