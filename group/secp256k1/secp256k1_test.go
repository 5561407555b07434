package secp256k1

import (
	"crypto/rand"
	"testing"

	"github.com/cryptops/frost/internal/testutils"
)

func TestScalarArithmeticRoundTrip(t *testing.T) {
	suite := New()
	a, err := suite.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	b, err := suite.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	sum := suite.NewScalar().Add(a, b)
	diff := suite.NewScalar().Sub(sum, b)
	testutils.AssertBoolsEqual(t, "a recovered from (a+b)-b", true, diff.Equal(a))

	inv := suite.NewScalar().Invert(a)
	one := suite.NewScalar().Mul(a, inv)
	testutils.AssertBoolsEqual(t, "a*a^-1 == 1", true, one.Equal(suite.ScalarFromUint64(1)))
}

func TestScalarFromUint64(t *testing.T) {
	suite := New()
	zero := suite.ScalarFromUint64(0)
	testutils.AssertBoolsEqual(t, "ScalarFromUint64(0) is zero", true, zero.IsZero())

	one := suite.ScalarFromUint64(1)
	two := suite.NewScalar().Add(one, one)
	testutils.AssertBoolsEqual(t, "1+1 == ScalarFromUint64(2)", true, two.Equal(suite.ScalarFromUint64(2)))
}

func TestPointRoundTripEncoding(t *testing.T) {
	suite := New()
	s, err := suite.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	p := suite.NewPoint().ScalarMult(s, suite.Generator())

	encoded := p.Bytes()
	decoded, err := suite.NewPoint().SetBytes(encoded)
	if err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	testutils.AssertBoolsEqual(t, "point survives encode/decode round trip", true, p.Equal(decoded))
}

func TestGeneratorIsNotIdentity(t *testing.T) {
	suite := New()
	testutils.AssertBoolsEqual(t, "generator is not the identity element", false, suite.Generator().IsIdentity())
}

func TestHashesAreDomainSeparated(t *testing.T) {
	suite := New()
	msg := []byte("message")

	rho := suite.H1(msg)
	chal := suite.H2([]byte("R"), []byte("Y"), msg, nil)
	nonce := suite.H3([]byte("random"), []byte("share"))

	testutils.AssertBoolsEqual(t, "H1 and H2 outputs differ under distinct tags", false, rho.Equal(chal))
	testutils.AssertBoolsEqual(t, "H1 and H3 outputs differ under distinct tags", false, rho.Equal(nonce))
}

func TestIsTaprootCompatible(t *testing.T) {
	suite := New()
	testutils.AssertBoolsEqual(t, "secp256k1 suite is Taproot-compatible", true, suite.IsTaprootCompatible())
}

// TestNormalizeGroupCommitmentIsAlwaysEvenY exercises both parities by
// normalizing each point i*G and its negation, since negation flips the
// parity of y; without the odd case a normalizeEvenY regression goes unseen.
func TestNormalizeGroupCommitmentIsAlwaysEvenY(t *testing.T) {
	suite := New()
	for i := uint64(1); i <= 4; i++ {
		s := suite.ScalarFromUint64(i)
		p := suite.NewPoint().ScalarMult(s, suite.Generator())
		normalized := suite.TaprootNormalizeGroupCommitment(p)
		encoded := normalized.Bytes()
		testutils.AssertBoolsEqual(t, "normalized group commitment has even-y prefix", true, encoded[0] == 0x02)
		negEncoded := suite.TaprootNormalizeGroupCommitment(suite.NewPoint().Negate(p)).Bytes()
		testutils.AssertBoolsEqual(t, "normalized negated group commitment has even-y prefix", true, negEncoded[0] == 0x02)
	}
}

// TestNormalizeGroupCommitmentPreservesXCoordinate checks that normalizing
// only ever flips the sign of y, never changes which x-only point R
// represents, since BIP-340 verification depends solely on x(R).
func TestNormalizeGroupCommitmentPreservesXCoordinate(t *testing.T) {
	suite := New()
	s := suite.ScalarFromUint64(3)
	p := suite.NewPoint().ScalarMult(s, suite.Generator())
	normalized := suite.TaprootNormalizeGroupCommitment(p)

	pEncoded := p.Bytes()
	normEncoded := normalized.Bytes()
	testutils.AssertBoolsEqual(t, "x coordinate is unchanged by even-y normalization", true,
		string(pEncoded[1:]) == string(normEncoded[1:]))
}

// TestTweakVerifyingKeyNormalizesToEvenY mirrors
// TestNormalizeGroupCommitmentIsAlwaysEvenY for the verifying-key side of
// the even-y convention.
func TestTweakVerifyingKeyNormalizesToEvenY(t *testing.T) {
	suite := New()
	for i := uint64(1); i <= 4; i++ {
		s := suite.ScalarFromUint64(i)
		y := suite.NewPoint().ScalarMult(s, suite.Generator())
		tweaked := suite.TweakVerifyingKey(y, nil)
		encoded := tweaked.Bytes()
		testutils.AssertBoolsEqual(t, "tweaked verifying key has even-y prefix", true, encoded[0] == 0x02)
		negEncoded := suite.TweakVerifyingKey(suite.NewPoint().Negate(y), nil).Bytes()
		testutils.AssertBoolsEqual(t, "tweaked negated verifying key has even-y prefix", true, negEncoded[0] == 0x02)
	}
}
