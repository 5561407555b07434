package keygen_test

import (
	"crypto/rand"
	"testing"

	"github.com/cryptops/frost/group/ristretto255"
	"github.com/cryptops/frost/internal/testutils"
	"github.com/cryptops/frost/keygen"
)

func TestSecretShareWireRoundTrip(t *testing.T) {
	suite := ristretto255.New()
	out, err := keygen.Dealer(suite, 2, 3, rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}
	share := out.Shares[0]

	data, err := keygen.EncodeSecretShare(share)
	if err != nil {
		t.Fatalf("EncodeSecretShare: %v", err)
	}
	decoded, err := keygen.DecodeSecretShare(suite, data)
	if err != nil {
		t.Fatalf("DecodeSecretShare: %v", err)
	}

	testutils.AssertBoolsEqual(t, "identifier survives wire round trip", true, share.Identifier.Equal(decoded.Identifier))
	testutils.AssertBoolsEqual(t, "value survives wire round trip", true, share.Value.Equal(decoded.Value))
	testutils.AssertIntsEqual(t, "commitment coefficient count survives wire round trip",
		len(share.Commitment.Coefficients), len(decoded.Commitment.Coefficients))
	for i := range share.Commitment.Coefficients {
		testutils.AssertBoolsEqual(t, "commitment coefficient survives wire round trip", true,
			share.Commitment.Coefficients[i].Equal(decoded.Commitment.Coefficients[i]))
	}
}

func TestVSSCommitmentWireRoundTrip(t *testing.T) {
	suite := ristretto255.New()
	out, err := keygen.Dealer(suite, 2, 3, rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}
	commitment := out.Shares[0].Commitment

	data, err := keygen.EncodeVSSCommitment(commitment)
	if err != nil {
		t.Fatalf("EncodeVSSCommitment: %v", err)
	}
	decoded, err := keygen.DecodeVSSCommitment(suite, data)
	if err != nil {
		t.Fatalf("DecodeVSSCommitment: %v", err)
	}

	testutils.AssertIntsEqual(t, "coefficient count survives wire round trip",
		len(commitment.Coefficients), len(decoded.Coefficients))
	for i := range commitment.Coefficients {
		testutils.AssertBoolsEqual(t, "coefficient survives wire round trip", true,
			commitment.Coefficients[i].Equal(decoded.Coefficients[i]))
	}
}
