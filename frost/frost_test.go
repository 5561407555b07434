package frost_test

import (
	"crypto/rand"
	"testing"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group/ristretto255"
	"github.com/cryptops/frost/internal/testutils"
	"github.com/cryptops/frost/keygen"
)

// sign drives Round1/Round2 for every participant in signers and aggregates
// the result, the minimal harness an in-process (2,3) threshold test needs.
func sign(t *testing.T, suite *ristretto255.Suite, pub frost.PublicKeyPackage, minSigners uint16, message []byte, signers []frost.KeyPackage) (frost.Signature, error) {
	t.Helper()

	type participant struct {
		key    frost.KeyPackage
		nonces frost.SigningNonces
		commit frost.SigningCommitments
	}

	participants := make([]participant, len(signers))
	commitments := make([]frost.SigningCommitments, len(signers))
	for i, key := range signers {
		nonces, commit, err := frost.Round1(suite, key.Identifier, key.SigningShare, rand.Reader)
		if err != nil {
			t.Fatalf("Round1 for %s: %v", key.Identifier, err)
		}
		participants[i] = participant{key: key, nonces: nonces, commit: commit}
		commitments[i] = commit
	}

	pkg := frost.SigningPackage{Message: message, Commitments: commitments, MinSigners: minSigners}

	ids := make([]frost.Identifier, len(signers))
	for i, key := range signers {
		ids[i] = key.Identifier
	}

	shares := make([]frost.SignatureShare, len(participants))
	for i, p := range participants {
		share, err := frost.Round2(suite, p.key, p.nonces, pkg, ids)
		if err != nil {
			t.Fatalf("Round2 for %s: %v", p.key.Identifier, err)
		}
		shares[i] = share
	}

	coord := frost.Coordinator{Suite: suite, PublicKeys: pub, MinSigners: minSigners, MaxSigners: uint16(len(signers))}
	return coord.Aggregate(pkg, shares)
}

func TestTwoOfThreeSigningRoundTrip(t *testing.T) {
	suite := ristretto255.New()

	out, err := keygen.Dealer(suite, 2, 3, rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}

	var keys []frost.KeyPackage
	for _, share := range out.Shares {
		key, err := keygen.Verify(suite, share, 2)
		if err != nil {
			t.Fatalf("Verify share for %s: %v", share.Identifier, err)
		}
		keys = append(keys, key)
	}

	message := []byte("the quick brown fox")

	// Any 2 of the 3 participants should be able to produce a valid
	// signature over the group verifying key.
	sig, err := sign(t, suite, out.PublicKey, 2, message, keys[:2])
	if err != nil {
		t.Fatalf("sign with 2 of 3: %v", err)
	}

	coord := frost.Coordinator{Suite: suite, PublicKeys: out.PublicKey, MinSigners: 2, MaxSigners: 3}
	if err := coord.Verify(message, sig, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestAggregateRejectsTooFewShares(t *testing.T) {
	suite := ristretto255.New()
	out, err := keygen.Dealer(suite, 2, 3, rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}

	key, err := keygen.Verify(suite, out.Shares[0], 2)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	nonces, commit, err := frost.Round1(suite, key.Identifier, key.SigningShare, rand.Reader)
	if err != nil {
		t.Fatalf("Round1: %v", err)
	}
	pkg := frost.SigningPackage{Message: []byte("m"), Commitments: []frost.SigningCommitments{commit}, MinSigners: 1}
	share, err := frost.Round2(suite, key, nonces, pkg, []frost.Identifier{key.Identifier})
	if err != nil {
		t.Fatalf("Round2: %v", err)
	}

	coord := frost.Coordinator{Suite: suite, PublicKeys: out.PublicKey, MinSigners: 2, MaxSigners: 3}
	_, err = coord.Aggregate(pkg, []frost.SignatureShare{share})
	if err == nil {
		t.Fatal("expected an error aggregating fewer shares than MinSigners, got nil")
	}
	testutils.AssertBoolsEqual(t, "error is KindIncorrectNumberOfCommitments", true,
		err.(*frost.Error).Kind == frost.KindIncorrectNumberOfCommitments)
}

func TestAggregateIdentifiesCulpritForForgedShare(t *testing.T) {
	suite := ristretto255.New()
	out, err := keygen.Dealer(suite, 2, 3, rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}

	var keys []frost.KeyPackage
	for _, share := range out.Shares[:2] {
		key, err := keygen.Verify(suite, share, 2)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		keys = append(keys, key)
	}

	message := []byte("forged share test")

	var commitments []frost.SigningCommitments
	var nonces []frost.SigningNonces
	for _, key := range keys {
		n, c, err := frost.Round1(suite, key.Identifier, key.SigningShare, rand.Reader)
		if err != nil {
			t.Fatalf("Round1: %v", err)
		}
		nonces = append(nonces, n)
		commitments = append(commitments, c)
	}
	pkg := frost.SigningPackage{Message: message, Commitments: commitments, MinSigners: 2}

	ids := []frost.Identifier{keys[0].Identifier, keys[1].Identifier}

	goodShare, err := frost.Round2(suite, keys[0], nonces[0], pkg, ids)
	if err != nil {
		t.Fatalf("Round2: %v", err)
	}

	// The second participant signs against the wrong message, producing a
	// share that fails per-share verification against pkg.
	forgedPkg := pkg
	forgedPkg.Message = []byte("a different message")
	forgedShare, err := frost.Round2(suite, keys[1], nonces[1], forgedPkg, ids)
	if err != nil {
		t.Fatalf("Round2 (forged): %v", err)
	}

	coord := frost.Coordinator{Suite: suite, PublicKeys: out.PublicKey, MinSigners: 2, MaxSigners: 3}
	_, err = coord.Aggregate(pkg, []frost.SignatureShare{goodShare, forgedShare})
	if err == nil {
		t.Fatal("expected aggregation to fail on a forged share, got nil")
	}
	ferr, ok := err.(*frost.Error)
	if !ok {
		t.Fatalf("expected *frost.Error, got %T", err)
	}
	testutils.AssertBoolsEqual(t, "error is KindInvalidSignatureShare", true, ferr.Kind == frost.KindInvalidSignatureShare)
	testutils.AssertBoolsEqual(t, "culprit is the forging participant", true, ferr.Culprit.Equal(keys[1].Identifier))
}
