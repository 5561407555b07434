package frost_test

import (
	"crypto/rand"
	"testing"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group/secp256k1"
	"github.com/cryptops/frost/keygen"
)

// TestTwoOfThreeSigningRoundTripSecp256k1 mirrors
// TestTwoOfThreeSigningRoundTrip against the Taproot-compatible
// secp256k1 suite. Run enough times that an even-y normalization bug,
// which only misbehaves for honest signers on the roughly half of runs
// where the raw group commitment has odd y, cannot pass by chance.
func TestTwoOfThreeSigningRoundTripSecp256k1(t *testing.T) {
	suite := secp256k1.New()

	for attempt := 0; attempt < 16; attempt++ {
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

		type participant struct {
			key    frost.KeyPackage
			nonces frost.SigningNonces
		}
		signers := keys[:2]
		participants := make([]participant, len(signers))
		commitments := make([]frost.SigningCommitments, len(signers))
		for i, key := range signers {
			nonces, commit, err := frost.Round1(suite, key.Identifier, key.SigningShare, rand.Reader)
			if err != nil {
				t.Fatalf("Round1 for %s: %v", key.Identifier, err)
			}
			participants[i] = participant{key: key, nonces: nonces}
			commitments[i] = commit
		}

		pkg := frost.SigningPackage{Message: message, Commitments: commitments, MinSigners: 2}
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

		coord := frost.Coordinator{Suite: suite, PublicKeys: out.PublicKey, MinSigners: 2, MaxSigners: 3}
		sig, err := coord.Aggregate(pkg, shares)
		if err != nil {
			t.Fatalf("Aggregate (attempt %d): %v", attempt, err)
		}
		if err := coord.Verify(message, sig, nil); err != nil {
			t.Fatalf("Verify (attempt %d): %v", attempt, err)
		}
	}
}

// TestTwoOfThreeSigningRoundTripSecp256k1WithTweak exercises the BIP-341
// tweak path end to end, across enough runs to hit both parities of the
// raw group commitment.
func TestTwoOfThreeSigningRoundTripSecp256k1WithTweak(t *testing.T) {
	suite := secp256k1.New()
	tweak := []byte("taproot script tree merkle root")

	for attempt := 0; attempt < 16; attempt++ {
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

		message := []byte("tweaked message")

		type participant struct {
			key    frost.KeyPackage
			nonces frost.SigningNonces
		}
		signers := keys[1:3]
		participants := make([]participant, len(signers))
		commitments := make([]frost.SigningCommitments, len(signers))
		for i, key := range signers {
			nonces, commit, err := frost.Round1(suite, key.Identifier, key.SigningShare, rand.Reader)
			if err != nil {
				t.Fatalf("Round1 for %s: %v", key.Identifier, err)
			}
			participants[i] = participant{key: key, nonces: nonces}
			commitments[i] = commit
		}

		pkg := frost.SigningPackage{Message: message, Commitments: commitments, AdditionalTweak: tweak, MinSigners: 2}
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

		coord := frost.Coordinator{Suite: suite, PublicKeys: out.PublicKey, MinSigners: 2, MaxSigners: 3}
		sig, err := coord.Aggregate(pkg, shares)
		if err != nil {
			t.Fatalf("Aggregate (attempt %d): %v", attempt, err)
		}
		if err := coord.Verify(message, sig, tweak); err != nil {
			t.Fatalf("Verify (attempt %d): %v", attempt, err)
		}
	}
}
