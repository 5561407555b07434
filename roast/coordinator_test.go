package roast_test

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group/ristretto255"
	"github.com/cryptops/frost/internal/testutils"
	"github.com/cryptops/frost/keygen"
	"github.com/cryptops/frost/roast"
)

// fakeSigner plays the part of one of roast.Coordinator's candidate
// signers entirely in-process, with a behaviour knob mirroring the
// root-package prototype's MemberState fault-injection flags
// (good/silent/malicious).
type fakeSigner struct {
	suite ristretto255.Suite
	key   frost.KeyPackage

	behaviour  string
	lastNonces frost.SigningNonces
}

const (
	behaviourGood      = "good"
	behaviourSilent    = "silent"
	behaviourMalicious = "malicious"
)

func (s *fakeSigner) Identifier() frost.Identifier { return s.key.Identifier }

func (s *fakeSigner) Commit() (frost.SigningCommitments, error) {
	if s.behaviour == behaviourSilent {
		return frost.SigningCommitments{}, errors.New("fakeSigner: unreachable")
	}
	nonces, commit, err := frost.Round1(&s.suite, s.key.Identifier, s.key.SigningShare, rand.Reader)
	if err != nil {
		return frost.SigningCommitments{}, err
	}
	s.lastNonces = nonces
	return commit, nil
}

func (s *fakeSigner) Sign(pkg frost.SigningPackage) (frost.SignatureShare, error) {
	if s.behaviour == behaviourSilent {
		return frost.SignatureShare{}, errors.New("fakeSigner: unreachable")
	}
	if s.behaviour == behaviourMalicious {
		return s.forgedShare()
	}
	return frost.Round2(&s.suite, s.key, s.lastNonces, pkg, commitmentIdentifiers(pkg))
}

// forgedShare fabricates a syntactically valid SignatureShare carrying a
// random scalar instead of the real z_i, simulating
// RespondsMaliciously from the root-package prototype's MemberState.
func (s *fakeSigner) forgedShare() (frost.SignatureShare, error) {
	bogus, err := s.suite.RandomScalar(rand.Reader)
	if err != nil {
		return frost.SignatureShare{}, err
	}
	wire := struct {
		Identifier []byte `cbor:"1,keyasint"`
		Value      []byte `cbor:"2,keyasint"`
	}{Identifier: s.key.Identifier.Bytes(), Value: bogus.Bytes()}
	data, err := cbor.Marshal(wire)
	if err != nil {
		return frost.SignatureShare{}, err
	}
	return frost.DecodeSignatureShare(&s.suite, data)
}

func commitmentIdentifiers(pkg frost.SigningPackage) []frost.Identifier {
	ids := make([]frost.Identifier, len(pkg.Commitments))
	for i, c := range pkg.Commitments {
		ids[i] = c.Identifier
	}
	return ids
}

func setupGroup(t *testing.T, n int) (ristretto255.Suite, frost.PublicKeyPackage, []frost.KeyPackage) {
	t.Helper()
	suite := ristretto255.New()
	out, err := keygen.Dealer(suite, 2, uint16(n), rand.Reader, keygen.Options{})
	if err != nil {
		t.Fatalf("Dealer: %v", err)
	}
	var keys []frost.KeyPackage
	for _, share := range out.Shares {
		key, err := keygen.Verify(suite, share, 2)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		keys = append(keys, key)
	}
	return *suite, out.PublicKey, keys
}

func TestCoordinatorSignsWithAllGoodSigners(t *testing.T) {
	suite, pub, keys := setupGroup(t, 3)

	signers := make([]roast.Signer, len(keys))
	for i, key := range keys {
		signers[i] = &fakeSigner{suite: suite, key: key, behaviour: behaviourGood}
	}

	coord := roast.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3, Signers: signers}
	sig, err := coord.Sign([]byte("message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	verifier := frost.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3}
	if err := verifier.Verify([]byte("message"), sig, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCoordinatorToleratesOneSilentSigner(t *testing.T) {
	suite, pub, keys := setupGroup(t, 3)

	signers := []roast.Signer{
		&fakeSigner{suite: suite, key: keys[0], behaviour: behaviourGood},
		&fakeSigner{suite: suite, key: keys[1], behaviour: behaviourGood},
		&fakeSigner{suite: suite, key: keys[2], behaviour: behaviourSilent},
	}

	coord := roast.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3, Signers: signers}
	sig, err := coord.Sign([]byte("message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	verifier := frost.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3}
	if err := verifier.Verify([]byte("message"), sig, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCoordinatorRetriesPastOneMaliciousSigner(t *testing.T) {
	suite, pub, keys := setupGroup(t, 3)

	signers := []roast.Signer{
		&fakeSigner{suite: suite, key: keys[0], behaviour: behaviourGood},
		&fakeSigner{suite: suite, key: keys[1], behaviour: behaviourMalicious},
		&fakeSigner{suite: suite, key: keys[2], behaviour: behaviourGood},
	}

	coord := roast.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3, Signers: signers}
	sig, err := coord.Sign([]byte("message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	verifier := frost.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3}
	if err := verifier.Verify([]byte("message"), sig, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCoordinatorFailsWhenTooFewSignersRespond(t *testing.T) {
	suite, pub, keys := setupGroup(t, 3)

	signers := []roast.Signer{
		&fakeSigner{suite: suite, key: keys[0], behaviour: behaviourGood},
		&fakeSigner{suite: suite, key: keys[1], behaviour: behaviourSilent},
		&fakeSigner{suite: suite, key: keys[2], behaviour: behaviourSilent},
	}

	coord := roast.Coordinator{Suite: &suite, PublicKeys: pub, MinSigners: 2, MaxSigners: 3, Signers: signers}
	_, err := coord.Sign([]byte("message"))
	if err == nil {
		t.Fatal("expected an error when fewer than MinSigners signers respond, got nil")
	}
	testutils.AssertBoolsEqual(t, "error is KindIncorrectNumberOfCommitments", true,
		err.(*frost.Error).Kind == frost.KindIncorrectNumberOfCommitments)
}
