package frost

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/cryptops/frost/group"
)

// SigningNonces are the two secret nonce scalars a participant samples in
// Round 1 (spec.md §4.E). They MUST be used for exactly one Round 2 call and
// discarded immediately after, regardless of whether signing succeeds.
type SigningNonces struct {
	Hiding  group.Scalar
	Binding group.Scalar
}

// SigningCommitments are the public commitments (hiding_nonce*G,
// binding_nonce*G) published to the coordinator alongside Identifier.
type SigningCommitments struct {
	Identifier Identifier
	Hiding     group.Point
	Binding    group.Point
}

// Round1 samples fresh hedged nonces for signing share share and returns the
// secret nonces to be retained for the matching Round2 call, plus the public
// commitments (tagged with id) to publish. Grounded in
// frost/signer.go's Round1/generateNonce, but nonce derivation is hedged via
// HKDF (spec.md §4.E, §9 Open Question (a)) rather than a raw
// H3(random‖secret) concatenation: fresh randomness is extracted with the
// signing share as HKDF salt, so nonces stay unpredictable to anyone without
// the share even if the RNG is predictable. Nothing else is mixed in, so
// identical randomness for the same share yields identical nonces.
func Round1(g group.Group, id Identifier, share SigningShare, rand io.Reader) (SigningNonces, SigningCommitments, error) {
	hiding, err := hedgedNonce(g, share, rand)
	if err != nil {
		return SigningNonces{}, SigningCommitments{}, newErr(KindIdentifierDerivationFailed, "Round1: hiding nonce: %v", err)
	}
	binding, err := hedgedNonce(g, share, rand)
	if err != nil {
		return SigningNonces{}, SigningCommitments{}, newErr(KindIdentifierDerivationFailed, "Round1: binding nonce: %v", err)
	}

	nonces := SigningNonces{Hiding: hiding, Binding: binding}
	commitments := SigningCommitments{
		Identifier: id,
		Hiding:     g.NewPoint().ScalarMult(hiding, g.Generator()),
		Binding:    g.NewPoint().ScalarMult(binding, g.Generator()),
	}
	return nonces, commitments, nil
}

// hedgedNonce samples 32 bytes of fresh randomness and stretches it via
// HKDF extract-and-expand (SHA-256, salted with the signing share) into a scalar,
// rejecting and resampling on the vanishingly unlikely out-of-range result.
func hedgedNonce(g group.Group, share SigningShare, rand io.Reader) (group.Scalar, error) {
	random := make([]byte, 32)
	if _, err := io.ReadFull(rand, random); err != nil {
		return nil, err
	}
	kdf := hkdf.New(sha256.New, random, share.Bytes(), []byte("frost/nonce-generation"))
	for {
		buf := make([]byte, g.ScalarSize())
		if _, err := io.ReadFull(kdf, buf); err != nil {
			return nil, err
		}
		s, err := g.NewScalar().SetBytes(buf)
		if err == nil && !s.IsZero() {
			return s, nil
		}
	}
}
