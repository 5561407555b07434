package frost

import (
	"github.com/cryptops/frost/group"
)

// Signature is the final aggregate Schnorr signature (R, z), encoded
// together in the ciphersuite's canonical form (spec.md §4.I).
type Signature struct {
	R group.Point
	Z group.Scalar
}

// Bytes returns the concatenated canonical encoding of R and z.
func (s Signature) Bytes() []byte {
	return append(append([]byte{}, s.R.Bytes()...), s.Z.Bytes()...)
}

// Coordinator aggregates signature shares into a final signature and
// verifies both individual shares and the result, grounded in
// frost/coordinator.go's Aggregate and the root-package prototype's
// verifySignatureShare/verifySignatureSharePrecalc.
type Coordinator struct {
	Suite      group.Ciphersuite
	PublicKeys PublicKeyPackage
	MinSigners uint16
	MaxSigners uint16
}

// Aggregate combines signature shares for pkg into a final Signature,
// verifying every share first and reporting the identifier of the first one
// that fails (spec.md §4.I: "a failed share must not silently corrupt the
// aggregate"). The bound-check error strings below are carried over from
// the teacher implementation's TestAggregate_Failures.
func (c Coordinator) Aggregate(pkg SigningPackage, shares []SignatureShare) (Signature, error) {
	if len(pkg.Commitments) != len(shares) {
		return Signature{}, newErr(KindIncorrectNumberOfCommitments,
			"the number of commitments and signature shares do not match; has [%d] commitments and [%d] signature shares",
			len(pkg.Commitments), len(shares))
	}
	if len(shares) < int(c.MinSigners) {
		return Signature{}, newErr(KindIncorrectNumberOfCommitments,
			"not enough shares; has [%d] for threshold [%d]", len(shares), c.MinSigners)
	}
	if len(shares) > int(c.MaxSigners) {
		return Signature{}, newErr(KindIncorrectNumberOfCommitments,
			"too many shares; has [%d] for group size [%d]", len(shares), c.MaxSigners)
	}

	sorted, err := pkg.sortedCommitments()
	if err != nil {
		return Signature{}, err
	}
	ids := make([]Identifier, len(sorted))
	for i, sc := range sorted {
		ids[i] = sc.Identifier
	}

	verifyingKey := c.PublicKeys.VerifyingKey.Point()
	effectiveVerifyingKey := verifyingKey
	if c.Suite.IsTaprootCompatible() {
		effectiveVerifyingKey = c.Suite.TweakVerifyingKey(verifyingKey, pkg.AdditionalTweak)
	}

	rho := bindingFactors(c.Suite, sorted, pkg.Message, verifyingKey, pkg.AdditionalTweak)
	r := groupCommitment(c.Suite, sorted, rho)
	if r.IsIdentity() {
		return Signature{}, newErr(KindInvalidGroupCommitment, "aggregated group commitment is the identity element")
	}

	// As in Round2: r keeps its raw parity for the per-share negation
	// decisions below; finalR is the even-y form the challenge and the
	// published signature must use (spec.md §4.G, §8 scenario 8).
	finalR := r
	if c.Suite.IsTaprootCompatible() {
		finalR = c.Suite.TaprootNormalizeGroupCommitment(r)
	}
	chal := challenge(c.Suite, finalR, effectiveVerifyingKey, pkg.Message, pkg.AdditionalTweak)

	if culprits := c.identifyCulprits(sorted, shares, ids, rho, r, chal); len(culprits) > 0 {
		return Signature{}, &Error{Kind: KindInvalidSignatureShare, Culprit: culprits[0],
			Detail: "signature share failed verification"}
	}

	z := c.Suite.NewScalar()
	for _, s := range shares {
		z = c.Suite.NewScalar().Add(z, s.Scalar())
	}
	if c.Suite.IsTaprootCompatible() && len(pkg.AdditionalTweak) > 0 {
		// Tweak correction is applied once to the aggregate rather than
		// per-share: c*t is public, so no signer needs to learn the
		// tweak to contribute to it (spec.md §3 additional_tweak).
		t := c.Suite.TapTweakScalar(verifyingKey, pkg.AdditionalTweak)
		z = c.Suite.NewScalar().Add(z, c.Suite.NewScalar().Mul(t, chal))
	}

	sig := Signature{R: finalR, Z: z}
	if err := c.Verify(pkg.Message, sig, pkg.AdditionalTweak); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// IdentifyCulprits verifies every share in shares against pkg and returns
// the identifiers of every share that fails, without aggregating. Useful
// for a caller (e.g. roast) that wants to drop bad signers and retry rather
// than treat the first failure as fatal.
func (c Coordinator) IdentifyCulprits(pkg SigningPackage, shares []SignatureShare) ([]Identifier, error) {
	sorted, err := pkg.sortedCommitments()
	if err != nil {
		return nil, err
	}
	ids := make([]Identifier, len(sorted))
	for i, sc := range sorted {
		ids[i] = sc.Identifier
	}
	verifyingKey := c.PublicKeys.VerifyingKey.Point()
	effectiveVerifyingKey := verifyingKey
	if c.Suite.IsTaprootCompatible() {
		effectiveVerifyingKey = c.Suite.TweakVerifyingKey(verifyingKey, pkg.AdditionalTweak)
	}

	rho := bindingFactors(c.Suite, sorted, pkg.Message, verifyingKey, pkg.AdditionalTweak)
	r := groupCommitment(c.Suite, sorted, rho)

	finalR := r
	if c.Suite.IsTaprootCompatible() {
		finalR = c.Suite.TaprootNormalizeGroupCommitment(r)
	}
	chal := challenge(c.Suite, finalR, effectiveVerifyingKey, pkg.Message, pkg.AdditionalTweak)
	return c.identifyCulprits(sorted, shares, ids, rho, r, chal), nil
}

func (c Coordinator) identifyCulprits(sorted []SigningCommitments, shares []SignatureShare, others []Identifier, rho map[string]group.Scalar, r group.Point, chal group.Scalar) []Identifier {
	var bad []Identifier
	for _, share := range shares {
		if err := c.verifyShare(sorted, share, others, rho, r, chal); err != nil {
			bad = append(bad, share.Identifier)
		}
	}
	return bad
}

// verifyShare checks z_i*G == R_i + lambda_i*c*Y_i, per spec.md §4.I,
// grounded in the root-package prototype's verifySignatureShare.
func (c Coordinator) verifyShare(sorted []SigningCommitments, share SignatureShare, others []Identifier, rho map[string]group.Scalar, r group.Point, chal group.Scalar) error {
	var commitment *SigningCommitments
	for i := range sorted {
		if sorted[i].Identifier.Equal(share.Identifier) {
			commitment = &sorted[i]
			break
		}
	}
	if commitment == nil {
		return newCulpritErr(KindUnknownIdentifier, share.Identifier, "no commitment for signature share")
	}

	verifyingShare, err := c.PublicKeys.VerifyingShareFor(share.Identifier)
	if err != nil {
		return err
	}
	verifyingKeyPoint := verifyingShare.Point()
	if c.Suite.IsTaprootCompatible() {
		verifyingKeyPoint = c.Suite.TaprootCompatVerifyingShare(verifyingKeyPoint, c.PublicKeys.VerifyingKey.Point())
	}

	rhoI := rho[share.Identifier.String()]
	rI := c.Suite.NewPoint().ScalarMult(rhoI, commitment.Binding)
	rI = c.Suite.NewPoint().Add(commitment.Hiding, rI)
	if c.Suite.IsTaprootCompatible() {
		rI = c.Suite.TaprootCompatCommitmentShare(rI, r)
	}

	lambda, err := Lagrange(c.Suite, share.Identifier, others)
	if err != nil {
		return err
	}

	lhs := c.Suite.NewPoint().ScalarMult(share.value, c.Suite.Generator())

	rhsScalar := c.Suite.NewScalar().Mul(lambda, chal)
	rhs := c.Suite.NewPoint().ScalarMult(rhsScalar, verifyingKeyPoint)
	rhs = c.Suite.NewPoint().Add(rI, rhs)

	if !lhs.Equal(rhs) {
		return newCulpritErr(KindInvalidSignatureShare, share.Identifier, "z_i*G != R_i + lambda_i*c*Y_i")
	}
	return nil
}

// Verify performs ordinary single-party Schnorr verification of sig against
// message and the coordinator's (possibly tweaked) group verifying key,
// since the aggregate FROST signature is indistinguishable from one
// produced by a single signer (spec.md §4.I).
func (c Coordinator) Verify(message []byte, sig Signature, tweak []byte) error {
	verifyingKey := c.PublicKeys.VerifyingKey.Point()
	if c.Suite.IsTaprootCompatible() {
		verifyingKey = c.Suite.TweakVerifyingKey(verifyingKey, tweak)
	}
	chal := challenge(c.Suite, sig.R, verifyingKey, message, tweak)

	lhs := c.Suite.NewPoint().ScalarMult(sig.Z, c.Suite.Generator())
	rhs := c.Suite.NewPoint().ScalarMult(chal, verifyingKey)
	rhs = c.Suite.NewPoint().Add(sig.R, rhs)
	if !lhs.Equal(rhs) {
		return newErr(KindInvalidSignature, "aggregate signature failed verification")
	}
	return nil
}
