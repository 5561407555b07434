package frost

import (
	"github.com/cryptops/frost/group"
)

// SignatureShare is a single participant's contribution z_i to the
// aggregate signature, produced by Round2 and consumed by Aggregate.
type SignatureShare struct {
	Identifier Identifier
	value      group.Scalar
}

func (s SignatureShare) Scalar() group.Scalar { return s.value }

// groupCommitment computes R = sum_i (D_i + rho_i*E_i) over the sorted
// commitment list, grounded in frost/participant.go's computeGroupCommitment.
func groupCommitment(suite group.Ciphersuite, sorted []SigningCommitments, rho map[string]group.Scalar) group.Point {
	r := suite.NewPoint()
	for _, c := range sorted {
		term := suite.NewPoint().ScalarMult(rho[c.Identifier.String()], c.Binding)
		term = suite.NewPoint().Add(c.Hiding, term)
		r = suite.NewPoint().Add(r, term)
	}
	return r
}

// challenge computes c = H2(encode(R) || encode(Y) || message || tweak),
// grounded in frost/participant.go's computeChallenge.
func challenge(suite group.Ciphersuite, groupComm group.Point, verifyingKey group.Point, message, tweak []byte) group.Scalar {
	return suite.H2(groupComm.Bytes(), verifyingKey.Bytes(), message, tweak)
}

// Round2 computes this participant's signature share given its retained
// Round1 nonces, key package, and the coordinator's signing package. It
// validates that exactly one commitment in the package belongs to this
// participant and matches the retained nonces (spec.md §4.H edge cases),
// generalizing frost/signer.go's validateGroupCommitments into typed errors.
func Round2(suite group.Ciphersuite, key KeyPackage, nonces SigningNonces, pkg SigningPackage, others []Identifier) (SignatureShare, error) {
	sorted, err := pkg.sortedCommitments()
	if err != nil {
		return SignatureShare{}, err
	}

	self, err := findSelf(key.Identifier, sorted, nonces, suite)
	if err != nil {
		return SignatureShare{}, err
	}

	verifyingKey := key.VerifyingKey.Point()
	tweak := pkg.AdditionalTweak
	effectiveVerifyingKey := verifyingKey
	if suite.IsTaprootCompatible() {
		effectiveVerifyingKey = suite.TweakVerifyingKey(verifyingKey, tweak)
	}

	rho := bindingFactors(suite, sorted, pkg.Message, verifyingKey, tweak)

	r := groupCommitment(suite, sorted, rho)
	if r.IsIdentity() {
		return SignatureShare{}, newErr(KindInvalidGroupCommitment, "aggregated group commitment is the identity element")
	}

	// The final signature's R must have even y (spec.md §4.G, §8 scenario
	// 8); TaprootNegateNonces below decides negation from r's raw parity,
	// but the challenge and Signature.R must use the normalized point that
	// the negated nonces actually sum to.
	finalR := r
	if suite.IsTaprootCompatible() {
		finalR = suite.TaprootNormalizeGroupCommitment(r)
	}

	c := challenge(suite, finalR, effectiveVerifyingKey, pkg.Message, tweak)

	lambda, err := Lagrange(suite, key.Identifier, others)
	if err != nil {
		return SignatureShare{}, err
	}

	hidingNonce := nonces.Hiding
	bindingNonce := nonces.Binding
	signingShare := key.SigningShare.Scalar()
	if suite.IsTaprootCompatible() {
		hidingNonce, bindingNonce = suite.TaprootNegateNonces(r, hidingNonce, bindingNonce)
		signingShare = suite.TaprootNegateSigningShare(verifyingKey, signingShare)
	}

	rhoSelf := rho[self.Identifier.String()]
	// z_i = hiding_nonce + (binding_nonce * rho_i) + (lambda_i * sk_i * c)
	term := suite.NewScalar().Mul(bindingNonce, rhoSelf)
	z := suite.NewScalar().Add(hidingNonce, term)
	skTerm := suite.NewScalar().Mul(lambda, signingShare)
	skTerm = suite.NewScalar().Mul(skTerm, c)
	z = suite.NewScalar().Add(z, skTerm)

	return SignatureShare{Identifier: key.Identifier, value: z}, nil
}

func findSelf(id Identifier, sorted []SigningCommitments, nonces SigningNonces, suite group.Ciphersuite) (SigningCommitments, error) {
	var found *SigningCommitments
	for i := range sorted {
		if sorted[i].Identifier.Equal(id) {
			found = &sorted[i]
			break
		}
	}
	if found == nil {
		return SigningCommitments{}, newErr(KindMissingCommitment, "identifier %s not present in signing package", id)
	}
	expectedHiding := suite.NewPoint().ScalarMult(nonces.Hiding, suite.Generator())
	expectedBinding := suite.NewPoint().ScalarMult(nonces.Binding, suite.Generator())
	if !expectedHiding.Equal(found.Hiding) || !expectedBinding.Equal(found.Binding) {
		return SigningCommitments{}, newErr(KindIncorrectCommitment, "published commitment for %s does not match retained nonces", id)
	}
	return *found, nil
}
