// Package keygen implements trusted-dealer FROST key generation: a single
// dealer samples a random secret-sharing polynomial, distributes Shamir
// shares to each participant, and publishes Feldman VSS commitments so every
// participant can check its share without trusting the dealer (spec.md
// §4.C, §4.D).
package keygen

import (
	"fmt"
	"io"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group"
)

const (
	minSigners = 2
	maxSigners = 65535
)

// SecretShare is the dealer's private output for one participant, before
// VSS verification promotes it to a frost.KeyPackage.
type SecretShare struct {
	Identifier frost.Identifier
	Value      group.Scalar
	Commitment VSSCommitment
}

// VSSCommitment is the Feldman commitment [C_0, ..., C_{t-1}] to the
// dealer's polynomial coefficients, C_k = coeff_k * G, published alongside
// every share so a participant can verify it independently (spec.md §4.D).
type VSSCommitment struct {
	Coefficients []group.Point
}

// DealerOutput bundles everything trusted-dealer keygen produces: the
// per-participant secret shares and the public key package every
// participant and the coordinator needs for signing.
type DealerOutput struct {
	Shares    []SecretShare
	PublicKey frost.PublicKeyPackage
}

// Options configures a trusted-dealer keygen run.
type Options struct {
	// Secret, if non-nil, is used as the group secret key instead of a
	// freshly sampled one (spec.md §8 scenario 1: reproducible test
	// vectors need a caller-supplied secret).
	Secret group.Scalar
	// Identifiers, if non-nil, assigns these identifiers to participants
	// in order instead of the default sequential 1..MaxSigners assignment.
	// Every identifier must be distinct and non-zero.
	Identifiers []frost.Identifier
}

// Dealer generates a complete key share set for a (MinSigners, MaxSigners)
// threshold group, grounded in internal/testutils/shamir.go's
// generatePolynomial/calculatePolynomial and root poly.go's GenPoly/
// CalculatePoly (Horner's rule), generalized from *big.Int to group.Scalar
// and extended with the Feldman commitment emission spec.md §4.C requires.
func Dealer(g group.Group, minSignersReq, maxSignersReq uint16, rand io.Reader, opts Options) (DealerOutput, error) {
	if minSignersReq < minSigners {
		return DealerOutput{}, &frost.Error{Kind: frost.KindInvalidMinSigners,
			Detail: formatBound("min_signers must be at least", minSigners, minSignersReq)}
	}
	if minSignersReq > maxSignersReq {
		return DealerOutput{}, &frost.Error{Kind: frost.KindInvalidMinSignersExceedsMaxSigners,
			Detail: formatBound("min_signers exceeds max_signers", int(maxSignersReq), minSignersReq)}
	}
	if maxSignersReq > maxSigners {
		return DealerOutput{}, &frost.Error{Kind: frost.KindInvalidMaxSigners,
			Detail: formatBound("max_signers out of range for min_signers", int(minSignersReq), maxSignersReq)}
	}

	ids, err := resolveIdentifiers(g, maxSignersReq, opts.Identifiers)
	if err != nil {
		return DealerOutput{}, err
	}

	secret := opts.Secret
	if secret == nil {
		secret, err = g.RandomScalar(rand)
		if err != nil {
			return DealerOutput{}, err
		}
	}

	coefficients, err := generatePolynomial(g, secret, minSignersReq, rand)
	if err != nil {
		return DealerOutput{}, err
	}

	commitment := VSSCommitment{Coefficients: make([]group.Point, len(coefficients))}
	for i, c := range coefficients {
		commitment.Coefficients[i] = g.NewPoint().ScalarMult(c, g.Generator())
	}

	verifyingShares := make(map[string]frost.VerifyingShare, len(ids))
	shares := make([]SecretShare, len(ids))
	for i, id := range ids {
		value := evaluatePolynomial(g, coefficients, id)
		verifyingShare := g.NewPoint().ScalarMult(value, g.Generator())
		shares[i] = SecretShare{Identifier: id, Value: value, Commitment: commitment}
		verifyingShares[id.String()] = frost.NewVerifyingShare(verifyingShare)
	}

	verifyingKey := frost.NewVerifyingKey(commitment.Coefficients[0])
	pub := frost.PublicKeyPackage{VerifyingKey: verifyingKey, VerifyingShares: verifyingShares}

	return DealerOutput{Shares: shares, PublicKey: pub}, nil
}

func resolveIdentifiers(g group.Group, n uint16, supplied []frost.Identifier) ([]frost.Identifier, error) {
	if supplied == nil {
		ids := make([]frost.Identifier, n)
		for i := uint16(0); i < n; i++ {
			id, err := frost.IdentifierFromUint16(g, i+1)
			if err != nil {
				return nil, err
			}
			ids[i] = id
		}
		return ids, nil
	}
	if len(supplied) != int(n) {
		return nil, &frost.Error{Kind: frost.KindInvalidMaxSigners,
			Detail: formatBound("supplied identifier count must equal max_signers", int(n), uint16(len(supplied)))}
	}
	seen := make(map[string]bool, len(supplied))
	for _, id := range supplied {
		if id.IsZero() {
			return nil, &frost.Error{Kind: frost.KindIdentifierDerivationFailed, Detail: "supplied identifier is zero"}
		}
		key := id.String()
		if seen[key] {
			return nil, &frost.Error{Kind: frost.KindDuplicatedIdentifier, Detail: "duplicate supplied identifier " + key}
		}
		seen[key] = true
	}
	return supplied, nil
}

// generatePolynomial samples threshold-1 random coefficients and sets the
// constant term to secret, mirroring generatePolynomial in
// internal/testutils/shamir.go.
func generatePolynomial(g group.Group, secret group.Scalar, threshold uint16, rand io.Reader) ([]group.Scalar, error) {
	coeffs := make([]group.Scalar, threshold)
	coeffs[0] = secret
	for i := uint16(1); i < threshold; i++ {
		c, err := g.RandomScalar(rand)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return coeffs, nil
}

// evaluatePolynomial computes f(id) via Horner's rule, mirroring
// calculatePolynomial in internal/testutils/shamir.go and root poly.go's
// CalculatePoly, generalized over group.Scalar.
func evaluatePolynomial(g group.Group, coeffs []group.Scalar, id frost.Identifier) group.Scalar {
	result := g.NewScalar()
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = g.NewScalar().Mul(result, id.Scalar())
		result = g.NewScalar().Add(result, coeffs[i])
	}
	return result
}

func formatBound(msg string, bound int, got uint16) string {
	return fmt.Sprintf("%s: %d got %d", msg, bound, got)
}
