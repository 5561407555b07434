package keygen

import (
	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group"
)

// Verify checks share against its Feldman VSS commitment and, on success,
// promotes it to a frost.KeyPackage. Grounded in
// f3rmion-fy/frost/dkg.go's Round2ReceiveShare: share*G must equal
// sum(commitment[k] * id^k) for k in [0, len(commitment)), adapted from
// pairwise DKG verification to single-dealer SecretShare promotion
// (spec.md §4.D).
func Verify(g group.Group, share SecretShare, minSigners uint16) (frost.KeyPackage, error) {
	lhs := g.NewPoint().ScalarMult(share.Value, g.Generator())

	rhs := g.NewPoint()
	xPower := g.NewScalar().Set(g.ScalarFromUint64(1))

	for _, commit := range share.Commitment.Coefficients {
		term := g.NewPoint().ScalarMult(xPower, commit)
		rhs = g.NewPoint().Add(rhs, term)
		xPower = g.NewScalar().Mul(xPower, share.Identifier.Scalar())
	}

	if !lhs.Equal(rhs) {
		return frost.KeyPackage{}, &frost.Error{Kind: frost.KindInvalidSecretShare,
			Detail: "share fails Feldman VSS check against dealer commitment"}
	}

	verifyingKey := frost.NewVerifyingKey(share.Commitment.Coefficients[0])
	return frost.KeyPackage{
		Identifier:     share.Identifier,
		SigningShare:   frost.NewSigningShare(share.Value),
		VerifyingShare: frost.NewVerifyingShare(lhs),
		VerifyingKey:   verifyingKey,
		MinSigners:     minSigners,
	}, nil
}
