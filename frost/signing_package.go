package frost

import (
	"sort"

	"github.com/cryptops/frost/group"
)

// SigningPackage is what the coordinator sends every participant before
// Round 2: the message to sign, the full commitment list for this session,
// and an optional BIP-341 tweak (spec.md §3, expansion over the teacher's
// untweaked prototype).
type SigningPackage struct {
	Message         []byte
	Commitments     []SigningCommitments // any order; sorted by Identifier before use, duplicates rejected
	AdditionalTweak []byte               // nil unless the ciphersuite is Taproot-compatible
	MinSigners      uint16
}

// sortedCommitments returns pkg.Commitments sorted by identifier, rejecting
// duplicate or fewer-than-MinSigners entries (spec.md §4.F/§4.H edge cases).
func (pkg SigningPackage) sortedCommitments() ([]SigningCommitments, error) {
	if len(pkg.Commitments) < int(pkg.MinSigners) {
		return nil, newErr(KindIncorrectNumberOfCommitments,
			"have %d commitments, need at least %d", len(pkg.Commitments), pkg.MinSigners)
	}
	out := make([]SigningCommitments, len(pkg.Commitments))
	copy(out, pkg.Commitments)
	sort.Slice(out, func(i, j int) bool {
		return lessBytes(out[i].Identifier.Bytes(), out[j].Identifier.Bytes())
	})
	for i := 1; i < len(out); i++ {
		if out[i].Identifier.Equal(out[i-1].Identifier) {
			return nil, newErr(KindDuplicatedIdentifier, "duplicate identifier %s in signing package", out[i].Identifier)
		}
	}
	return out, nil
}

// encodeCommitmentList canonically encodes the sorted commitment list as
// identifier || hiding_commitment || binding_commitment for each entry,
// concatenated in order with no length prefix or separator (spec.md §4.F,
// §4.G "canonical commitment-list encoding"). The result is fed into H1
// raw, unlike the message and verifying key, which are pre-hashed by H4
// and H5 respectively before being folded into H1's input.
func encodeCommitmentList(sorted []SigningCommitments) []byte {
	var buf []byte
	for _, c := range sorted {
		buf = append(buf, c.Identifier.Bytes()...)
		buf = append(buf, c.Hiding.Bytes()...)
		buf = append(buf, c.Binding.Bytes()...)
	}
	return buf
}

// bindingFactors computes rho_i for every participant in sorted, per
// spec.md §4.F: rho_i = H1(encode_group_commitment_list(S) || H4(message)
// || H5(verifying_key) || tweak || encode(i)), grounded in
// frost/participant.go's computeBindingFactors, generalized from fixed
// 8-byte uint64 indices to Identifier.Bytes(). verifyingKey is the group's
// original, untweaked verifying key: the Taproot tweak participates as its
// own, separate term so rogue-key binding does not depend on whether a
// tweak is present. tweak is nil for non-Taproot suites or untweaked
// signing.
func bindingFactors(suite group.Ciphersuite, sorted []SigningCommitments, message []byte, verifyingKey group.Point, tweak []byte) map[string]group.Scalar {
	encodedCommitments := encodeCommitmentList(sorted)
	messageHash := suite.H4(message)
	verifyingKeyHash := suite.H5(verifyingKey.Bytes())

	out := make(map[string]group.Scalar, len(sorted))
	for _, c := range sorted {
		var input []byte
		input = append(input, encodedCommitments...)
		input = append(input, messageHash...)
		input = append(input, verifyingKeyHash...)
		if len(tweak) > 0 {
			input = append(input, tweak...)
		}
		input = append(input, c.Identifier.Bytes()...)
		out[c.Identifier.String()] = suite.H1(input)
	}
	return out
}
