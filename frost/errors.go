package frost

import "fmt"

// Kind identifies the category of a FROST protocol failure (spec.md §4.J).
// Kind is a sum type in spirit: callers should compare it with Is rather
// than switching on the underlying string.
type Kind string

const (
	// KindInvalidMinSigners is returned by trusted-dealer keygen when the
	// requested threshold is below the protocol minimum of 2.
	KindInvalidMinSigners Kind = "invalid_min_signers"
	// KindInvalidMaxSigners is returned by trusted-dealer keygen when the
	// requested group size is out of range.
	KindInvalidMaxSigners Kind = "invalid_max_signers"
	// KindInvalidMinSignersExceedsMaxSigners is returned when threshold
	// exceeds group size.
	KindInvalidMinSignersExceedsMaxSigners Kind = "invalid_min_signers_exceeds_max_signers"
	// KindDuplicatedIdentifier is returned when an identifier appears more
	// than once where the protocol requires distinctness.
	KindDuplicatedIdentifier Kind = "duplicated_identifier"
	// KindUnknownIdentifier is returned when a required identifier is
	// absent from a set the caller was expected to include it in.
	KindUnknownIdentifier Kind = "unknown_identifier"
	// KindMissingCommitment is returned when a signer's own commitment is
	// absent from the signing package it was handed.
	KindMissingCommitment Kind = "missing_commitment"
	// KindIncorrectCommitment is returned when a signing package lists a
	// commitment for this signer that does not match its held nonces.
	KindIncorrectCommitment Kind = "incorrect_commitment"
	// KindIncorrectNumberOfCommitments is returned when fewer than
	// min_signers commitments are present in a signing package, when
	// Aggregate receives a share count that differs from the commitment
	// count or lies outside [MinSigners, MaxSigners], and when roast runs
	// out of responsive signers.
	KindIncorrectNumberOfCommitments Kind = "incorrect_number_of_commitments"
	// KindInvalidSecretShare is returned when a secret share fails its
	// VSS check against the dealer's commitment.
	KindInvalidSecretShare Kind = "invalid_secret_share"
	// KindInvalidSignatureShare is returned when a signature share fails
	// per-share verification. Culprit names the offending identifier.
	KindInvalidSignatureShare Kind = "invalid_signature_share"
	// KindInvalidSignature is returned when the final aggregate signature
	// fails standard Schnorr verification.
	KindInvalidSignature Kind = "invalid_signature"
	// KindInvalidGroupCommitment is returned when the aggregated group
	// commitment R is the identity element.
	KindInvalidGroupCommitment Kind = "invalid_group_commitment"
	// KindMalformedScalar is returned when a scalar fails canonical
	// decoding.
	KindMalformedScalar Kind = "malformed_scalar"
	// KindMalformedElement is returned when a group element fails
	// canonical decoding.
	KindMalformedElement Kind = "malformed_element"
	// KindIdentifierDerivationFailed is returned when an identifier
	// cannot be derived from caller-supplied input (spec.md §9 Open
	// Question (b)).
	KindIdentifierDerivationFailed Kind = "identifier_derivation_failed"
)

// Error is the error type returned across keygen, frost, and roast; the one
// exception is keygen.Dealer, which returns failures of the caller's
// randomness source unwrapped. It carries a Kind and, for KindInvalidSignatureShare, the Culprit
// identifier that failed per-share verification (spec.md §4.J: "all others
// are context-free").
type Error struct {
	Kind    Kind
	Culprit Identifier // only meaningful when Kind == KindInvalidSignatureShare
	Detail  string     // human-readable context; never parsed by callers
}

func (e *Error) Error() string {
	if e.Kind == KindInvalidSignatureShare {
		return fmt.Sprintf("frost: %s: culprit %s: %s", e.Kind, e.Culprit, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("frost: %s", e.Kind)
	}
	return fmt.Sprintf("frost: %s: %s", e.Kind, e.Detail)
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &frost.Error{Kind: frost.KindInvalidSecretShare}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, detail string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(detail, args...)}
}

func newCulpritErr(kind Kind, culprit Identifier, detail string, args ...any) *Error {
	return &Error{Kind: kind, Culprit: culprit, Detail: fmt.Sprintf(detail, args...)}
}
