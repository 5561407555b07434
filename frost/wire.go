package frost

import (
	"encoding/hex"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/cryptops/frost/group"
)

// wireSigningCommitments is the CBOR-serializable form of SigningCommitments:
// group.Point/Scalar are interfaces, so the wire form stores canonical
// bytes and the caller's Ciphersuite decodes them back on receipt
// (spec.md §4.K / SPEC_FULL.md §2.M). This envelope is never the input to
// any hash: every H1…H5 call in this package consumes the raw
// concatenations defined by signing_package.go, not these CBOR bytes.
type wireSigningCommitments struct {
	Identifier []byte `cbor:"1,keyasint"`
	Hiding     []byte `cbor:"2,keyasint"`
	Binding    []byte `cbor:"3,keyasint"`
}

// EncodeSigningCommitments serializes c to CBOR for transport between a
// participant and the coordinator.
func EncodeSigningCommitments(c SigningCommitments) ([]byte, error) {
	return cbor.Marshal(wireSigningCommitments{
		Identifier: c.Identifier.Bytes(),
		Hiding:     c.Hiding.Bytes(),
		Binding:    c.Binding.Bytes(),
	})
}

// DecodeSigningCommitments deserializes data into a SigningCommitments,
// resolving its identifier and points against suite.
func DecodeSigningCommitments(suite group.Ciphersuite, data []byte) (SigningCommitments, error) {
	var w wireSigningCommitments
	if err := cbor.Unmarshal(data, &w); err != nil {
		return SigningCommitments{}, newErr(KindMalformedElement, "decoding signing commitments: %v", err)
	}

	idScalar, err := suite.NewScalar().SetBytes(w.Identifier)
	if err != nil {
		return SigningCommitments{}, newErr(KindMalformedScalar, "decoding identifier: %v", err)
	}
	id, err := IdentifierFromScalar(suite, idScalar)
	if err != nil {
		return SigningCommitments{}, err
	}

	hiding, err := suite.NewPoint().SetBytes(w.Hiding)
	if err != nil {
		return SigningCommitments{}, newErr(KindMalformedElement, "decoding hiding commitment: %v", err)
	}
	binding, err := suite.NewPoint().SetBytes(w.Binding)
	if err != nil {
		return SigningCommitments{}, newErr(KindMalformedElement, "decoding binding commitment: %v", err)
	}

	return SigningCommitments{Identifier: id, Hiding: hiding, Binding: binding}, nil
}

// wireSignatureShare is the CBOR-serializable form of SignatureShare.
type wireSignatureShare struct {
	Identifier []byte `cbor:"1,keyasint"`
	Value      []byte `cbor:"2,keyasint"`
}

// EncodeSignatureShare serializes s to CBOR.
func EncodeSignatureShare(s SignatureShare) ([]byte, error) {
	return cbor.Marshal(wireSignatureShare{
		Identifier: s.Identifier.Bytes(),
		Value:      s.value.Bytes(),
	})
}

// DecodeSignatureShare deserializes data into a SignatureShare against suite.
func DecodeSignatureShare(suite group.Ciphersuite, data []byte) (SignatureShare, error) {
	var w wireSignatureShare
	if err := cbor.Unmarshal(data, &w); err != nil {
		return SignatureShare{}, newErr(KindMalformedElement, "decoding signature share: %v", err)
	}
	idScalar, err := suite.NewScalar().SetBytes(w.Identifier)
	if err != nil {
		return SignatureShare{}, newErr(KindMalformedScalar, "decoding identifier: %v", err)
	}
	id, err := IdentifierFromScalar(suite, idScalar)
	if err != nil {
		return SignatureShare{}, err
	}
	value, err := suite.NewScalar().SetBytes(w.Value)
	if err != nil {
		return SignatureShare{}, newErr(KindMalformedScalar, "decoding signature share value: %v", err)
	}
	return SignatureShare{Identifier: id, value: value}, nil
}

// EncodeSignature serializes sig to CBOR as a map holding the canonical
// encodings of R and z under keys 1 and 2.
func EncodeSignature(sig Signature) ([]byte, error) {
	return cbor.Marshal(struct {
		R []byte `cbor:"1,keyasint"`
		Z []byte `cbor:"2,keyasint"`
	}{R: sig.R.Bytes(), Z: sig.Z.Bytes()})
}

// DecodeSignature deserializes data into a Signature against suite.
func DecodeSignature(suite group.Ciphersuite, data []byte) (Signature, error) {
	var w struct {
		R []byte `cbor:"1,keyasint"`
		Z []byte `cbor:"2,keyasint"`
	}
	if err := cbor.Unmarshal(data, &w); err != nil {
		return Signature{}, newErr(KindMalformedElement, "decoding signature: %v", err)
	}
	r, err := suite.NewPoint().SetBytes(w.R)
	if err != nil {
		return Signature{}, newErr(KindMalformedElement, "decoding R: %v", err)
	}
	z, err := suite.NewScalar().SetBytes(w.Z)
	if err != nil {
		return Signature{}, newErr(KindMalformedScalar, "decoding z: %v", err)
	}
	return Signature{R: r, Z: z}, nil
}

// wireKeyPackage is the CBOR-serializable form of KeyPackage.
type wireKeyPackage struct {
	Identifier     []byte `cbor:"1,keyasint"`
	SigningShare   []byte `cbor:"2,keyasint"`
	VerifyingShare []byte `cbor:"3,keyasint"`
	VerifyingKey   []byte `cbor:"4,keyasint"`
	MinSigners     uint16 `cbor:"5,keyasint"`
}

// EncodeKeyPackage serializes k to CBOR, for a participant to persist its
// own private key material between signing sessions.
func EncodeKeyPackage(k KeyPackage) ([]byte, error) {
	return cbor.Marshal(wireKeyPackage{
		Identifier:     k.Identifier.Bytes(),
		SigningShare:   k.SigningShare.Bytes(),
		VerifyingShare: k.VerifyingShare.Bytes(),
		VerifyingKey:   k.VerifyingKey.Bytes(),
		MinSigners:     k.MinSigners,
	})
}

// DecodeKeyPackage deserializes data into a KeyPackage against suite.
func DecodeKeyPackage(suite group.Ciphersuite, data []byte) (KeyPackage, error) {
	var w wireKeyPackage
	if err := cbor.Unmarshal(data, &w); err != nil {
		return KeyPackage{}, newErr(KindMalformedElement, "decoding key package: %v", err)
	}
	idScalar, err := suite.NewScalar().SetBytes(w.Identifier)
	if err != nil {
		return KeyPackage{}, newErr(KindMalformedScalar, "decoding identifier: %v", err)
	}
	id, err := IdentifierFromScalar(suite, idScalar)
	if err != nil {
		return KeyPackage{}, err
	}
	signingShare, err := suite.NewScalar().SetBytes(w.SigningShare)
	if err != nil {
		return KeyPackage{}, newErr(KindMalformedScalar, "decoding signing share: %v", err)
	}
	verifyingShare, err := suite.NewPoint().SetBytes(w.VerifyingShare)
	if err != nil {
		return KeyPackage{}, newErr(KindMalformedElement, "decoding verifying share: %v", err)
	}
	verifyingKey, err := suite.NewPoint().SetBytes(w.VerifyingKey)
	if err != nil {
		return KeyPackage{}, newErr(KindMalformedElement, "decoding verifying key: %v", err)
	}
	return KeyPackage{
		Identifier:     id,
		SigningShare:   NewSigningShare(signingShare),
		VerifyingShare: NewVerifyingShare(verifyingShare),
		VerifyingKey:   NewVerifyingKey(verifyingKey),
		MinSigners:     w.MinSigners,
	}, nil
}

// wireVerifyingShareEntry pairs an identifier with its verifying share, the
// entries of a wirePublicKeyPackage. A slice rather than a CBOR map keeps
// identifier recovery exact: Identifier.String() is a display form, not
// something DecodePublicKeyPackage should have to parse back out of a map
// key.
type wireVerifyingShareEntry struct {
	Identifier []byte `cbor:"1,keyasint"`
	Share      []byte `cbor:"2,keyasint"`
}

// wirePublicKeyPackage is the CBOR-serializable form of PublicKeyPackage.
type wirePublicKeyPackage struct {
	VerifyingKey    []byte                    `cbor:"1,keyasint"`
	VerifyingShares []wireVerifyingShareEntry `cbor:"2,keyasint"`
}

// EncodePublicKeyPackage serializes pk to CBOR, for distribution to every
// participant and the coordinator. Entries are emitted in ascending key
// order so two encodings of the same package are byte-identical.
func EncodePublicKeyPackage(pk PublicKeyPackage) ([]byte, error) {
	keys := make([]string, 0, len(pk.VerifyingShares))
	for k := range pk.VerifyingShares {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]wireVerifyingShareEntry, 0, len(keys))
	for _, k := range keys {
		idBytes, err := hex.DecodeString(k)
		if err != nil {
			return nil, newErr(KindMalformedScalar, "decoding verifying-share map key %q: %v", k, err)
		}
		entries = append(entries, wireVerifyingShareEntry{
			Identifier: idBytes,
			Share:      pk.VerifyingShares[k].Bytes(),
		})
	}
	return cbor.Marshal(wirePublicKeyPackage{
		VerifyingKey:    pk.VerifyingKey.Bytes(),
		VerifyingShares: entries,
	})
}

// DecodePublicKeyPackage deserializes data into a PublicKeyPackage against
// suite.
func DecodePublicKeyPackage(suite group.Ciphersuite, data []byte) (PublicKeyPackage, error) {
	var w wirePublicKeyPackage
	if err := cbor.Unmarshal(data, &w); err != nil {
		return PublicKeyPackage{}, newErr(KindMalformedElement, "decoding public key package: %v", err)
	}
	verifyingKey, err := suite.NewPoint().SetBytes(w.VerifyingKey)
	if err != nil {
		return PublicKeyPackage{}, newErr(KindMalformedElement, "decoding verifying key: %v", err)
	}
	shares := make(map[string]VerifyingShare, len(w.VerifyingShares))
	for _, entry := range w.VerifyingShares {
		idScalar, err := suite.NewScalar().SetBytes(entry.Identifier)
		if err != nil {
			return PublicKeyPackage{}, newErr(KindMalformedScalar, "decoding identifier: %v", err)
		}
		id, err := IdentifierFromScalar(suite, idScalar)
		if err != nil {
			return PublicKeyPackage{}, err
		}
		share, err := suite.NewPoint().SetBytes(entry.Share)
		if err != nil {
			return PublicKeyPackage{}, newErr(KindMalformedElement, "decoding verifying share: %v", err)
		}
		shares[id.String()] = NewVerifyingShare(share)
	}
	return PublicKeyPackage{VerifyingKey: NewVerifyingKey(verifyingKey), VerifyingShares: shares}, nil
}

// wireSigningPackage is the CBOR-serializable form of SigningPackage.
type wireSigningPackage struct {
	Message         []byte                   `cbor:"1,keyasint"`
	Commitments     []wireSigningCommitments `cbor:"2,keyasint"`
	AdditionalTweak []byte                   `cbor:"3,keyasint"`
	MinSigners      uint16                   `cbor:"4,keyasint"`
}

// EncodeSigningPackage serializes pkg to CBOR, for the coordinator to
// distribute to every participant before Round 2.
func EncodeSigningPackage(pkg SigningPackage) ([]byte, error) {
	commitments := make([]wireSigningCommitments, len(pkg.Commitments))
	for i, c := range pkg.Commitments {
		commitments[i] = wireSigningCommitments{
			Identifier: c.Identifier.Bytes(),
			Hiding:     c.Hiding.Bytes(),
			Binding:    c.Binding.Bytes(),
		}
	}
	return cbor.Marshal(wireSigningPackage{
		Message:         pkg.Message,
		Commitments:     commitments,
		AdditionalTweak: pkg.AdditionalTweak,
		MinSigners:      pkg.MinSigners,
	})
}

// DecodeSigningPackage deserializes data into a SigningPackage against
// suite.
func DecodeSigningPackage(suite group.Ciphersuite, data []byte) (SigningPackage, error) {
	var w wireSigningPackage
	if err := cbor.Unmarshal(data, &w); err != nil {
		return SigningPackage{}, newErr(KindMalformedElement, "decoding signing package: %v", err)
	}
	commitments := make([]SigningCommitments, len(w.Commitments))
	for i, wc := range w.Commitments {
		idScalar, err := suite.NewScalar().SetBytes(wc.Identifier)
		if err != nil {
			return SigningPackage{}, newErr(KindMalformedScalar, "decoding identifier: %v", err)
		}
		id, err := IdentifierFromScalar(suite, idScalar)
		if err != nil {
			return SigningPackage{}, err
		}
		hiding, err := suite.NewPoint().SetBytes(wc.Hiding)
		if err != nil {
			return SigningPackage{}, newErr(KindMalformedElement, "decoding hiding commitment: %v", err)
		}
		binding, err := suite.NewPoint().SetBytes(wc.Binding)
		if err != nil {
			return SigningPackage{}, newErr(KindMalformedElement, "decoding binding commitment: %v", err)
		}
		commitments[i] = SigningCommitments{Identifier: id, Hiding: hiding, Binding: binding}
	}
	return SigningPackage{
		Message:         w.Message,
		Commitments:     commitments,
		AdditionalTweak: w.AdditionalTweak,
		MinSigners:      w.MinSigners,
	}, nil
}
