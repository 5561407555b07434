package keygen

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/cryptops/frost/frost"
	"github.com/cryptops/frost/group"
)

// wireVSSCommitment is the CBOR-serializable form of VSSCommitment.
type wireVSSCommitment struct {
	Coefficients [][]byte `cbor:"1,keyasint"`
}

func encodeCoefficients(c VSSCommitment) [][]byte {
	out := make([][]byte, len(c.Coefficients))
	for i, p := range c.Coefficients {
		out[i] = p.Bytes()
	}
	return out
}

func decodeCoefficients(g group.Group, data [][]byte) ([]group.Point, error) {
	out := make([]group.Point, len(data))
	for i, b := range data {
		p, err := g.NewPoint().SetBytes(b)
		if err != nil {
			return nil, &frost.Error{Kind: frost.KindMalformedElement, Detail: "decoding VSS coefficient: " + err.Error()}
		}
		out[i] = p
	}
	return out, nil
}

// EncodeVSSCommitment serializes c to CBOR, for the dealer to publish its
// Feldman commitment alongside every participant's SecretShare.
func EncodeVSSCommitment(c VSSCommitment) ([]byte, error) {
	return cbor.Marshal(wireVSSCommitment{Coefficients: encodeCoefficients(c)})
}

// DecodeVSSCommitment deserializes data into a VSSCommitment against g.
func DecodeVSSCommitment(g group.Group, data []byte) (VSSCommitment, error) {
	var w wireVSSCommitment
	if err := cbor.Unmarshal(data, &w); err != nil {
		return VSSCommitment{}, &frost.Error{Kind: frost.KindMalformedElement, Detail: "decoding VSS commitment: " + err.Error()}
	}
	coeffs, err := decodeCoefficients(g, w.Coefficients)
	if err != nil {
		return VSSCommitment{}, err
	}
	return VSSCommitment{Coefficients: coeffs}, nil
}

// wireSecretShare is the CBOR-serializable form of SecretShare.
type wireSecretShare struct {
	Identifier []byte   `cbor:"1,keyasint"`
	Value      []byte   `cbor:"2,keyasint"`
	Commitment [][]byte `cbor:"3,keyasint"`
}

// EncodeSecretShare serializes s to CBOR, for the dealer to deliver a
// share to its participant over an authenticated channel.
func EncodeSecretShare(s SecretShare) ([]byte, error) {
	return cbor.Marshal(wireSecretShare{
		Identifier: s.Identifier.Bytes(),
		Value:      s.Value.Bytes(),
		Commitment: encodeCoefficients(s.Commitment),
	})
}

// DecodeSecretShare deserializes data into a SecretShare against g.
func DecodeSecretShare(g group.Group, data []byte) (SecretShare, error) {
	var w wireSecretShare
	if err := cbor.Unmarshal(data, &w); err != nil {
		return SecretShare{}, &frost.Error{Kind: frost.KindMalformedElement, Detail: "decoding secret share: " + err.Error()}
	}
	idScalar, err := g.NewScalar().SetBytes(w.Identifier)
	if err != nil {
		return SecretShare{}, &frost.Error{Kind: frost.KindMalformedScalar, Detail: "decoding identifier: " + err.Error()}
	}
	id, err := frost.IdentifierFromScalar(g, idScalar)
	if err != nil {
		return SecretShare{}, err
	}
	value, err := g.NewScalar().SetBytes(w.Value)
	if err != nil {
		return SecretShare{}, &frost.Error{Kind: frost.KindMalformedScalar, Detail: "decoding share value: " + err.Error()}
	}
	coeffs, err := decodeCoefficients(g, w.Commitment)
	if err != nil {
		return SecretShare{}, err
	}
	return SecretShare{Identifier: id, Value: value, Commitment: VSSCommitment{Coefficients: coeffs}}, nil
}
