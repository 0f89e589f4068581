// Package attest provides the key material used by the secure boot and
// attestation services: a key derived from the hardware unique key and the
// provisioned initial attestation key.
//
// There is no state here, only thin derivation and format shims over the
// provisioned material.
package attest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"errors"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	errKeySize      = errors.New("attest: derived key size exceeds digest size")
	errRawSignature = errors.New("attest: raw signature must be 64 bytes")
	errASN1         = errors.New("attest: invalid ASN.1 signature")
)

// DeriveKey derives a key of the given size from the device unique
// identifier, bound to the caller supplied label.
//
// The derivation is SHA-256 over the label followed by the identifier,
// truncated to size. Size is limited to the digest length.
func DeriveKey(uid, label []byte, size int) ([]byte, error) {
	if size < 0 || size > sha256.Size {
		return nil, errKeySize
	}
	h := sha256.New()
	h.Write(label)
	h.Write(uid)
	sum := h.Sum(nil)
	return sum[:size], nil
}

// initialAttestationKey is the provisioned P-256 signing key scalar.
//
// This is a development placeholder; production parts carry a key injected
// during manufacturing.
var initialAttestationKey = []byte{
	0xa9, 0xb4, 0x54, 0xb2, 0x6d, 0x6f, 0x90, 0xa4,
	0xea, 0x31, 0x19, 0x35, 0x64, 0xcb, 0xa9, 0x1f,
	0xec, 0x6f, 0x9a, 0x00, 0x2a, 0x7d, 0xc0, 0x50,
	0x4b, 0x92, 0xa1, 0x93, 0x71, 0x34, 0x58, 0x5f,
}

// InitialAttestationKey returns the provisioned attestation signing key.
func InitialAttestationKey() (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(initialAttestationKey)
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, errors.New("attest: provisioned key is not a valid scalar")
	}

	priv := &ecdsa.PrivateKey{D: d}
	priv.Curve = curve
	priv.X, priv.Y = curve.ScalarBaseMult(d.Bytes())
	return priv, nil
}

// RawSignatureToASN1 converts a raw r‖s P-256 signature, the form carried
// in attestation tokens, to the ASN.1 form the crypto/ecdsa verifiers use.
func RawSignatureToASN1(sig []byte) ([]byte, error) {
	if len(sig) != 64 {
		return nil, errRawSignature
	}

	var r, s big.Int
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r.SetBytes(sig[:32]))
		b.AddASN1BigInt(s.SetBytes(sig[32:]))
	})
	return b.Bytes()
}

// ASN1SignatureToRaw converts an ASN.1 encoded ECDSA signature to the raw
// 64 byte r‖s form.
func ASN1SignatureToRaw(sig []byte) ([]byte, error) {
	var (
		r, s  = big.Int{}, big.Int{}
		inner cryptobyte.String
	)
	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&r) ||
		!inner.ReadASN1Integer(&s) ||
		!inner.Empty() {
		return nil, errASN1
	}
	if r.BitLen() > 256 || s.BitLen() > 256 {
		return nil, errASN1
	}

	var raw [64]byte
	r.FillBytes(raw[:32])
	s.FillBytes(raw[32:])
	return raw[:], nil
}
