package attest

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/ksekimoto/fsp/bsp"
)

func TestDeriveKey(t *testing.T) {
	uid := bsp.UniqueID{0x01, 0x02, 0x03, 0x04}

	k1, err := DeriveKey(uid.Bytes(), []byte("storage"), 32)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveKey(uid.Bytes(), []byte("storage"), 32)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("derivation is not deterministic")
	}

	other, err := DeriveKey(uid.Bytes(), []byte("sealing"), 32)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1, other) {
		t.Error("different labels derived the same key")
	}

	short, err := DeriveKey(uid.Bytes(), []byte("storage"), 16)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(short, k1[:16]) {
		t.Error("shorter key is not a truncation")
	}

	if _, err := DeriveKey(uid.Bytes(), []byte("storage"), sha256.Size+1); err == nil {
		t.Error("oversized key accepted")
	}
}

func TestInitialAttestationKeySigns(t *testing.T) {
	priv, err := InitialAttestationKey()
	if err != nil {
		t.Fatal(err)
	}

	digest := sha256.Sum256([]byte("attestation token"))
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		t.Fatal(err)
	}
	if !ecdsa.VerifyASN1(&priv.PublicKey, digest[:], sig) {
		t.Error("signature does not verify")
	}
}

func TestSignatureConversionRoundTrip(t *testing.T) {
	priv, err := InitialAttestationKey()
	if err != nil {
		t.Fatal(err)
	}

	digest := sha256.Sum256([]byte("round trip"))
	der, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		t.Fatal(err)
	}

	raw, err := ASN1SignatureToRaw(der)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 64 {
		t.Fatalf("raw signature is %d bytes", len(raw))
	}

	back, err := RawSignatureToASN1(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !ecdsa.VerifyASN1(&priv.PublicKey, digest[:], back) {
		t.Error("converted signature does not verify")
	}

	if _, err := RawSignatureToASN1(raw[:63]); err == nil {
		t.Error("short raw signature accepted")
	}
	if _, err := ASN1SignatureToRaw([]byte{0x30, 0x00}); err == nil {
		t.Error("empty sequence accepted")
	}
}
