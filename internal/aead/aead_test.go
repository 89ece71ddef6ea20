package aead

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox")
	blob, err := Encrypt("correct password", plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := Decrypt("correct password", blob)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("got %q want %q", got, plaintext)
	}
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	blob, err := Encrypt("right", []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt("wrong", blob); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestDecryptTamperedBlobFails(t *testing.T) {
	blob, err := Encrypt("pw", []byte("secret payload"))
	if err != nil {
		t.Fatal(err)
	}
	blob[len(blob)-1] ^= 0xff
	if _, err := Decrypt("pw", blob); err == nil {
		t.Fatal("expected error for tampered ciphertext")
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	a, err := Encrypt("pw", []byte("same plaintext"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt("pw", []byte("same plaintext"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a[:12], b[:12]) {
		t.Fatal("two encryptions produced the same nonce")
	}
}
