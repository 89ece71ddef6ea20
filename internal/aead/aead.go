// Package aead wraps AES-256-GCM encryption for the compressed payload,
// keyed by SHA-256 of a caller-supplied password. It is kept as its own
// package with exactly two entry points (Encrypt/Decrypt) so that a
// build wanting an unencrypted-only workflow can avoid touching it.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"stegosuite/internal/stegoerr"
)

const nonceSize = 12

// DeriveKey turns a password into the 32-byte AES-256 key via a plain
// SHA-256 hash, with no salt or work factor; see DESIGN.md's Open
// Questions for the tradeoff this accepts.
func DeriveKey(password string) [32]byte {
	return sha256.Sum256([]byte(password))
}

// Encrypt produces nonce || ciphertext || tag for plaintext, using a
// fresh random 96-bit nonce drawn from crypto/rand for every call.
// Associated data is empty.
func Encrypt(password string, plaintext []byte) ([]byte, error) {
	key := DeriveKey(password)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aead: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aead: new GCM: %w", err)
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("aead: reading random nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Decrypt reverses Encrypt. A bad password or a tampered blob both
// surface as the same IntegrityError, since AES-GCM's authentication
// tag cannot distinguish the two causes.
func Decrypt(password string, blob []byte) ([]byte, error) {
	if len(blob) < nonceSize {
		return nil, stegoerr.Integrity("aead: ciphertext shorter than nonce")
	}
	key := DeriveKey(password)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("aead: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aead: new GCM: %w", err)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, stegoerr.Integrity("aead: authentication failed: %w", err)
	}
	return plaintext, nil
}
