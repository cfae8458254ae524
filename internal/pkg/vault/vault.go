// Package vault seals cloud account credentials before they are stored.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrDecrypt is returned when a sealed value cannot be opened with the key.
var ErrDecrypt = errors.New("vault: unable to decrypt credentials")

// Vault encrypts with NaCl secretbox under a key derived from a passphrase.
type Vault struct {
	key [32]byte
}

// New derives the box key from passphrase with SHA-256.
func New(passphrase string) (*Vault, error) {
	if passphrase == "" {
		return nil, errors.New("vault: empty passphrase")
	}
	return &Vault{key: sha256.Sum256([]byte(passphrase))}, nil
}

// Seal encrypts plaintext and returns base64(nonce || box).
func (v *Vault) Seal(plaintext []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("vault: read nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], plaintext, &nonce, &v.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (v *Vault) Open(sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &v.key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// SealMap JSON-encodes m and seals it.
func (v *Vault) SealMap(m map[string]string) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("vault: encode credentials: %w", err)
	}
	return v.Seal(data)
}

// OpenMap opens a value produced by SealMap.
func (v *Vault) OpenMap(sealed string) (map[string]string, error) {
	plain, err := v.Open(sealed)
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	if err := json.Unmarshal(plain, &m); err != nil {
		return nil, fmt.Errorf("vault: decode credentials: %w", err)
	}
	return m, nil
}
