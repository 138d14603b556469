package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrSealedValueInvalid = errors.New("sealed value invalid")

// Sealer encrypts small secrets (the upstream access token) before they are
// written to the shared key-value surface.
type Sealer struct {
	key [32]byte
}

func NewSealer(key [32]byte) *Sealer {
	return &Sealer{key: key}
}

// Seal encrypts the plaintext and returns a base64 value safe to store.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if s == nil {
		return "", errors.New("sealer not initialized")
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Tampered or truncated values return ErrSealedValueInvalid.
func (s *Sealer) Open(stored string) (string, error) {
	if s == nil {
		return "", errors.New("sealer not initialized")
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", ErrSealedValueInvalid
	}
	if len(raw) < nonceSize {
		return "", ErrSealedValueInvalid
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealedValueInvalid
	}
	return string(plain), nil
}
