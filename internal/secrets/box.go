// Package secrets seals small secrets for at-rest storage. The Zendesk API
// token must round-trip (it is replayed into the upstream Authorization
// header), so a one-way hash cannot serve; secretbox gives authenticated
// symmetric encryption with a static service key.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errSealedTooShort = errors.New("sealed payload too short")

// Box seals and opens byte payloads with a fixed 32-byte key.
type Box struct {
	key [32]byte
}

// NewBox parses a hex-encoded 32-byte key.
func NewBox(hexKey string) (*Box, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("secrets: decode key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("secrets: key must be 32 bytes, got %d", len(raw))
	}
	box := &Box{}
	copy(box.key[:], raw)
	return box, nil
}

// Seal encrypts plain with a random nonce prefixed to the ciphertext.
func (b *Box) Seal(plain string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("secrets: nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(plain), &nonce, &b.key), nil
}

// Open decrypts a payload produced by Seal.
func (b *Box) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize {
		return "", errSealedTooShort
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", errors.New("secrets: open failed")
	}
	return string(plain), nil
}
