/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecv1

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/securekey/applepay-go/pkg/errorx"
)

const (
	// ivSize is the GCM nonce length mandated by the token format. The IV
	// is all zero: confidentiality comes from the key being derived fresh
	// per token via the ephemeral ECDH exchange, so the nonce never
	// repeats under the same key. This is a documented property of the
	// format, not an oversight.
	ivSize = 16

	// tagSize is the GCM authentication tag length.
	tagSize = 16

	// keySize is the AES-256 key length.
	keySize = 32
)

// Decrypt opens an EC_v1 payload (ciphertext followed by the 16-byte GCM
// tag, no length prefix) with the derived AES-256 key and the fixed all-zero
// IV. It never returns unverified plaintext: any tag or cipher failure is a
// Cryptographic error.
func Decrypt(payload, key []byte) ([]byte, error) {
	if len(payload) < tagSize {
		return nil, errorx.NewInvalidToken("payload too short")
	}

	aead, err := newGCM(key)
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "open payload")
	}

	plaintext, err := aead.Open(nil, make([]byte, ivSize), payload, nil)
	if err != nil {
		return nil, errorx.NewCryptographic("authentication failed")
	}

	return plaintext, nil
}

// Encrypt is the inverse of Decrypt with the same fixed-IV construction,
// producing ciphertext||tag. It exists for fixture generation and tests;
// production tokens are encrypted by the payment network.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "seal payload")
	}

	return aead.Seal(nil, make([]byte, ivSize), plaintext, nil), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid AES-256 key length %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCMWithNonceSize(block, ivSize)
}
