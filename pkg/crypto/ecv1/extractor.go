/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ecv1 implements the cryptographic primitives of the EC_v1
// payment-token format: ephemeral key normalization, ECDH key agreement,
// the single-step Concat KDF and AES-256-GCM payload decryption.
package ecv1

import (
	"github.com/securekey/applepay-go/pkg/errorx"
)

const (
	// rawKeyLen is the length of an uncompressed P-256 point:
	// one format byte followed by the 32-byte X and Y coordinates.
	rawKeyLen = 65

	// uncompressedPrefix is the SEC 1 uncompressed point format byte.
	uncompressedPrefix = 0x04
)

// ExtractRawKey normalizes ephemeral public key bytes to the canonical
// 65-byte uncompressed point form. The key may arrive either raw or embedded
// in a DER-encoded SubjectPublicKeyInfo structure; in the latter case the
// leftmost 0x04 byte followed by at least 64 more bytes is taken as the start
// of the point. This is the documented acceptance behavior of the token
// format, not a full ASN.1 parse.
func ExtractRawKey(keyBytes []byte) ([]byte, error) {
	switch {
	case len(keyBytes) == rawKeyLen && keyBytes[0] == uncompressedPrefix:
		return keyBytes, nil
	case len(keyBytes) > rawKeyLen:
		for i := 0; i+rawKeyLen <= len(keyBytes); i++ {
			if keyBytes[i] == uncompressedPrefix {
				return keyBytes[i : i+rawKeyLen], nil
			}
		}

		return nil, errorx.NewInvalidToken("ephemeral key: cannot locate raw point")
	default:
		return nil, errorx.NewInvalidToken("ephemeral key too short")
	}
}

// ValidateRawKey checks that rawKey is a canonical uncompressed point:
// exactly 65 bytes starting with 0x04. It is run on every key, including
// ones that were already canonical on the wire.
func ValidateRawKey(rawKey []byte) error {
	if len(rawKey) != rawKeyLen || rawKey[0] != uncompressedPrefix {
		return errorx.NewInvalidToken("ephemeral key: not an uncompressed point")
	}

	return nil
}
