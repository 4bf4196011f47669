/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecv1

import (
	"crypto/sha256"
)

// Concat KDF parameters fixed by the EC_v1 token format. The algorithm
// identifier carries its own one-byte length prefix (0x0D).
const (
	kdfAlgorithm = "\x0did-aes256-GCM"
	kdfPartyU    = "Apple"
)

// DeriveKey derives the AES-256 payload key from the ECDH shared secret and
// the merchant identifier, per NIST SP 800-56A single-step Concat KDF:
//
//	key = SHA-256( counter || secret || algorithm || "Apple" || SHA-256(merchantID) )
//
// with a 4-byte big-endian counter of 1. A single round suffices because the
// requested key length equals the hash output length. An empty merchant ID is
// hashed as-is; rejecting it is the configuration layer's job.
func DeriveKey(sharedSecret []byte, merchantID string) []byte {
	idHash := sha256.Sum256([]byte(merchantID))

	return DeriveKeyFromHash(sharedSecret, idHash[:])
}

// DeriveKeyFromHash is DeriveKey for callers that already hold the SHA-256
// merchant identifier hash, e.g. read out of the processing certificate
// extension rather than recomputed from the identifier string.
func DeriveKeyFromHash(sharedSecret, merchantIDHash []byte) []byte {
	h := sha256.New()
	h.Write([]byte{0, 0, 0, 1})
	h.Write(sharedSecret)
	h.Write([]byte(kdfAlgorithm))
	h.Write([]byte(kdfPartyU))
	h.Write(merchantIDHash)

	return h.Sum(nil)
}
