/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecv1

import (
	"crypto/ecdsa"
	"math/big"

	hybrid "github.com/google/tink/go/hybrid/subtle"

	"github.com/securekey/applepay-go/pkg/errorx"
)

// curveName is the tink identifier of the only curve the EC_v1 format uses.
const curveName = "NIST_P256"

// sharedSecretSize is the byte length of a P-256 ECDH shared secret.
const sharedSecretSize = 32

// Agree computes the ECDH shared secret between the ephemeral public key in
// canonical 65-byte raw form and the merchant's private key. The result is
// the 32-byte X coordinate of the agreed point, left-padded to full width.
//
// The caller owns the returned secret and must Zero it once the derived key
// has been computed.
func Agree(rawKey []byte, merchantKey *ecdsa.PrivateKey) ([]byte, error) {
	if merchantKey == nil {
		return nil, errorx.NewCryptographic("key agreement: merchant private key is nil")
	}

	if err := ValidateRawKey(rawKey); err != nil {
		return nil, err
	}

	curve, err := hybrid.GetCurve(curveName)
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "key agreement: get curve")
	}

	x := new(big.Int).SetBytes(rawKey[1:33])
	y := new(big.Int).SetBytes(rawKey[33:])

	if !curve.IsOnCurve(x, y) {
		return nil, errorx.NewCryptographic("key agreement: ephemeral point is not on %s", curveName)
	}

	ephemeralPub, err := (&ecdsa.PublicKey{Curve: curve, X: x, Y: y}).ECDH()
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "key agreement: import ephemeral key")
	}

	priv, err := merchantKey.ECDH()
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "key agreement: import merchant key")
	}

	secret, err := priv.ECDH(ephemeralPub)
	if err != nil {
		return nil, errorx.Wrap(errorx.Cryptographic, err, "key agreement: compute shared secret")
	}

	if len(secret) != sharedSecretSize {
		Zero(secret)

		return nil, errorx.NewCryptographic("key agreement: unexpected secret length %d", len(secret))
	}

	return secret, nil
}
