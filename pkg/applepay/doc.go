/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package applepay decrypts EC_v1 payment tokens into the plaintext payment
// record they wrap.
//
// A Decryptor is bound to one merchant identity at construction time:
//
//	d, err := applepay.New(
//		applepay.WithMerchantID("merchant.com.example.shop"),
//		applepay.WithPrivateKeyPath("/etc/keys/processing.key"),
//	)
//	if err != nil {
//		return err
//	}
//
//	record, err := d.Decrypt(tokenJSON)
//
// Decryption runs the pipeline fixed by the token format: ephemeral key
// normalization, ECDH key agreement on P-256, single-step Concat KDF bound
// to the merchant identifier, and AES-256-GCM with the format's fixed
// all-zero IV. Failures are reported as one of three error kinds
// (configuration, invalid token, cryptographic); see the errorx package.
// The outer envelope signature is not verified here.
package applepay
