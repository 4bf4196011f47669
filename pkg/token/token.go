/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package token models the EC_v1 payment-token envelope and performs the
// structural validation and component decoding that precede any
// cryptographic work.
package token

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/securekey/applepay-go/pkg/errorx"
)

// Supported and known-but-unsupported protocol versions.
const (
	VersionECv1  = "EC_v1"
	VersionRSAv1 = "RSA_v1"
)

// EncryptedToken is the deserialized payment-data envelope as produced by
// the payment network. The signature and publicKeyHash fields are carried
// but not verified here.
type EncryptedToken struct {
	Version   string `json:"version"`
	Data      string `json:"data"`
	Signature string `json:"signature,omitempty"`
	Header    Header `json:"header"`
}

// Header is the envelope header.
type Header struct {
	PublicKeyHash      string `json:"publicKeyHash,omitempty"`
	EphemeralPublicKey string `json:"ephemeralPublicKey"`
	TransactionID      string `json:"transactionId"`
	ApplicationData    string `json:"applicationData,omitempty"`
}

// Components holds the decoded byte-level pieces of an envelope that the
// decryption pipeline consumes.
type Components struct {
	// EphemeralPublicKey is the sender's one-time public key, either a raw
	// uncompressed point or a DER SubjectPublicKeyInfo blob.
	EphemeralPublicKey []byte

	// Payload is the ciphertext with the 16-byte GCM tag appended.
	Payload []byte

	// TransactionID is the decoded transaction identifier.
	TransactionID []byte
}

// Parse deserializes an envelope from JSON.
func Parse(raw []byte) (*EncryptedToken, error) {
	t := &EncryptedToken{}
	if err := json.Unmarshal(raw, t); err != nil {
		return nil, errorx.Wrap(errorx.InvalidToken, err, "unmarshal envelope")
	}

	return t, nil
}

// CheckStructure verifies that the required envelope fields are present and
// that the protocol version is the supported one. It runs before any key
// material is touched.
func (t *EncryptedToken) CheckStructure() error {
	switch t.Version {
	case VersionECv1:
	case "":
		return errorx.NewInvalidToken("missing version")
	case VersionRSAv1:
		return errorx.NewInvalidToken("unsupported version %s", VersionRSAv1)
	default:
		return errorx.NewInvalidToken("unsupported version %s", t.Version)
	}

	if t.Data == "" {
		return errorx.NewInvalidToken("missing data")
	}

	if t.Header.EphemeralPublicKey == "" {
		return errorx.NewInvalidToken("missing header.ephemeralPublicKey")
	}

	if t.Header.TransactionID == "" {
		return errorx.NewInvalidToken("missing header.transactionId")
	}

	return nil
}

// Components decodes the base64 and hex envelope fields. The transaction
// identifier is left-zero-padded to an even number of hex digits before
// decoding.
func (t *EncryptedToken) Components() (*Components, error) {
	payload, err := base64.StdEncoding.DecodeString(t.Data)
	if err != nil {
		return nil, errorx.Wrap(errorx.InvalidToken, err, "decode data")
	}

	ephemeralKey, err := base64.StdEncoding.DecodeString(t.Header.EphemeralPublicKey)
	if err != nil {
		return nil, errorx.Wrap(errorx.InvalidToken, err, "decode header.ephemeralPublicKey")
	}

	txnHex := t.Header.TransactionID
	if len(txnHex)%2 != 0 {
		txnHex = "0" + txnHex
	}

	txnID, err := hex.DecodeString(txnHex)
	if err != nil {
		return nil, errorx.Wrap(errorx.InvalidToken, err, "decode header.transactionId")
	}

	return &Components{
		EphemeralPublicKey: ephemeralKey,
		Payload:            payload,
		TransactionID:      txnID,
	}, nil
}
