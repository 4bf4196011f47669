/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package kms loads and validates merchant key material: the processing
// certificate issued by the payment network and the matching P-256 private
// key. It is a collaborator of the decryption pipeline; all I/O happens
// here, outside the pipeline's hot path.
package kms

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/asn1"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/pkg/errors"

	"github.com/securekey/applepay-go/pkg/errorx"
)

// merchantIDHashOID is the certificate extension holding the hex-encoded
// SHA-256 hash of the merchant identifier.
var merchantIDHashOID = asn1.ObjectIdentifier{1, 2, 840, 113635, 100, 6, 32}

// LoadPrivateKey reads and parses the merchant private key at path.
func LoadPrivateKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errorx.Wrap(errorx.Configuration, err, "read merchant private key")
	}

	return ParsePrivateKey(data)
}

// ParsePrivateKey parses a merchant private key from PEM (PKCS#8 or SEC 1)
// or JWK form and checks that it is a P-256 key.
func ParsePrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	key, err := parsePrivateKey(data)
	if err != nil {
		return nil, errorx.Wrap(errorx.Configuration, err, "parse merchant private key")
	}

	if key.Curve != elliptic.P256() {
		return nil, errorx.NewConfiguration("merchant private key is not a P-256 key")
	}

	return key, nil
}

func parsePrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case "PRIVATE KEY":
			key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "PKCS#8")
			}

			ecKey, ok := key.(*ecdsa.PrivateKey)
			if !ok {
				return nil, errors.New("PKCS#8 key is not an EC key")
			}

			return ecKey, nil
		case "EC PRIVATE KEY":
			key, err := x509.ParseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, errors.Wrap(err, "SEC 1")
			}

			return key, nil
		default:
			return nil, errors.Errorf("unsupported PEM block type %q", block.Type)
		}
	}

	if json.Valid(data) {
		jwk := &jose.JSONWebKey{}
		if err := jwk.UnmarshalJSON(data); err != nil {
			return nil, errors.Wrap(err, "JWK")
		}

		key, ok := jwk.Key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.New("JWK is not an EC private key")
		}

		return key, nil
	}

	return nil, errors.New("not PEM or JWK data")
}

// LoadCertificate reads and parses the processing certificate at path.
func LoadCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errorx.Wrap(errorx.Configuration, err, "read processing certificate")
	}

	return ParseCertificate(data)
}

// ParseCertificate parses a processing certificate from PEM or raw DER.
func ParseCertificate(data []byte) (*x509.Certificate, error) {
	der := data

	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "CERTIFICATE" {
			return nil, errorx.NewConfiguration("parse processing certificate: unsupported PEM block type %q",
				block.Type)
		}

		der = block.Bytes
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errorx.Wrap(errorx.Configuration, err, "parse processing certificate")
	}

	return cert, nil
}

// MerchantIdentifierHash extracts the SHA-256 merchant-identifier hash from
// the processing certificate extension. The extension value is the hash as
// hex text behind a two-byte DER string header.
func MerchantIdentifierHash(cert *x509.Certificate) ([]byte, error) {
	for _, ext := range cert.Extensions {
		if !ext.Id.Equal(merchantIDHashOID) {
			continue
		}

		if len(ext.Value) <= 2 {
			return nil, errorx.NewConfiguration("merchant identifier extension too short")
		}

		hash, err := hex.DecodeString(string(ext.Value[2:]))
		if err != nil {
			return nil, errorx.Wrap(errorx.Configuration, err, "decode merchant identifier hash")
		}

		if len(hash) != 32 {
			return nil, errorx.NewConfiguration("merchant identifier hash has length %d, want 32", len(hash))
		}

		return hash, nil
	}

	return nil, errorx.NewConfiguration("certificate has no merchant identifier extension")
}

// ValidateKeyPair checks that the processing certificate's public key
// matches the merchant private key.
func ValidateKeyPair(cert *x509.Certificate, key *ecdsa.PrivateKey) error {
	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return errorx.NewConfiguration("processing certificate does not hold an EC public key")
	}

	if !pub.Equal(&key.PublicKey) {
		return errorx.NewConfiguration("processing certificate does not match the merchant private key")
	}

	return nil
}
