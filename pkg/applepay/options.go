/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package applepay

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"crypto/x509"

	"github.com/securekey/applepay-go/pkg/errorx"
	"github.com/securekey/applepay-go/pkg/kms"
)

// Option configures a Decryptor.
type Option func(*Decryptor) error

// WithMerchantID binds the decryptor to the given merchant identifier.
func WithMerchantID(merchantID string) Option {
	return func(d *Decryptor) error {
		if merchantID == "" {
			return errorx.NewConfiguration("merchant identifier is empty")
		}

		idHash := sha256.Sum256([]byte(merchantID))
		d.merchantIDHash = idHash[:]

		return nil
	}
}

// WithMerchantIDHash binds the decryptor to a precomputed SHA-256 merchant
// identifier hash.
func WithMerchantIDHash(hash []byte) Option {
	return func(d *Decryptor) error {
		if len(hash) != sha256.Size {
			return errorx.NewConfiguration("merchant identifier hash has length %d, want %d",
				len(hash), sha256.Size)
		}

		d.merchantIDHash = append([]byte(nil), hash...)

		return nil
	}
}

// WithPrivateKey sets the merchant private key.
func WithPrivateKey(key *ecdsa.PrivateKey) Option {
	return func(d *Decryptor) error {
		if key == nil {
			return errorx.NewConfiguration("merchant private key is nil")
		}

		d.privateKey = key

		return nil
	}
}

// WithPrivateKeyPath loads the merchant private key (PEM or JWK) from path.
func WithPrivateKeyPath(path string) Option {
	return func(d *Decryptor) error {
		key, err := kms.LoadPrivateKey(path)
		if err != nil {
			return err
		}

		d.privateKey = key

		return nil
	}
}

// WithCertificate sets the processing certificate. The merchant identifier
// hash is read from the certificate's merchant-identifier extension unless
// one was configured explicitly, and the certificate is cross-checked
// against the private key.
func WithCertificate(cert *x509.Certificate) Option {
	return func(d *Decryptor) error {
		if cert == nil {
			return errorx.NewConfiguration("processing certificate is nil")
		}

		d.certificate = cert

		return nil
	}
}

// WithCertificatePath loads the processing certificate (PEM or DER) from
// path. See WithCertificate.
func WithCertificatePath(path string) Option {
	return func(d *Decryptor) error {
		cert, err := kms.LoadCertificate(path)
		if err != nil {
			return err
		}

		d.certificate = cert

		return nil
	}
}
