/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package applepay

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"

	"github.com/hyperledger/aries-framework-go/component/log"
	spilog "github.com/hyperledger/aries-framework-go/spi/log"

	"github.com/securekey/applepay-go/pkg/crypto/ecv1"
	"github.com/securekey/applepay-go/pkg/errorx"
	"github.com/securekey/applepay-go/pkg/kms"
	"github.com/securekey/applepay-go/pkg/token"
)

const loggerModule = "applepay"

var logger = log.New(loggerModule)

// SetLogLevel adjusts the verbosity of the module logger.
func SetLogLevel(level spilog.Level) {
	log.SetLevel(loggerModule, level)
}

// Decryptor decrypts EC_v1 payment tokens for a single merchant identity.
// It is immutable after construction and safe for concurrent use; each call
// works on its own key-material buffers.
type Decryptor struct {
	privateKey     *ecdsa.PrivateKey
	merchantIDHash []byte
	certificate    *x509.Certificate
}

// New builds a Decryptor from the given options. Merchant key material is
// resolved and validated here, before any token is seen: a private key is
// required, and a merchant identity must be available either directly or
// through the processing certificate.
func New(opts ...Option) (*Decryptor, error) {
	d := &Decryptor{}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if err := d.resolveConfig(); err != nil {
		return nil, err
	}

	return d, nil
}

// Decrypt deserializes an encrypted token envelope and decrypts it into the
// plaintext payment-record field map.
func (d *Decryptor) Decrypt(raw []byte) (map[string]interface{}, error) {
	tok, err := token.Parse(raw)
	if err != nil {
		return nil, err
	}

	return d.DecryptToken(tok)
}

// DecryptToken runs the decryption pipeline on a deserialized envelope:
// structure check, component decode, ephemeral key normalization, ECDH
// agreement, key derivation and authenticated decryption, then parses the
// plaintext JSON. The pipeline is a single synchronous pass with no retries;
// the first failing stage wins.
func (d *Decryptor) DecryptToken(tok *token.EncryptedToken) (map[string]interface{}, error) {
	if err := tok.CheckStructure(); err != nil {
		return nil, err
	}

	components, err := tok.Components()
	if err != nil {
		return nil, err
	}

	rawKey, err := ecv1.ExtractRawKey(components.EphemeralPublicKey)
	if err != nil {
		return nil, err
	}

	if err := ecv1.ValidateRawKey(rawKey); err != nil {
		return nil, err
	}

	sharedSecret, err := ecv1.Agree(rawKey, d.privateKey)
	if err != nil {
		return nil, err
	}
	defer ecv1.Zero(sharedSecret)

	key := ecv1.DeriveKeyFromHash(sharedSecret, d.merchantIDHash)
	defer ecv1.Zero(key)

	plaintext, err := ecv1.Decrypt(components.Payload, key)
	if err != nil {
		return nil, err
	}

	record := map[string]interface{}{}
	if err := json.Unmarshal(plaintext, &record); err != nil {
		return nil, errorx.Wrap(errorx.InvalidToken, err, "unmarshal decrypted payload")
	}

	logger.Debugf("decrypted EC_v1 token for transaction %s", hex.EncodeToString(components.TransactionID))

	return record, nil
}

func (d *Decryptor) resolveConfig() error {
	if d.privateKey == nil {
		return errorx.NewConfiguration("no merchant private key configured")
	}

	if d.privateKey.Curve != elliptic.P256() {
		return errorx.NewConfiguration("merchant private key is not a P-256 key")
	}

	if d.certificate != nil {
		if err := kms.ValidateKeyPair(d.certificate, d.privateKey); err != nil {
			return err
		}

		if d.merchantIDHash == nil {
			hash, err := kms.MerchantIdentifierHash(d.certificate)
			if err != nil {
				return err
			}

			d.merchantIDHash = hash
		}
	}

	if d.merchantIDHash == nil {
		return errorx.NewConfiguration("no merchant identifier configured")
	}

	return nil
}
