/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kms

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"

	"github.com/securekey/applepay-go/pkg/errorx"
)

func TestParsePrivateKeyPKCS8(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	got, err := ParsePrivateKey(pemData)
	require.NoError(t, err)
	require.True(t, key.Equal(got))
}

func TestParsePrivateKeySEC1(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	pemData := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})

	got, err := ParsePrivateKey(pemData)
	require.NoError(t, err)
	require.True(t, key.Equal(got))
}

func TestParsePrivateKeyJWK(t *testing.T) {
	key := generateKey(t)

	jwkData, err := (&jose.JSONWebKey{Key: key}).MarshalJSON()
	require.NoError(t, err)

	got, err := ParsePrivateKey(jwkData)
	require.NoError(t, err)
	require.True(t, key.Equal(got))
}

func TestParsePrivateKeyRejectsNonP256(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	_, err = ParsePrivateKey(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
	require.Error(t, err)
	require.True(t, errorx.IsConfiguration(err))
	require.Contains(t, err.Error(), "P-256")
}

func TestParsePrivateKeyGarbage(t *testing.T) {
	_, err := ParsePrivateKey([]byte("garbage"))
	require.Error(t, err)
	require.True(t, errorx.IsConfiguration(err))
}

func TestLoadPrivateKey(t *testing.T) {
	key := generateKey(t)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "merchant.key")
	require.NoError(t, os.WriteFile(path,
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))

	got, err := LoadPrivateKey(path)
	require.NoError(t, err)
	require.True(t, key.Equal(got))

	_, err = LoadPrivateKey(filepath.Join(t.TempDir(), "missing.key"))
	require.Error(t, err)
	require.True(t, errorx.IsConfiguration(err))
}

func TestMerchantIdentifierHash(t *testing.T) {
	key := generateKey(t)
	cert := selfSignedCert(t, key, "merchant.test")

	hash, err := MerchantIdentifierHash(cert)
	require.NoError(t, err)

	want := sha256.Sum256([]byte("merchant.test"))
	require.Equal(t, want[:], hash)
}

func TestMerchantIdentifierHashMissingExtension(t *testing.T) {
	key := generateKey(t)
	cert := selfSignedCert(t, key, "")

	_, err := MerchantIdentifierHash(cert)
	require.Error(t, err)
	require.True(t, errorx.IsConfiguration(err))
	require.Contains(t, err.Error(), "no merchant identifier extension")
}

func TestParseCertificatePEMAndDER(t *testing.T) {
	key := generateKey(t)
	cert := selfSignedCert(t, key, "merchant.test")

	fromDER, err := ParseCertificate(cert.Raw)
	require.NoError(t, err)
	require.True(t, fromDER.Equal(cert))

	pemData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	fromPEM, err := ParseCertificate(pemData)
	require.NoError(t, err)
	require.True(t, fromPEM.Equal(cert))
}

func TestValidateKeyPair(t *testing.T) {
	key := generateKey(t)
	cert := selfSignedCert(t, key, "merchant.test")

	require.NoError(t, ValidateKeyPair(cert, key))

	other := generateKey(t)
	err := ValidateKeyPair(cert, other)
	require.Error(t, err)
	require.True(t, errorx.IsConfiguration(err))
}

func generateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return key
}

// selfSignedCert issues a throwaway processing certificate for key. When
// merchantID is non-empty the Apple merchant-identifier extension is added:
// a UTF8String DER header followed by the hex-encoded SHA-256 hash.
func selfSignedCert(t *testing.T, key *ecdsa.PrivateKey, merchantID string) *x509.Certificate {
	t.Helper()

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "merchant-identity:" + merchantID},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	if merchantID != "" {
		idHash := sha256.Sum256([]byte(merchantID))
		value := append([]byte{0x0c, 0x40}, []byte(hex.EncodeToString(idHash[:]))...)
		template.ExtraExtensions = []pkix.Extension{{Id: merchantIDHashOID, Value: value}}
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return cert
}
