/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package applepay

// Service is the convenience surface kept for call sites written against
// the earlier process-wide API. It forwards to a caller-owned Decryptor.
//
// Deprecated: construct a Decryptor with New and call Decrypt.
type Service struct {
	decryptor *Decryptor
}

// NewService builds a Service for the given merchant identifier and private
// key file.
//
// Deprecated: use New with WithMerchantID and WithPrivateKeyPath.
func NewService(merchantID, privateKeyPath string) (*Service, error) {
	d, err := New(WithMerchantID(merchantID), WithPrivateKeyPath(privateKeyPath))
	if err != nil {
		return nil, err
	}

	return &Service{decryptor: d}, nil
}

// DecryptToken decrypts a serialized token envelope.
//
// Deprecated: use Decryptor.Decrypt.
func (s *Service) DecryptToken(raw []byte) (map[string]interface{}, error) {
	return s.decryptor.Decrypt(raw)
}
