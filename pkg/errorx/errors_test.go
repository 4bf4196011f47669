/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := NewInvalidToken("missing %s", "version")
	require.EqualError(t, err, "invalid-token: missing version")

	cause := errors.New("cipher: message authentication failed")
	wrapped := Wrap(Cryptographic, cause, "authentication failed")
	require.EqualError(t, wrapped, "cryptographic: authentication failed: cipher: message authentication failed")
	require.Equal(t, cause, wrapped.Unwrap())
}

func TestKindPredicates(t *testing.T) {
	require.True(t, IsConfiguration(NewConfiguration("no private key")))
	require.True(t, IsInvalidToken(NewInvalidToken("payload too short")))
	require.True(t, IsCryptographic(NewCryptographic("authentication failed")))

	require.False(t, IsInvalidToken(NewCryptographic("authentication failed")))
	require.False(t, IsCryptographic(errors.New("plain error")))
	require.False(t, IsKind(nil, InvalidToken))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := NewInvalidToken("key too short")
	outer := fmt.Errorf("decrypt token: %w", inner)

	require.True(t, IsInvalidToken(outer))
	require.True(t, errors.Is(outer, New(InvalidToken, "anything")))
	require.False(t, errors.Is(outer, New(Cryptographic, "anything")))
}
