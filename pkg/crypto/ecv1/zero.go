/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecv1

// Zero overwrites key material in place. Shared secrets and derived keys are
// scoped to a single decrypt call and must not outlive it.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
