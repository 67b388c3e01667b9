// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPBKDF2_KnownAnswer(t *testing.T) {
	kdf := NewPBKDF2(LegacyIterations)

	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}

	key, err := kdf.Derive([]byte("correct-horse-battery"), salt)
	require.NoError(t, err)

	assert.Equal(t, "cf5fdec344c008be6d93cce0b208169c5b8602a3636974c05ecbf49e7817c82b", hex.EncodeToString(key))
}

func TestPBKDF2_DeterministicForSameInputs(t *testing.T) {
	kdf := NewPBKDF2(LegacyIterations)
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1, err := kdf.Derive([]byte("same passphrase"), salt)
	require.NoError(t, err)
	k2, err := kdf.Derive([]byte("same passphrase"), salt)
	require.NoError(t, err)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestPBKDF2_DifferentSaltProducesDifferentKey(t *testing.T) {
	kdf := NewPBKDF2(LegacyIterations)

	k1, err := kdf.Derive([]byte("same passphrase"), bytes.Repeat([]byte{0x01}, SaltSize))
	require.NoError(t, err)
	k2, err := kdf.Derive([]byte("same passphrase"), bytes.Repeat([]byte{0x02}, SaltSize))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestPBKDF2_RejectsBadSaltLength(t *testing.T) {
	kdf := NewPBKDF2(LegacyIterations)

	for _, size := range []int{0, 8, 15, 17, 32} {
		_, err := kdf.Derive([]byte("p"), make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidSaltLength, "salt size %d", size)
	}
}

func TestNewPBKDF2_Iterations(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewKDF().Iterations())
	assert.Equal(t, DefaultIterations, NewPBKDF2(0).Iterations())
	assert.Equal(t, DefaultIterations, NewPBKDF2(-5).Iterations())
	assert.Equal(t, 1234, NewPBKDF2(1234).Iterations())
}
