// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"sync"
	"testing"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Produced outside Go with PBKDF2-SHA256 (1000 iterations) and
// `openssl enc -aes-256-cbc`, salt = 00..0f, iv = 10..1f.
const legacyVectorCT = "lr757x/9hxiVUNwhh70A5krwbl9fAXXJptd3+LbbJn4zmlodogWnNReaSL2nzs7S2Xco+5BboEQQrEzlNn/Pqbfv1QZM9MyxxQQgtlh2geLN1rplZQhqH3+3w+jSaTsYSXVlXj3qZVvs/Xjh9W3Yng=="

var emailRecord = models.VaultRecord{
	Title:    "Email",
	Username: "a@b.com",
	Password: "hunter2",
	URL:      "https://mail.example",
	Notes:    "",
}

func newTestCodec(opts ...CodecOption) EnvelopeCodec {
	return NewEnvelopeCodec(NewPBKDF2(LegacyIterations), opts...)
}

func sequentialBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec()

	records := []models.VaultRecord{
		emailRecord,
		{Title: "only title"},
		{Title: "unicode ✓", Username: "юзер", Password: "p@ss\"word\\", URL: "https://x.y/?a=b&c=d", Notes: "line1\nline2"},
		{Title: "long", Notes: string(bytes.Repeat([]byte("n"), 4096))},
	}

	for _, record := range records {
		t.Run(record.Title, func(t *testing.T) {
			envelope, err := codec.Encrypt(record, []byte("correct-horse-battery"))
			require.NoError(t, err)

			decrypted, err := codec.Decrypt(envelope, []byte("correct-horse-battery"))
			require.NoError(t, err)
			assert.Equal(t, record, decrypted)
		})
	}
}

func TestCodec_RoundTripWithDefaultWorkFactor(t *testing.T) {
	codec := NewEnvelopeCodec(NewKDF())

	envelope, err := codec.Encrypt(emailRecord, []byte("correct-horse-battery"))
	require.NoError(t, err)

	decrypted, err := codec.Decrypt(envelope, []byte("correct-horse-battery"))
	require.NoError(t, err)
	assert.Equal(t, emailRecord, decrypted)
}

func TestCodec_WrongPassphrase(t *testing.T) {
	codec := newTestCodec()

	envelope, err := codec.Encrypt(emailRecord, []byte("correct-horse-battery"))
	require.NoError(t, err)

	_, err = codec.Decrypt(envelope, []byte("wrong-horse"))
	assert.ErrorIs(t, err, ErrDecryptionFailure)
}

func TestCodec_WrongPassphraseManyVectors(t *testing.T) {
	codec := newTestCodec()

	for i := 0; i < 50; i++ {
		record := models.VaultRecord{Title: "item", Password: string(rune('a' + i%26))}
		envelope, err := codec.Encrypt(record, []byte("passphrase-one"))
		require.NoError(t, err)

		_, err = codec.Decrypt(envelope, []byte("passphrase-two"))
		require.ErrorIs(t, err, ErrDecryptionFailure)
	}
}

func TestCodec_EnvelopesAreNotDeterministic(t *testing.T) {
	codec := newTestCodec()

	e1, err := codec.Encrypt(emailRecord, []byte("p"))
	require.NoError(t, err)
	e2, err := codec.Encrypt(emailRecord, []byte("p"))
	require.NoError(t, err)

	assert.NotEqual(t, e1.Salt, e2.Salt)
	assert.NotEqual(t, e1.IV, e2.IV)
	assert.NotEqual(t, e1.Ciphertext, e2.Ciphertext)
	assert.Len(t, e1.Salt, SaltSize)
	assert.Len(t, e1.IV, IVSize)
}

func TestCodec_IDIsNotEncrypted(t *testing.T) {
	codec := newTestCodec()

	withID := emailRecord
	withID.ID = "0123456789abcdef01234567"

	envelope, err := codec.Encrypt(withID, []byte("p"))
	require.NoError(t, err)

	decrypted, err := codec.Decrypt(envelope, []byte("p"))
	require.NoError(t, err)
	assert.Empty(t, decrypted.ID)
}

func TestCodec_KnownAnswerEncrypt(t *testing.T) {
	codec := newTestCodec(WithRandom(bytes.NewReader(sequentialBytes(32))))

	envelope, err := codec.Encrypt(emailRecord, []byte("correct-horse-battery"))
	require.NoError(t, err)

	assert.Equal(t, sequentialBytes(16), envelope.Salt)
	assert.Equal(t, sequentialBytes(32)[16:], envelope.IV)
	assert.Equal(t, legacyVectorCT, base64.StdEncoding.EncodeToString(envelope.Ciphertext))
}

func TestCodec_DecryptsForeignEnvelope(t *testing.T) {
	wire := `{"ct":"` + legacyVectorCT + `","iv":"101112131415161718191a1b1c1d1e1f","s":"000102030405060708090a0b0c0d0e0f"}`

	envelope, err := models.ParseEnvelope(wire)
	require.NoError(t, err)

	record, err := newTestCodec().Decrypt(envelope, []byte("correct-horse-battery"))
	require.NoError(t, err)
	assert.Equal(t, emailRecord, record)

	_, err = NewEnvelopeCodec(NewKDF()).Decrypt(envelope, []byte("correct-horse-battery"))
	assert.ErrorIs(t, err, ErrDecryptionFailure, "work factor is part of the key")
}

func TestCodec_CorruptedEnvelope(t *testing.T) {
	codec := newTestCodec()

	valid, err := codec.Encrypt(emailRecord, []byte("p"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(e models.Envelope) models.Envelope
	}{
		{
			name: "flipped last ciphertext byte",
			mutate: func(e models.Envelope) models.Envelope {
				ct := bytes.Clone(e.Ciphertext)
				ct[len(ct)-1] ^= 0xFF
				e.Ciphertext = ct
				return e
			},
		},
		{
			name: "truncated ciphertext",
			mutate: func(e models.Envelope) models.Envelope {
				e.Ciphertext = e.Ciphertext[:len(e.Ciphertext)-3]
				return e
			},
		},
		{
			name: "empty ciphertext",
			mutate: func(e models.Envelope) models.Envelope {
				e.Ciphertext = nil
				return e
			},
		},
		{
			name: "short salt",
			mutate: func(e models.Envelope) models.Envelope {
				e.Salt = e.Salt[:4]
				return e
			},
		},
		{
			name: "short iv",
			mutate: func(e models.Envelope) models.Envelope {
				e.IV = e.IV[:4]
				return e
			},
		},
		{
			name: "foreign salt",
			mutate: func(e models.Envelope) models.Envelope {
				e.Salt = bytes.Repeat([]byte{0x42}, SaltSize)
				return e
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decrypt(tt.mutate(valid), []byte("p"))
			assert.ErrorIs(t, err, ErrDecryptionFailure)
		})
	}
}

func TestCodec_RandomSourceFailure(t *testing.T) {
	codec := newTestCodec(WithRandom(failingReader{}))

	_, err := codec.Encrypt(emailRecord, []byte("p"))
	assert.ErrorIs(t, err, ErrRandomSource)
}

func TestCodec_ConcurrentEncryptUsesDistinctSalts(t *testing.T) {
	codec := newTestCodec()

	const n = 16
	salts := make([][]byte, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			envelope, err := codec.Encrypt(emailRecord, []byte("p"))
			if err == nil {
				salts[i] = envelope.Salt
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, salt := range salts {
		require.NotNil(t, salt)
		seen[string(salt)] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestPKCS7(t *testing.T) {
	for size := 0; size <= 33; size++ {
		data := bytes.Repeat([]byte{0x7F}, size)

		padded := pkcs7Pad(data, 16)
		require.Zero(t, len(padded)%16)
		require.Greater(t, len(padded), size)

		unpadded, ok := pkcs7Unpad(padded, 16)
		require.True(t, ok)
		assert.Equal(t, data, unpadded)
	}

	_, ok := pkcs7Unpad(append(bytes.Repeat([]byte{0x01}, 15), 0x00), 16)
	assert.False(t, ok, "zero pad length")

	_, ok = pkcs7Unpad(append(bytes.Repeat([]byte{0x01}, 15), 0x11), 16)
	assert.False(t, ok, "pad length above block size")

	_, ok = pkcs7Unpad(append(bytes.Repeat([]byte{0x01}, 14), 0x03, 0x02), 16)
	assert.False(t, ok, "inconsistent pad bytes")
}
