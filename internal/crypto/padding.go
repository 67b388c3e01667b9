// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "crypto/subtle"

// pkcs7Pad appends 1..blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize

	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}

	return padded
}

// pkcs7Unpad strips and verifies PKCS#7 padding. The pad bytes are compared
// without early exit.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	n := len(data)
	if n == 0 || n%blockSize != 0 {
		return nil, false
	}

	padLen := int(data[n-1])
	if padLen == 0 || padLen > blockSize {
		return nil, false
	}

	good := 1
	for i := n - padLen; i < n; i++ {
		good &= subtle.ConstantTimeByteEq(data[i], byte(padLen))
	}
	if good != 1 {
		return nil, false
	}

	return data[:n-padLen], true
}
