// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "github.com/atotto/clipboard"

type systemClipboard struct{}

// NewSystemClipboard returns a [Clipboard] backed by the OS clipboard
// (pbcopy, xclip/xsel/wl-copy or the Windows API).
func NewSystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
