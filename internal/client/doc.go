// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the go-pass-vault command line client.
//
// Commands are built with cobra (see [NewRootCommand]). Records are
// encrypted and decrypted locally with the same envelope codec the server
// uses, so the server only ever stores and returns envelopes. The passphrase
// is read from GOPASS_PASSPHRASE or a hidden terminal prompt and is wiped
// when a command finishes.
//
// Output is styled with lipgloss; copy without an entry id opens a
// bubbletea picker on the terminal.
package client
