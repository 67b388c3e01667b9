// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PassphraseEnv names the environment variable read before prompting.
const PassphraseEnv = "GOPASS_PASSPHRASE"

// promptPassphrase reads the passphrase from PassphraseEnv, or from a
// hidden terminal prompt when the variable is unset.
type promptPassphrase struct {
	lookupEnv func(string) (string, bool)
	in        *os.File
	out       io.Writer
}

// NewPromptPassphrase returns the default [PassphraseSource]: the
// environment first, then the terminal attached to in.
func NewPromptPassphrase(in *os.File, out io.Writer) PassphraseSource {
	return &promptPassphrase{lookupEnv: os.LookupEnv, in: in, out: out}
}

func (p *promptPassphrase) Passphrase() ([]byte, error) {
	if value, ok := p.lookupEnv(PassphraseEnv); ok && value != "" {
		return []byte(value), nil
	}

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNoPassphrase
	}

	_, _ = fmt.Fprint(p.out, "Vault passphrase: ")
	passphrase, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	if len(passphrase) == 0 {
		return nil, ErrNoPassphrase
	}

	return passphrase, nil
}
