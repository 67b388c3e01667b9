// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type App struct {
	adapter    adapter.ServerAdapter
	codec      crypto.EnvelopeCodec
	passphrase PassphraseSource
	clipboard  Clipboard
	picker     Picker

	out    io.Writer
	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, codec crypto.EnvelopeCodec, passphrase PassphraseSource, clipboard Clipboard, picker Picker, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:    serverAdapter,
		codec:      codec,
		passphrase: passphrase,
		clipboard:  clipboard,
		picker:     picker,
		out:        out,
		logger:     logger,
	}
}

// Run parses args with the command tree from [NewRootCommand] and executes
// the selected command.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := NewRootCommand(a)
	// a nil slice would make cobra fall back to os.Args
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(ctx)
}

// recordPatch carries the record fields given on the command line. A nil
// field is left unchanged; Generate > 0 asks the server for a password of
// that length when Password is not set.
type recordPatch struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Notes    *string
	Generate int
}

func (p recordPatch) empty() bool {
	return p.Title == nil && p.Username == nil && p.Password == nil &&
		p.URL == nil && p.Notes == nil && p.Generate <= 0
}

func (p recordPatch) apply(record *models.VaultRecord) {
	for _, f := range []struct {
		value *string
		field *string
	}{
		{p.Title, &record.Title},
		{p.Username, &record.Username},
		{p.Password, &record.Password},
		{p.URL, &record.URL},
		{p.Notes, &record.Notes},
	} {
		if f.value != nil {
			*f.field = *f.value
		}
	}
}

func (a *App) list(ctx context.Context, query string) error {
	entries, err := a.adapter.ListEnvelopes(ctx)
	if err != nil {
		return err
	}

	return a.withPassphrase(func(passphrase []byte) error {
		var (
			records []listedRecord
			skipped int
		)
		for _, entry := range entries {
			record, err := a.decrypt(entry, passphrase)
			if err != nil {
				a.logger.Warn().Err(err).Str("func", "App.list").Str("entry_id", entry.ID).Msg("skipping entry")
				skipped++
				continue
			}
			if !matchesQuery(record, query) {
				continue
			}
			records = append(records, listedRecord{record: record, updatedAt: entry.UpdatedAt})
		}

		switch {
		case len(records) > 0:
			_, _ = fmt.Fprintln(a.out, renderEntries(records))
		case query != "":
			_, _ = fmt.Fprintf(a.out, "No entries match %q\n", query)
		default:
			_, _ = fmt.Fprintln(a.out, "Vault is empty")
		}

		if skipped > 0 {
			_, _ = fmt.Fprintf(a.out, "%d entries could not be decrypted with this passphrase\n", skipped)
		}
		return nil
	})
}

// matchesQuery reports whether query occurs, ignoring case, in the title,
// username, url or notes of record. An empty query matches everything.
func matchesQuery(record models.VaultRecord, query string) bool {
	if query == "" {
		return true
	}

	query = strings.ToLower(query)
	for _, field := range []string{record.Title, record.Username, record.URL, record.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (a *App) add(ctx context.Context, patch recordPatch) error {
	var record models.VaultRecord
	patch.apply(&record)
	if !record.HasTitle() {
		return fmt.Errorf("%w: --title is required", ErrUsage)
	}
	if err := a.fillGenerated(ctx, &record, patch); err != nil {
		return err
	}

	return a.withPassphrase(func(passphrase []byte) error {
		wire, err := a.encrypt(record, passphrase)
		if err != nil {
			return err
		}

		id, err := a.adapter.StoreEnvelope(ctx, wire)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.out, "Created %s\n", id)
		return nil
	})
}

func (a *App) edit(ctx context.Context, id string, patch recordPatch) error {
	if patch.empty() {
		return fmt.Errorf("%w: nothing to change", ErrUsage)
	}

	entry, err := a.findEntry(ctx, id)
	if err != nil {
		return err
	}

	return a.withPassphrase(func(passphrase []byte) error {
		record, err := a.decrypt(entry, passphrase)
		if err != nil {
			return err
		}

		patch.apply(&record)
		if err = a.fillGenerated(ctx, &record, patch); err != nil {
			return err
		}
		if !record.HasTitle() {
			return fmt.Errorf("%w: title must not be empty", ErrUsage)
		}

		wire, err := a.encrypt(record.WithoutID(), passphrase)
		if err != nil {
			return err
		}
		if _, err = a.adapter.ReplaceEnvelope(ctx, id, wire); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.out, "Updated %s\n", id)
		return nil
	})
}

// fillGenerated replaces the password with a generated one when the patch
// asks for it and no explicit password was given.
func (a *App) fillGenerated(ctx context.Context, record *models.VaultRecord, patch recordPatch) error {
	if patch.Generate <= 0 || patch.Password != nil {
		return nil
	}

	generated, err := a.adapter.GeneratePassword(ctx, defaultPasswordOptions(patch.Generate))
	if err != nil {
		return err
	}
	record.Password = generated.Password
	return nil
}

func (a *App) remove(ctx context.Context, id string) error {
	if err := a.adapter.DeleteEnvelope(ctx, id); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

func (a *App) generate(ctx context.Context, opts models.PasswordOptions) error {
	generated, err := a.adapter.GeneratePassword(ctx, opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out, generated.Password)
	_, _ = fmt.Fprintln(a.out, renderStrength(generated))
	return nil
}

// copy puts the password of entry id on the clipboard. Without an id the
// entries are decrypted and offered in the interactive picker.
func (a *App) copy(ctx context.Context, id string) error {
	entries, err := a.adapter.ListEnvelopes(ctx)
	if err != nil {
		return err
	}

	return a.withPassphrase(func(passphrase []byte) error {
		if id == "" {
			picked, err := a.pick(entries, passphrase)
			if err != nil {
				return err
			}
			id = picked
		}

		entry, ok := entryByID(entries, id)
		if !ok {
			return fmt.Errorf("%w: %s", adapter.ErrNotFound, id)
		}

		record, err := a.decrypt(entry, passphrase)
		if err != nil {
			return err
		}
		if record.Password == "" {
			return ErrNothingToCopy
		}

		if err = a.clipboard.WriteAll(record.Password); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}

		_, _ = fmt.Fprintf(a.out, "Password of %q copied to clipboard\n", record.Title)
		return nil
	})
}

// pick decrypts what it can and lets the user choose one entry.
func (a *App) pick(entries []models.VaultEntry, passphrase []byte) (string, error) {
	records := make([]models.VaultRecord, 0, len(entries))
	for _, entry := range entries {
		record, err := a.decrypt(entry, passphrase)
		if err != nil {
			a.logger.Warn().Err(err).Str("func", "App.pick").Str("entry_id", entry.ID).Msg("skipping entry")
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return "", ErrNothingToCopy
	}

	return a.picker.Pick(records)
}

func (a *App) version(ctx context.Context) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.out, "server version: %s\n", v)
	return nil
}

// withPassphrase reads the passphrase, runs fn and wipes the buffer.
func (a *App) withPassphrase(fn func(passphrase []byte) error) error {
	passphrase, err := a.passphrase.Passphrase()
	if err != nil {
		return err
	}
	defer wipe(passphrase)

	return fn(passphrase)
}

func (a *App) encrypt(record models.VaultRecord, passphrase []byte) (string, error) {
	envelope, err := a.codec.Encrypt(record, passphrase)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}
	return envelope.Encode()
}

// decrypt opens entry locally. A malformed envelope is reported like any
// other undecryptable entry.
func (a *App) decrypt(entry models.VaultEntry, passphrase []byte) (models.VaultRecord, error) {
	envelope, err := models.ParseEnvelope(entry.Envelope)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: %w", crypto.ErrDecryptionFailure, err)
	}

	record, err := a.codec.Decrypt(envelope, passphrase)
	if err != nil {
		return models.VaultRecord{}, err
	}
	record.ID = entry.ID

	return record, nil
}

// findEntry looks id up in the owner's envelope list.
func (a *App) findEntry(ctx context.Context, id string) (models.VaultEntry, error) {
	entries, err := a.adapter.ListEnvelopes(ctx)
	if err != nil {
		return models.VaultEntry{}, err
	}

	entry, ok := entryByID(entries, id)
	if !ok {
		return models.VaultEntry{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, id)
	}
	return entry, nil
}

func entryByID(entries []models.VaultEntry, id string) (models.VaultEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return models.VaultEntry{}, false
}

func defaultPasswordOptions(length int) models.PasswordOptions {
	return models.PasswordOptions{
		Length:            length,
		IncludeLetters:    true,
		IncludeNumbers:    true,
		IncludeSymbols:    true,
		ExcludeLookAlikes: true,
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// IsUsageError reports whether err should be answered with the usage text.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage) || errors.Is(err, ErrUnknownCommand)
}
