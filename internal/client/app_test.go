// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/models"
)

// ─── fakes ───────────────────────────────────────────────────────────────────

// fakeAdapter keeps envelopes in memory the way the server would.
type fakeAdapter struct {
	entries   []models.VaultEntry
	nextID    int
	generated models.GeneratedPassword
	genOpts   []models.PasswordOptions
}

func (f *fakeAdapter) SetToken(string) {}
func (f *fakeAdapter) Token() string   { return "token" }

func (f *fakeAdapter) ListEnvelopes(context.Context) ([]models.VaultEntry, error) {
	return append([]models.VaultEntry(nil), f.entries...), nil
}

func (f *fakeAdapter) StoreEnvelope(_ context.Context, envelope string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("entry-%d", f.nextID)
	now := time.Now()
	f.entries = append([]models.VaultEntry{{ID: id, Envelope: envelope, CreatedAt: now, UpdatedAt: now}}, f.entries...)
	return id, nil
}

func (f *fakeAdapter) ReplaceEnvelope(_ context.Context, entryID, envelope string) (models.VaultEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == entryID {
			f.entries[i].Envelope = envelope
			f.entries[i].UpdatedAt = time.Now()
			return f.entries[i], nil
		}
	}
	return models.VaultEntry{}, adapter.ErrNotFound
}

func (f *fakeAdapter) DeleteEnvelope(_ context.Context, entryID string) error {
	for i := range f.entries {
		if f.entries[i].ID == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return adapter.ErrNotFound
}

func (f *fakeAdapter) GeneratePassword(_ context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	f.genOpts = append(f.genOpts, opts)
	return f.generated, nil
}

func (f *fakeAdapter) Version(context.Context) (string, error) { return "1.2.3", nil }

// staticPassphrase hands out copies of value and remembers them.
type staticPassphrase struct {
	value  string
	err    error
	issued [][]byte
}

func (s *staticPassphrase) Passphrase() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	b := []byte(s.value)
	s.issued = append(s.issued, b)
	return b, nil
}

// fakePicker answers with a fixed id and records what it was offered.
type fakePicker struct {
	id      string
	err     error
	offered []models.VaultRecord
}

func (p *fakePicker) Pick(records []models.VaultRecord) (string, error) {
	p.offered = records
	if p.err != nil {
		return "", p.err
	}
	return p.id, nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type testApp struct {
	app        *App
	server     *fakeAdapter
	passphrase *staticPassphrase
	clipboard  *fakeClipboard
	picker     *fakePicker
	out        *bytes.Buffer
	codec      crypto.EnvelopeCodec
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		server:     &fakeAdapter{generated: models.GeneratedPassword{Password: "G3nerated!pw", Strength: 4, Label: "Strong"}},
		passphrase: &staticPassphrase{value: "correct horse battery staple"},
		clipboard:  &fakeClipboard{},
		picker:     &fakePicker{},
		out:        &bytes.Buffer{},
		codec:      crypto.NewEnvelopeCodec(crypto.NewPBKDF2(crypto.LegacyIterations)),
	}
	ta.app = NewApp(ta.server, ta.codec, ta.passphrase, ta.clipboard, ta.picker, ta.out, logger.Nop())
	return ta
}

// run executes args through a fresh command tree.
func (ta *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	ta.out.Reset()

	cmd := NewRootCommand(ta.app)
	cmd.SetArgs(append([]string{}, args...))
	return cmd.ExecuteContext(context.Background())
}

func (ta *testApp) storedRecord(t *testing.T, id string) models.VaultRecord {
	t.Helper()
	for _, entry := range ta.server.entries {
		if entry.ID == id {
			envelope, err := models.ParseEnvelope(entry.Envelope)
			require.NoError(t, err)
			record, err := ta.codec.Decrypt(envelope, []byte(ta.passphrase.value))
			require.NoError(t, err)
			return record
		}
	}
	t.Fatalf("entry %s not stored", id)
	return models.VaultRecord{}
}

// ─── commands ────────────────────────────────────────────────────────────────

func TestApp_AddAndList(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "add", "--title", "Email", "--username", "alice@example.com", "--password", "hunter2", "--url", "https://mail.example.com"))
	assert.Contains(t, ta.out.String(), "Created entry-1")

	// the server only ever sees ciphertext
	require.Len(t, ta.server.entries, 1)
	assert.NotContains(t, ta.server.entries[0].Envelope, "hunter2")
	assert.NotContains(t, ta.server.entries[0].Envelope, "Email")

	record := ta.storedRecord(t, "entry-1")
	assert.Equal(t, "Email", record.Title)
	assert.Equal(t, "hunter2", record.Password)
	assert.Equal(t, "https://mail.example.com", record.URL)
	assert.Empty(t, record.ID)

	require.NoError(t, ta.run(t, "list"))
	out := ta.out.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "entry-1")
	assert.Contains(t, out, "alice@example.com")
	assert.NotContains(t, out, "hunter2")
}

func TestApp_AddShorthandFlags(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "add", "-t", "Email", "-u", "alice", "-p", "hunter2", "-n", "work"))

	record := ta.storedRecord(t, "entry-1")
	assert.Equal(t, models.VaultRecord{Title: "Email", Username: "alice", Password: "hunter2", Notes: "work"}, record)
}

func TestApp_AddRequiresTitle(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run(t, "add", "--title", "   ", "--password", "x")

	assert.ErrorIs(t, err, ErrUsage)
	assert.True(t, IsUsageError(err))
	assert.Empty(t, ta.server.entries)
}

func TestApp_AddWithGeneratedPassword(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "add", "--title", "Bank", "--generate", "24"))

	require.Len(t, ta.server.genOpts, 1)
	assert.Equal(t, 24, ta.server.genOpts[0].Length)
	assert.True(t, ta.server.genOpts[0].ExcludeLookAlikes)
	assert.Equal(t, "G3nerated!pw", ta.storedRecord(t, "entry-1").Password)
}

func TestApp_AddExplicitPasswordWinsOverGenerate(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "add", "-t", "Bank", "-g", "24", "-p", "mine"))

	assert.Empty(t, ta.server.genOpts)
	assert.Equal(t, "mine", ta.storedRecord(t, "entry-1").Password)
}

func TestApp_ListSkipsUndecryptable(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email"))
	ta.server.entries = append(ta.server.entries, models.VaultEntry{ID: "garbage", Envelope: "not-an-envelope"})

	ta.passphrase.value = "wrong passphrase"
	require.NoError(t, ta.run(t, "list"))

	assert.NotContains(t, ta.out.String(), "Email")
	assert.Contains(t, ta.out.String(), "Vault is empty")
	assert.Contains(t, ta.out.String(), "2 entries could not be decrypted")
}

func TestApp_ListEmptyVault(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "ls"))

	assert.Equal(t, "Vault is empty\n", ta.out.String())
}

func TestApp_ListWithQuery(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "-t", "Email", "-u", "alice@example.com", "--url", "https://mail.example.com"))
	require.NoError(t, ta.run(t, "add", "-t", "Bank", "-n", "PIN is in the drawer"))
	require.NoError(t, ta.run(t, "add", "-t", "Forum", "-u", "alice"))

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "title ignoring case",
			args:    []string{"list", "-q", "BANK"},
			want:    []string{"Bank"},
			notWant: []string{"Email", "Forum"},
		},
		{
			name:    "url",
			args:    []string{"list", "--query", "mail.example"},
			want:    []string{"Email"},
			notWant: []string{"Bank", "Forum"},
		},
		{
			name:    "notes are searched but not shown",
			args:    []string{"list", "-q", "drawer"},
			want:    []string{"Bank"},
			notWant: []string{"Email", "Forum", "drawer"},
		},
		{
			name:    "username matches several",
			args:    []string{"list", "-q", "Alice"},
			want:    []string{"Email", "Forum"},
			notWant: []string{"Bank"},
		},
		{
			name:    "no match",
			args:    []string{"list", "-q", "nothing"},
			want:    []string{`No entries match "nothing"`},
			notWant: []string{"Email", "Bank", "Forum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ta.run(t, tt.args...))

			out := ta.out.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func Test_matchesQuery(t *testing.T) {
	record := models.VaultRecord{
		Title:    "Email",
		Username: "alice@example.com",
		Password: "hunter2",
		URL:      "https://mail.example.com",
		Notes:    "Recovery codes in the safe",
	}

	tests := []struct {
		query string
		want  bool
	}{
		{query: "", want: true},
		{query: "email", want: true},
		{query: "ALICE", want: true},
		{query: "mail.example", want: true},
		{query: "recovery", want: true},
		{query: "hunter2", want: false},
		{query: "bank", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(record, tt.query))
		})
	}
}

func TestApp_Edit(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email", "--username", "alice", "--password", "hunter2"))
	before := ta.server.entries[0].Envelope

	require.NoError(t, ta.run(t, "edit", "entry-1", "--username", "bob"))
	assert.Contains(t, ta.out.String(), "Updated entry-1")

	record := ta.storedRecord(t, "entry-1")
	assert.Equal(t, "bob", record.Username)
	assert.Equal(t, "hunter2", record.Password, "untouched fields are kept")
	assert.NotEqual(t, before, ta.server.entries[0].Envelope)
}

func TestApp_EditClearsFieldSetToEmpty(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "-t", "Email", "-n", "old notes"))

	require.NoError(t, ta.run(t, "edit", "entry-1", "--notes", ""))

	assert.Empty(t, ta.storedRecord(t, "entry-1").Notes)
}

func TestApp_EditErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no id", args: []string{"edit", "--title", "x"}, wantErr: ErrUsage},
		{name: "two ids", args: []string{"edit", "entry-1", "entry-2", "--title", "x"}, wantErr: ErrUsage},
		{name: "nothing to change", args: []string{"edit", "entry-1"}, wantErr: ErrUsage},
		{name: "blank title", args: []string{"edit", "entry-1", "--title", " "}, wantErr: ErrUsage},
		{name: "unknown entry", args: []string{"edit", "entry-9", "--title", "x"}, wantErr: adapter.ErrNotFound},
		{name: "unknown flag", args: []string{"edit", "entry-1", "--colour", "red"}, wantErr: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			require.NoError(t, ta.run(t, "add", "--title", "Email"))

			assert.ErrorIs(t, ta.run(t, tt.args...), tt.wantErr)
		})
	}
}

func TestApp_EditWithWrongPassphrase(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email"))
	before := ta.server.entries[0].Envelope

	ta.passphrase.value = "wrong"
	err := ta.run(t, "edit", "entry-1", "--title", "Mail")

	assert.ErrorIs(t, err, crypto.ErrDecryptionFailure)
	assert.Equal(t, before, ta.server.entries[0].Envelope)
}

func TestApp_Remove(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email"))

	require.NoError(t, ta.run(t, "rm", "entry-1"))
	assert.Empty(t, ta.server.entries)

	assert.ErrorIs(t, ta.run(t, "delete", "entry-1"), adapter.ErrNotFound)
	assert.ErrorIs(t, ta.run(t, "rm"), ErrUsage)
}

func TestApp_Copy(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email", "--password", "hunter2"))
	require.NoError(t, ta.run(t, "add", "--title", "Note"))

	require.NoError(t, ta.run(t, "copy", "entry-1"))
	assert.Equal(t, "hunter2", ta.clipboard.text)
	assert.NotContains(t, ta.out.String(), "hunter2")
	assert.Empty(t, ta.picker.offered, "an explicit id skips the picker")

	assert.ErrorIs(t, ta.run(t, "cp", "entry-2"), ErrNothingToCopy)
	assert.ErrorIs(t, ta.run(t, "copy", "entry-9"), adapter.ErrNotFound)
	assert.ErrorIs(t, ta.run(t, "copy", "entry-1", "entry-2"), ErrUsage)

	ta.clipboard.err = errClipboardUnsupported
	assert.ErrorIs(t, ta.run(t, "copy", "entry-1"), errClipboardUnsupported)
}

func TestApp_CopyWithPicker(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "-t", "Email", "-u", "alice", "-p", "hunter2"))
	require.NoError(t, ta.run(t, "add", "-t", "Bank", "-p", "1234"))
	ta.server.entries = append(ta.server.entries, models.VaultEntry{ID: "garbage", Envelope: "not-an-envelope"})
	ta.picker.id = "entry-1"

	require.NoError(t, ta.run(t, "copy"))

	assert.Equal(t, "hunter2", ta.clipboard.text)
	require.Len(t, ta.picker.offered, 2, "undecryptable entries are not offered")
	assert.Equal(t, "entry-2", ta.picker.offered[0].ID)
	assert.Equal(t, "Bank", ta.picker.offered[0].Title)
	assert.Equal(t, "entry-1", ta.picker.offered[1].ID)
}

func TestApp_CopyWithPickerErrors(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		ta := newTestApp(t)
		require.NoError(t, ta.run(t, "add", "-t", "Email", "-p", "hunter2"))
		ta.picker.err = ErrPickCancelled

		assert.ErrorIs(t, ta.run(t, "copy"), ErrPickCancelled)
		assert.Empty(t, ta.clipboard.text)
	})

	t.Run("nothing decrypts", func(t *testing.T) {
		ta := newTestApp(t)
		require.NoError(t, ta.run(t, "add", "-t", "Email", "-p", "hunter2"))
		ta.passphrase.value = "wrong"

		assert.ErrorIs(t, ta.run(t, "copy"), ErrNothingToCopy)
		assert.Nil(t, ta.picker.offered)
	})
}

func TestApp_Generate(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "gen", "--length", "32", "--symbols=false", "--no-lookalikes"))

	require.Len(t, ta.server.genOpts, 1)
	assert.Equal(t, models.PasswordOptions{
		Length:            32,
		IncludeLetters:    true,
		IncludeNumbers:    true,
		IncludeSymbols:    false,
		ExcludeLookAlikes: true,
	}, ta.server.genOpts[0])

	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "G3nerated!pw", lines[0])
	assert.Contains(t, lines[1], "strength: Strong (4/5)")
}

func TestApp_GenerateDefaults(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "generate"))

	require.Len(t, ta.server.genOpts, 1)
	assert.Equal(t, models.PasswordOptions{
		Length:         20,
		IncludeLetters: true,
		IncludeNumbers: true,
		IncludeSymbols: true,
	}, ta.server.genOpts[0])
}

func TestApp_Version(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run(t, "version"))
	assert.Equal(t, "server version: 1.2.3\n", ta.out.String())
}

func TestApp_UsageAndUnknownCommand(t *testing.T) {
	ta := newTestApp(t)

	assert.ErrorIs(t, ta.run(t), ErrUsage)
	assert.Contains(t, ta.out.String(), "Usage:")

	require.NoError(t, ta.run(t, "help"))
	assert.Contains(t, ta.out.String(), "Available Commands:")
	assert.Contains(t, ta.out.String(), "copy")

	require.NoError(t, ta.run(t, "list", "--help"))
	assert.Contains(t, ta.out.String(), "--query")

	err := ta.run(t, "frobnicate")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.True(t, IsUsageError(err))

	err = ta.run(t, "list", "extra")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestApp_PassphraseIsWiped(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "add", "--title", "Email", "--password", "hunter2"))
	require.NoError(t, ta.run(t, "list"))
	require.NoError(t, ta.run(t, "copy", "entry-1"))

	require.Len(t, ta.passphrase.issued, 3)
	for _, buf := range ta.passphrase.issued {
		assert.Equal(t, make([]byte, len(buf)), buf)
	}
}

func TestApp_PassphraseErrorStoresNothing(t *testing.T) {
	ta := newTestApp(t)
	ta.passphrase.err = ErrNoPassphrase

	assert.ErrorIs(t, ta.run(t, "add", "--title", "Email"), ErrNoPassphrase)
	assert.Empty(t, ta.server.entries)
}

func TestApp_AdapterErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	unavailable := fmt.Errorf("%w: storage unavailable", adapter.ErrServerUnavailable)

	server.EXPECT().ListEnvelopes(gomock.Any()).Return(nil, unavailable).Times(2)
	server.EXPECT().StoreEnvelope(gomock.Any(), gomock.Any()).Return("", unavailable)

	app := NewApp(server, crypto.NewEnvelopeCodec(crypto.NewPBKDF2(crypto.LegacyIterations)),
		&staticPassphrase{value: "pw"}, &fakeClipboard{}, &fakePicker{}, &bytes.Buffer{}, logger.Nop())

	ctx := context.Background()
	assert.ErrorIs(t, app.Run(ctx, []string{"list"}), adapter.ErrServerUnavailable)
	assert.ErrorIs(t, app.Run(ctx, []string{"copy", "entry-1"}), adapter.ErrServerUnavailable)
	assert.ErrorIs(t, app.Run(ctx, []string{"add", "--title", "Email"}), adapter.ErrServerUnavailable)
}

func TestApp_RunWithoutArgsDoesNotReadProcessArgs(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(&fakeAdapter{}, crypto.NewEnvelopeCodec(crypto.NewPBKDF2(crypto.LegacyIterations)),
		&staticPassphrase{value: "pw"}, &fakeClipboard{}, &fakePicker{}, out, logger.Nop())

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.Contains(t, out.String(), "Usage:")
}

// ─── passphrase source ───────────────────────────────────────────────────────

func TestPromptPassphrase_FromEnv(t *testing.T) {
	p := &promptPassphrase{
		lookupEnv: func(key string) (string, bool) {
			assert.Equal(t, PassphraseEnv, key)
			return "from-env", true
		},
		in:  os.Stdin,
		out: &bytes.Buffer{},
	}

	got, err := p.Passphrase()
	require.NoError(t, err)
	assert.Equal(t, "from-env", string(got))
}

func TestPromptPassphrase_NoTerminal(t *testing.T) {
	in, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer in.Close()

	out := &bytes.Buffer{}
	p := &promptPassphrase{
		lookupEnv: func(string) (string, bool) { return "", false },
		in:        in,
		out:       out,
	}

	_, err = p.Passphrase()
	assert.ErrorIs(t, err, ErrNoPassphrase)
	assert.Empty(t, out.String())
}
