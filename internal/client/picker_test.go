// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/models"
)

var pickerRecords = []models.VaultRecord{
	{ID: "entry-1", Title: "Email", Username: "alice"},
	{ID: "entry-2", Title: "Bank"},
	{ID: "entry-3", Title: "Forum"},
}

func sendKeys(t *testing.T, m pickerModel, msgs ...tea.KeyMsg) (pickerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(pickerModel)
		require.True(t, ok)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPickerModel_MovesAndChooses(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{name: "first entry", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, want: "entry-1"},
		{name: "arrow down", keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, want: "entry-2"},
		{name: "vim keys", keys: []tea.KeyMsg{runeKey('j'), runeKey('j'), runeKey('k'), {Type: tea.KeyEnter}}, want: "entry-2"},
		{name: "stops at the bottom", keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, want: "entry-3"},
		{name: "stops at the top", keys: []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}}, want: "entry-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := sendKeys(t, newPickerModel(pickerRecords), tt.keys...)

			assert.Equal(t, tt.want, m.chosen)
			assert.False(t, m.quit)
			assert.True(t, isQuit(cmd))
		})
	}
}

func TestPickerModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m, cmd := sendKeys(t, newPickerModel(pickerRecords), tea.KeyMsg{Type: tea.KeyDown}, msg)

			assert.True(t, m.quit)
			assert.Empty(t, m.chosen)
			assert.True(t, isQuit(cmd))
		})
	}
}

func TestPickerModel_IgnoresOtherMessages(t *testing.T) {
	m := newPickerModel(pickerRecords)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.Equal(t, m, next)
	assert.Nil(t, m.Init())
}

func TestPickerModel_View(t *testing.T) {
	m, _ := sendKeys(t, newPickerModel(pickerRecords), tea.KeyMsg{Type: tea.KeyDown})

	view := m.View()

	assert.Contains(t, view, "Email (alice)")
	assert.Contains(t, view, "> Bank")
	assert.Contains(t, view, "  Forum")
	assert.Contains(t, view, "enter copy")
}

func TestTerminalPicker_NoTerminal(t *testing.T) {
	in, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer in.Close()

	_, err = NewTerminalPicker(in, os.Stderr).Pick(pickerRecords)

	assert.ErrorIs(t, err, ErrUsage)
}
