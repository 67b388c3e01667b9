// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/MKhiriev/go-pass-vault/models"
)

type pickerKeyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	quit  key.Binding
}

var pickerKeys = pickerKeyMap{
	up:    key.NewBinding(key.WithKeys("up", "k")),
	down:  key.NewBinding(key.WithKeys("down", "j")),
	enter: key.NewBinding(key.WithKeys("enter")),
	quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// pickerModel is a one-screen list that ends with the chosen entry id or
// with quit set.
type pickerModel struct {
	records []models.VaultRecord
	idx     int
	chosen  string
	quit    bool
}

func newPickerModel(records []models.VaultRecord) pickerModel {
	return pickerModel{records: records}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, pickerKeys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, pickerKeys.down):
		if m.idx < len(m.records)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, pickerKeys.enter):
		if len(m.records) > 0 {
			m.chosen = m.records[m.idx].ID
		}
		return m, tea.Quit
	case key.Matches(keyMsg, pickerKeys.quit):
		m.quit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString("Copy the password of:\n\n")

	for i, record := range m.records {
		line := record.Title
		if record.Username != "" {
			line += " (" + record.Username + ")"
		}
		if i == m.idx {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("up/down move  enter copy  q cancel") + "\n")
	return b.String()
}

// terminalPicker runs pickerModel on the terminal attached to in.
type terminalPicker struct {
	in  *os.File
	out io.Writer
}

// NewTerminalPicker returns the default [Picker]. It draws on out, which
// should not be the stream command output goes to.
func NewTerminalPicker(in *os.File, out io.Writer) Picker {
	return &terminalPicker{in: in, out: out}
}

func (p *terminalPicker) Pick(records []models.VaultRecord) (string, error) {
	if !term.IsTerminal(int(p.in.Fd())) {
		return "", fmt.Errorf("%w: an entry id is required outside a terminal", ErrUsage)
	}

	finalModel, err := tea.NewProgram(newPickerModel(records), tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	result, ok := finalModel.(pickerModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.quit || result.chosen == "" {
		return "", ErrPickCancelled
	}

	return result.chosen, nil
}
