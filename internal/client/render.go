// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Faint(true)
	strengthStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// strengthColors is indexed by the generator score (0-5).
var strengthColors = [...]lipgloss.Color{"9", "9", "208", "11", "10", "10"}

// listedRecord is one decrypted row of the list command.
type listedRecord struct {
	record    models.VaultRecord
	updatedAt time.Time
}

func renderEntries(records []listedRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.record.ID,
			r.record.Title,
			r.record.Username,
			r.record.URL,
			r.updatedAt.Local().Format(time.DateTime),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "TITLE", "USERNAME", "URL", "UPDATED").
		Rows(rows...).
		String()
}

func renderStrength(generated models.GeneratedPassword) string {
	style := strengthStyle
	if generated.Strength >= 0 && generated.Strength < len(strengthColors) {
		style = style.Foreground(strengthColors[generated.Strength])
	}

	return style.Render(fmt.Sprintf("strength: %s (%d/5)", generated.Label, generated.Strength))
}
