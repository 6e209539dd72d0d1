package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/appdeck/internal/state"
)

// FetchError reports a failed headless fetch with the message the UI would
// have shown.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// writeList renders a completed snapshot for --once mode.
func writeList(w io.Writer, snap state.Snapshot, baseURL string) error {
	if snap.HasError() {
		return &FetchError{Message: snap.Error}
	}
	if len(snap.Records) == 0 {
		_, err := fmt.Fprintln(w, "No apps found")
		return err
	}

	rows := make([][]string, 0, len(snap.Records))
	for _, r := range snap.Records {
		rows = append(rows, []string{r.ID, r.Name, r.ImageURL(baseURL)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "IMAGE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
