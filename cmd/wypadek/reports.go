package main

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkleczar/wypadek/internal/db"
	"github.com/jkleczar/wypadek/internal/report"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	tableCellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func reportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List saved reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeFn, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := store.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				cmd.Println("no saved reports")
				return nil
			}
			cmd.Print(reportsTable(list))
			return nil
		},
	}
}

func reportsTable(list []db.Summary) string {
	rows := [][]string{{"ID", "UPDATED", "TYPE", "INJURED", "NIP", "DATE"}}
	for _, s := range list {
		rows = append(rows, []string{
			s.ID,
			s.UpdatedAt.Format("2006-01-02 15:04"),
			typeLabel(s.ReportType),
			strings.TrimSpace(s.InjuredName + " " + s.InjuredSurname),
			s.NIP,
			s.AccidentDate,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		for i, cell := range row {
			padded := cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if r == 0 {
				b.WriteString(tableHeaderStyle.Render(tableCellStyle.Render(padded)))
			} else {
				b.WriteString(tableCellStyle.Render(padded))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func typeLabel(t report.Type) string {
	switch t {
	case report.TypeAccident:
		return "zawiadomienie"
	case report.TypeExplanation:
		return "wyjaśnienia"
	case report.TypeBoth:
		return "oba"
	default:
		return "-"
	}
}
