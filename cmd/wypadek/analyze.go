package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkleczar/wypadek/internal/report"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

func analyzeCmd() *cobra.Command {
	var fromFile string
	cmd := &cobra.Command{
		Use:   "analyze [report-id]",
		Short: "Check a report for missing elements and required documents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec *report.Record
			switch {
			case fromFile != "":
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return err
				}
				rec = report.New()
				if err := json.Unmarshal(data, rec); err != nil {
					return fmt.Errorf("parse %s: %w", fromFile, err)
				}
			case len(args) == 1:
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				store, closeFn, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer closeFn()
				rec, err = store.GetReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if rec == nil {
					return fmt.Errorf("report %s not found", args[0])
				}
			default:
				return fmt.Errorf("pass a report id or --file")
			}

			analysis := report.Analyze(rec)
			if analysis.Complete() {
				cmd.Println(okStyle.Render(fmt.Sprintf("Raport kompletny (wypełnienie %d%%)", report.Progress(rec))))
			} else {
				cmd.Println(warnStyle.Render(fmt.Sprintf("Raport niekompletny (wypełnienie %d%%)", report.Progress(rec))))
			}
			printSection(cmd, "Brakujące elementy", analysis.MissingElements)
			printSection(cmd, "Wymagane dokumenty", analysis.RequiredDocuments)
			printSection(cmd, "Zalecenia", analysis.Recommendations)
			return nil
		},
	}
	cmd.Flags().StringVar(&fromFile, "file", "", "analyze a report from a JSON file instead of the database")
	return cmd
}

func printSection(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Println()
	cmd.Println(title + ":")
	for _, item := range items {
		cmd.Println("  - " + item)
	}
}
