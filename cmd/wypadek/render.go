package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jkleczar/wypadek/internal/render"
	"github.com/jkleczar/wypadek/internal/report"
)

func renderCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "render <report-id>",
		Short: "Render a saved report as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeFn, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			rec, err := store.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("report %s not found", args[0])
			}
			report.Analyze(rec).WriteBack(rec)

			switch format {
			case "text", "txt":
				return emit(cmd, out, []byte(render.Text(rec)))
			case "md", "markdown":
				doc := render.Markdown(rec)
				if out != "" {
					return emit(cmd, out, []byte(doc))
				}
				pretty, err := glamour.Render(doc, "dark")
				if err != nil {
					pretty = doc
				}
				cmd.Print(pretty)
				return nil
			case "pdf":
				data, err := render.PDF(rec)
				if err != nil {
					return err
				}
				if out == "" {
					out = render.FileName(rec)
				}
				return emit(cmd, out, data)
			default:
				return fmt.Errorf("unknown format %q (text, md, pdf)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, md or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func emit(cmd *cobra.Command, out string, data []byte) error {
	if out == "" {
		cmd.Print(string(data))
		return nil
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", out)
	return nil
}
