package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jkleczar/wypadek/internal/chat"
	"github.com/jkleczar/wypadek/internal/report"
	"github.com/jkleczar/wypadek/internal/wizard"
)

func chatCmd() *cobra.Command {
	var resumeID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Fill in the report through a guided conversation",
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

			backend, err := newChatBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rec := report.New()
			if resumeID != "" {
				loaded, err := store.GetReport(cmd.Context(), resumeID)
				if err != nil {
					return err
				}
				if loaded != nil {
					rec = loaded
				}
			}

			session := wizard.NewSessionWith(store, rec)
			engine := chat.NewEngine(backend, rec)

			model := newChatModel(engine, session)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&resumeID, "resume", "", "resume a saved report by id")
	return cmd
}
