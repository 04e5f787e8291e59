package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jkleczar/wypadek/internal/chat"
	"github.com/jkleczar/wypadek/internal/web"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the report API server",
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

			newBackend := func() chat.Backend {
				backend, berr := newChatBackend(cmd.Context(), cfg)
				if berr != nil {
					log.Error().Err(berr).Msg("chat backend unavailable")
					return nil
				}
				return backend
			}
			// Probe once so a misconfigured backend fails at startup.
			if _, err := newChatBackend(cmd.Context(), cfg); err != nil {
				return err
			}

			server, err := web.NewServer(store, newBackend)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.HTTP.Addr
			}
			httpServer := &http.Server{
				Addr:         addr,
				Handler:      server.Routes(),
				ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
				WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
			}
			fmt.Printf("Listening on http://localhost%s\n", addr)
			return httpServer.ListenAndServe()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	return cmd
}
