package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jkleczar/wypadek/internal/logging"
)

var (
	cfgFile string
	debug   bool
	rootCmd = &cobra.Command{
		Use:   "wypadek",
		Short: "wypadek prepares workplace accident reports for ZUS",
		Long: `wypadek guides a sole trader through reporting a workplace accident:
a conversational intake, a completeness check against ZUS requirements,
and document export ready for signing.`,
	}
)

// Execute runs the root command.
func Execute() error {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", filepath.Join(".wypadek", "config.json"), "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("bind config flag: %w", err)
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// .env keeps GEMINI_API_KEY and CEIDG_TOKEN out of the config file.
		_ = godotenv.Load()
		logging.Init(debug)
	}
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(reportsCmd())
	rootCmd.AddCommand(analyzeCmd())
	return rootCmd.Execute()
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = filepath.Join(".wypadek", "config.json")
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
