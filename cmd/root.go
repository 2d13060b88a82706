package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "exporo",
	Short: "Conversational export readiness assistant for Indonesian SMEs",
	Long:  "Chats with SME owners in Bahasa Indonesia, incrementally builds a structured business profile from the conversation, and runs scored export readiness assessments per target country.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
