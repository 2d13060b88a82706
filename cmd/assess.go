package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/assess"
	"github.com/langkah-ekspor/exporo/internal/merge"
)

var assessUserID string

var assessCmd = &cobra.Command{
	Use:   "assess <country>",
	Short: "Run a one-shot export readiness assessment for a target country",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		country := env.Catalog.Resolve(strings.Join(args, " "))
		if country == "" {
			return eris.Errorf("assess: unknown target country %q", strings.Join(args, " "))
		}

		p, err := env.Store.LoadProfile(ctx, assessUserID)
		if err != nil {
			return err
		}

		info := env.Catalog.Info(country)
		result, err := env.Analyzer.Assess(ctx, p, country, assess.Market{
			Difficulty: info.Difficulty,
			MarketSize: info.MarketSize,
		})
		if err != nil {
			return err
		}

		fmt.Println(result.Reply)

		if result.Record != nil {
			merge.UpsertAssessment(p, *result.Record)
			if err := env.Store.SaveProfile(ctx, assessUserID, p); err != nil {
				zap.L().Warn("assessment save failed", zap.Error(err))
			}
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().StringVar(&assessUserID, "user", "local", "user id whose profile to assess")
	rootCmd.AddCommand(assessCmd)
}
