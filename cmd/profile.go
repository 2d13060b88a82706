package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/model"
	"github.com/langkah-ekspor/exporo/internal/report"
)

var (
	profileUserID string
	profileOut    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and manage stored business profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.LoadProfile(ctx, profileUserID)
		if err != nil {
			return err
		}

		doc, err := report.JSONDocument(p)
		if err != nil {
			return err
		}
		fmt.Println(string(doc))

		c := chat.CheckCompleteness(p)
		fmt.Printf("\nCompleteness: %.0f%% (%d/%d)\n", c.Percentage, c.Completed, c.Total)
		if len(c.MissingFields) > 0 {
			fmt.Printf("Missing: %s\n", strings.Join(c.MissingFields, ", "))
		}
		return nil
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored profile to a file (json or xlsx by extension)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if profileOut == "" {
			return eris.New("profile: --out is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := st.LoadProfile(ctx, profileUserID)
		if err != nil {
			return err
		}

		switch strings.ToLower(filepath.Ext(profileOut)) {
		case ".json":
			doc, err := report.JSONDocument(p)
			if err != nil {
				return err
			}
			if err := os.WriteFile(profileOut, doc, 0o644); err != nil {
				return eris.Wrap(err, "profile: write export")
			}
		case ".xlsx":
			f, err := os.Create(profileOut)
			if err != nil {
				return eris.Wrap(err, "profile: create export")
			}
			defer f.Close()
			if err := report.Workbook(p, f); err != nil {
				return err
			}
		default:
			return eris.Errorf("profile: unsupported export extension %q", filepath.Ext(profileOut))
		}

		fmt.Printf("Wrote %s\n", profileOut)
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the stored profile to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveProfile(ctx, profileUserID, model.NewDefaultProfile()); err != nil {
			return err
		}
		fmt.Printf("Profile for %s reset.\n", profileUserID)
		return nil
	},
}

func init() {
	profileCmd.PersistentFlags().StringVar(&profileUserID, "user", "local", "user id")
	profileExportCmd.Flags().StringVar(&profileOut, "out", "", "output file (.json or .xlsx)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileResetCmd)
	rootCmd.AddCommand(profileCmd)
}
