package cmd

import (
	"fmt"

	"scene-toolkit/feature/assets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manage manifests stored in the database",
}

// manifestImportCmd represents the manifest import command
var manifestImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a manifest file and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readManifest(args[0])
		if err != nil {
			return err
		}

		e, err := setup(true)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.store().Save(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to store manifest: %w", err)
		}
		e.logger.Info("Manifest stored", zap.String("manifest", m.Name), zap.Int("total", m.Assets.Total()))
		return nil
	},
}

// manifestListCmd represents the manifest list command
var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manifests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(true)
		if err != nil {
			return err
		}
		defer e.close()

		names, err := e.store().List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

// manifestShowCmd represents the manifest show command
var manifestShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "View a stored manifest and whether its sources exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(true)
		if err != nil {
			return err
		}
		defer e.close()

		m, err := e.store().Load(ctx, args[0])
		if err != nil {
			return err
		}
		report, err := newIntegrityService(e).CheckManifest(ctx, m)
		if err != nil {
			return err
		}

		missing := make(map[string]bool, len(report.Missing))
		for _, mi := range report.Missing {
			missing[string(mi.Kind)+"/"+mi.ID] = true
		}

		fmt.Println("\n--- Manifest Detail View ---")
		fmt.Printf("Name:           %s\n", m.Name)
		if m.Description != "" {
			fmt.Printf("Description:    %s\n", m.Description)
		}
		fmt.Printf("Assets:         %d\n", m.Assets.Total())
		fmt.Println("-----------------------------")
		m.Assets.Each(func(kind assets.Kind, it assets.Item) {
			mark := "ok"
			if missing[string(kind)+"/"+it.ID] {
				mark = "MISSING"
			}
			fmt.Printf("%-10s %-24s %-8s %s\n", kind, it.ID, mark, it.URL)
		})

		statusColor := "\033[32m" // Green
		status := "OK"
		if len(report.Missing) > 0 || len(report.Errors) > 0 {
			statusColor, status = "\033[31m", "FAIL"
		} else if len(report.Skipped) > 0 {
			statusColor, status = "\033[33m", "WARNING"
		}
		resetColor := "\033[0m"

		fmt.Println("-----------------------------")
		fmt.Printf("Integrity:      %s%s%s\n", statusColor, status, resetColor)
		for _, msg := range report.Errors {
			fmt.Printf("- %s\n", msg)
		}
		return nil
	},
}

// manifestDeleteCmd represents the manifest delete command
var manifestDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(true)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.store().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		e.logger.Info("Manifest deleted", zap.String("manifest", args[0]))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestImportCmd, manifestListCmd, manifestShowCmd, manifestDeleteCmd)
}
