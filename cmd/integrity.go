package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"scene-toolkit/feature/integrity"
	"scene-toolkit/feature/integrity/checks"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool
var fileFlag string

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the asset sources",
	Long:  `Checks the storage bucket folder structure, the sources of every stored manifest and the manifest database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// manifestsCmd represents the integrity manifests command
var manifestsCmd = &cobra.Command{
	Use:   "manifests [name]",
	Short: "Check that every asset of the stored manifests can be found",
	Long: `Without arguments checks every stored manifest. With a name checks only that manifest.
With --file checks a manifest file instead and needs no database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		e, err := setup(fileFlag == "")
		if err != nil {
			return err
		}
		defer e.close()

		svc := newIntegrityService(e)

		var reports []*checks.ManifestReport
		switch {
		case fileFlag != "":
			m, err := readManifest(fileFlag)
			if err != nil {
				return err
			}
			report, err := svc.CheckManifest(ctx, m)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		case len(args) == 1:
			report, err := svc.CheckStoredManifest(ctx, args[0])
			if err != nil {
				return fmt.Errorf("manifest check failed: %w", err)
			}
			reports = append(reports, report)
		default:
			reports, err = svc.CheckStoredManifests(ctx)
			if err != nil {
				return fmt.Errorf("manifest check failed: %w", err)
			}
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			filename := fmt.Sprintf("integrity_manifests_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			e.logger.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		var checked, missing, skipped int
		fmt.Println("\n=== Manifest Integrity Metrics ===")
		for _, r := range reports {
			checked += r.Checked
			missing += len(r.Missing)
			skipped += len(r.Skipped)
			fmt.Printf("%-24s checked %d, missing %d, skipped %d\n", r.Manifest, r.Checked, len(r.Missing), len(r.Skipped))
			for _, m := range r.Missing {
				fmt.Printf("  missing %s %s (%s)\n", m.Kind, m.ID, m.URL)
			}
		}
		fmt.Printf("Manifests: %d\n", len(reports))
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

		e.logger.Info("Manifest integrity check completed",
			zap.Int("manifests", len(reports)),
			zap.Int("checked", checked),
			zap.Int("missing", missing),
			zap.Int("skipped", skipped),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the manifest database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, manifestsCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
	manifestsCmd.Flags().StringVar(&fileFlag, "file", "", "Check a manifest file instead of the stored manifests")
	manifestsCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
}

func newIntegrityService(e *env) *integrity.Service {
	return integrity.NewService(e.storage, e.cfg.Storage.Bucket, e.logger, e.db, afero.NewOsFs(), e.cfg.Loader.BaseDir)
}

func runIntegrityChecks(ctx context.Context, runStructure, runManifests, runSchema bool) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	logg := e.logger
	svc := newIntegrityService(e)
	onlyStructure := runStructure && !runManifests && !runSchema

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if onlyStructure && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else if onlyStructure {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runManifests && e.db != nil {
		logg.Info("Checking stored manifests...")
		reports, err := svc.CheckStoredManifests(ctx)
		if err != nil {
			logg.Error("Manifest check failed", zap.Error(err))
		} else {
			for _, r := range reports {
				if r.OK() {
					logg.Info("Manifest sources are present.", zap.String("manifest", r.Manifest), zap.Int("checked", r.Checked))
				}
			}
		}
	}

	if runSchema {
		logg.Info("Checking manifest schema integrity...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Schema matches expected definition.")
		} else {
			logg.Warn("Schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" && len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, msg := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", msg))
			}
		}
	}

	return nil
}
