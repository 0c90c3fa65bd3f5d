package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scene-toolkit/core/timefmt"
	"scene-toolkit/feature/assets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var storedFlag bool

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <manifest>",
	Short: "Load every asset of a manifest",
	Long: `Runs the asset pipeline over a manifest file (YAML, TOML or JSON) and reports progress.
With --stored the argument names a manifest saved in the database instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(storedFlag)
		if err != nil {
			return err
		}
		defer e.close()

		var m *assets.Manifest
		if storedFlag {
			m, err = e.store().Load(cmd.Context(), args[0])
		} else {
			m, err = readManifest(args[0])
		}
		if err != nil {
			return err
		}

		svc, err := e.assetService()
		if err != nil {
			return err
		}

		started := time.Now()
		res, err := svc.Load(cmd.Context(), m, func(f float64) {
			fmt.Printf("\rLoading %s: %3.0f%%", m.Name, f*100)
		})
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to load manifest %s: %w", m.Name, err)
		}

		fmt.Println("\n=== Loaded Assets ===")
		for _, kind := range assets.Kinds {
			ids, _ := svc.IDs(kind)
			fmt.Printf("%-10s %d\n", kind, len(ids))
		}
		fmt.Printf("FBX models in result: %d\n", len(res.FBXModels))
		fmt.Printf("Execution Time: %s\n", timefmt.FormatDuration(time.Since(started), timefmt.MMSSMS))

		e.logger.Info("Manifest loaded",
			zap.String("manifest", m.Name),
			zap.Int("total", m.Assets.Total()),
			zap.Duration("execution_time", time.Since(started)))

		svc.DisposeAll()
		return nil
	},
}

// readManifest parses a manifest file, picking the format from its extension.
// A manifest without a name is named after the file.
func readManifest(path string) (*assets.Manifest, error) {
	format, err := assets.ManifestFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := assets.ParseManifest(data, format)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func init() {
	RootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&storedFlag, "stored", false, "Load a manifest stored in the database")
}
