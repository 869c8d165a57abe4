package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperflow/internal/convert"
	"github.com/pdiddy/paperflow/pkg/types"
)

const defaultResourcesDir = "_resources"

var convertCmd = &cobra.Command{
	Use:   "convert <export-dir> <output-dir>",
	Short: "Convert a note export into renamed PDF files",
	Long: `Convert scans a "Markdown + Front Matter" export for notes, reads each
note's title and creation date from its front matter, and produces PDFs in
the output directory. Linked PDF attachments are copied under the derived
name; linked images are rendered into a single PDF per note. Notes that
cannot be processed are logged and skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("resources-dir", defaultResourcesDir, "name of the export's attachment directory")
	convertCmd.Flags().String("manifest", "", "write a YAML manifest of the run to this path")
	convertCmd.Flags().BoolP("verbose", "v", false, "enable per-attachment debug output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	exportDir, outputDir := args[0], args[1]

	if info, err := os.Stat(exportDir); err != nil || !info.IsDir() {
		return fmt.Errorf("export directory not found: %s", exportDir)
	}

	resourcesDir, _ := cmd.Flags().GetString("resources-dir")
	if !cmd.Flags().Changed("resources-dir") {
		if v := viper.GetString("resources_dir"); v != "" {
			resourcesDir = v
		}
	}
	manifest, _ := cmd.Flags().GetString("manifest")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg := types.ConvertConfig{
		ExportDir:        exportDir,
		OutputDir:        outputDir,
		ResourcesDirName: resourcesDir,
		ManifestPath:     manifest,
		Verbose:          verbose,
	}

	result, err := convert.ConvertTree(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.ManifestPath != "" {
		if err := convert.WriteManifest(cfg.ManifestPath, cfg, result); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d note(s) failed conversion", result.Failed)
	}
	return nil
}
