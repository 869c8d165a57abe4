// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperflow/pkg/types"
)

// Manifest records what a conversion run produced. It is a plain report
// written once at the end of the run; nothing reads it back.
type Manifest struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	ExportDir   string          `yaml:"export_dir"`
	OutputDir   string          `yaml:"output_dir"`
	Converted   int             `yaml:"converted"`
	Skipped     int             `yaml:"skipped"`
	Failed      int             `yaml:"failed"`
	Notes       []ManifestEntry `yaml:"notes"`
}

// ManifestEntry maps one source note to the PDFs produced for it.
type ManifestEntry struct {
	Note    string   `yaml:"note"`
	Outputs []string `yaml:"outputs"`
}

// WriteManifest marshals the run summary to YAML at path.
func WriteManifest(path string, cfg types.ConvertConfig, result BatchResult) error {
	m := Manifest{
		GeneratedAt: time.Now().UTC(),
		ExportDir:   cfg.ExportDir,
		OutputDir:   cfg.OutputDir,
		Converted:   result.Converted,
		Skipped:     result.Skipped,
		Failed:      result.Failed,
	}

	noteList := make([]string, 0, len(result.Outputs))
	for note := range result.Outputs {
		noteList = append(noteList, note)
	}
	sort.Strings(noteList)
	for _, note := range noteList {
		m.Notes = append(m.Notes, ManifestEntry{Note: note, Outputs: result.Outputs[note]})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
