// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns parsed notes into PDF files in the output
// directory: linked PDF attachments are copied under the note's derived
// name, linked images are rendered into a single per-note PDF.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/pdiddy/paperflow/internal/notes"
	"github.com/pdiddy/paperflow/internal/pdfgen"
	"github.com/pdiddy/paperflow/pkg/types"
)

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Outputs maps each source note path to the PDFs produced for it.
	Outputs map[string][]string
}

// Total returns the total number of notes processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notes failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertTree scans cfg.ExportDir for notes and converts each one, printing
// per-note status lines to w and returning a summary. Individual failures
// never abort the run.
func ConvertTree(cfg types.ConvertConfig, w io.Writer) (BatchResult, error) {
	paths, err := notes.Scan(cfg.ExportDir, cfg.ResourcesDirName)
	if err != nil {
		return BatchResult{}, err
	}
	if len(paths) == 0 {
		fmt.Fprintf(w, "no notes found under %s\n", cfg.ExportDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	result := BatchResult{Outputs: make(map[string][]string)}
	for _, path := range paths {
		base := filepath.Base(path)

		note, err := notes.ParseFile(path, cfg.ResourcesDirName)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		outputs, status := ConvertNote(note, cfg, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
			result.Outputs[path] = outputs
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ConvertNote produces the output PDFs for one note. PDF attachments take
// precedence: when present they are copied and any linked images are
// ignored. With no PDFs, all images are rendered into one PDF. A note
// linking neither is skipped. Outputs that already exist are left alone.
func ConvertNote(note types.Note, cfg types.ConvertConfig, w io.Writer) ([]string, types.ConversionStatus) {
	base := filepath.Base(note.Path)
	name := OutputName(note)

	pdfs := note.PDFs()
	images := note.Images()

	switch {
	case len(pdfs) > 0:
		outputs, err := copyPDFs(note, pdfs, name, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			return nil, types.ConversionFailed
		}
		if len(outputs) == 0 {
			fmt.Fprintf(w, "skipped: %s (outputs already exist)\n", base)
			return nil, types.ConversionNone
		}
		fmt.Fprintf(w, "converted: %s (%d PDF attachment(s))\n", base, len(outputs))
		return outputs, types.ConversionDone

	case len(images) > 0:
		outPath := filepath.Join(cfg.OutputDir, name+".pdf")
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return nil, types.ConversionNone
		}
		paths := make([]string, len(images))
		for i, img := range images {
			paths[i] = img.Path
		}
		pages, err := pdfgen.FromImages(paths, outPath, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			return nil, types.ConversionFailed
		}
		stampCreated(outPath, note.Created)
		fmt.Fprintf(w, "converted: %s (%d image page(s))\n", base, pages)
		return []string{outPath}, types.ConversionDone

	default:
		fmt.Fprintf(w, "skipped: %s (no PDF or image attachments)\n", base)
		return nil, types.ConversionNone
	}
}

// copyPDFs copies the note's PDF attachments into the output directory.
// A single PDF keeps the bare name; several get _0, _1, ... suffixes.
// Already-existing outputs are skipped; the returned slice holds only the
// files written by this call.
func copyPDFs(note types.Note, pdfs []types.Attachment, name string, cfg types.ConvertConfig, w io.Writer) ([]string, error) {
	var outputs []string
	for i, att := range pdfs {
		outName := name + ".pdf"
		if len(pdfs) > 1 {
			outName = fmt.Sprintf("%s_%d.pdf", name, i)
		}
		outPath := filepath.Join(cfg.OutputDir, outName)

		if _, err := os.Stat(outPath); err == nil {
			if cfg.Verbose {
				fmt.Fprintf(w, "  exists: %s\n", outName)
			}
			continue
		}

		if err := copyFile(att.Path, outPath); err != nil {
			return nil, err
		}
		stampCreated(outPath, note.Created)
		if cfg.Verbose {
			fmt.Fprintf(w, "  wrote: %s\n", outName)
		}
		outputs = append(outputs, outPath)
	}
	return outputs, nil
}

// OutputName derives the output filename stem from the note's title and
// creation date. The title is slugged; the date, when known, is appended
// as _YYYY-MM-DD.
func OutputName(note types.Note) string {
	s, err := slug.Normalize(note.Title)
	if err != nil || s == "" {
		s = "note"
	}
	if note.Created.IsZero() {
		return s
	}
	return s + "_" + note.Created.UTC().Format("2006-01-02")
}

// copyFile copies src to destPath through a temp file in the destination
// directory, renaming on success so readers never see a partial PDF.
func copyFile(src, destPath string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening attachment: %w", err)
	}
	defer in.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".convert-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, in)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("copying attachment: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// stampCreated sets the output file's timestamps to the note's creation
// time, preserving the original date through the conversion. A zero time
// leaves the file untouched; a Chtimes failure is not fatal.
func stampCreated(path string, created time.Time) {
	if created.IsZero() {
		return
	}
	_ = os.Chtimes(path, created, created)
}
