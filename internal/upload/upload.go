// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/paperflow/pkg/types"
)

// BatchResult holds the outcome of an upload run.
type BatchResult struct {
	Uploaded int
	Failed   int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Uploaded + r.Failed
}

// HasFailures reports whether any files failed to upload.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// UploadDir uploads every *.pdf in cfg.PDFDir (non-recursive, lexical
// order), printing per-file status lines to w and returning a summary.
// Failures are logged and the run continues with the next file; re-running
// may create duplicate remote documents since the API has no idempotency
// key. UploadDelay, when set, pauses between consecutive uploads.
func UploadDir(ctx context.Context, client *Client, cfg types.UploadConfig, w io.Writer) (BatchResult, error) {
	matches, err := filepath.Glob(filepath.Join(cfg.PDFDir, "*.pdf"))
	if err != nil {
		return BatchResult{}, fmt.Errorf("listing %s: %w", cfg.PDFDir, err)
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		fmt.Fprintf(w, "no PDF files found in %s\n", cfg.PDFDir)
	}

	var result BatchResult
	for i, path := range matches {
		if i > 0 && cfg.UploadDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(cfg.UploadDelay):
			}
		}

		base := filepath.Base(path)

		created, err := CreatedDate(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (reading timestamps: %v)\n", base, err)
			result.Failed++
			continue
		}
		if cfg.Verbose {
			fmt.Fprintf(w, "  %s created %s\n", base, created)
		}

		ref, err := client.Upload(ctx, path, created)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "uploaded: %s (created %s, task %s)\n", base, created, ref)
		result.Uploaded++
	}

	fmt.Fprintf(w, "\nBatch summary: %d uploaded, %d failed (total: %d)\n",
		result.Uploaded, result.Failed, result.Total())
	return result, nil
}
