// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes parses exported notes: markdown or HTML files with an
// optional YAML front-matter header, whose bodies link PDF and image
// attachments kept in a resources directory next to the note folders.
package notes

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/paperflow/pkg/types"
)

// noteExtensions lists the file extensions scanned as notes.
var noteExtensions = map[string]bool{
	".md":   true,
	".html": true,
}

// Scan walks the export tree and returns the paths of all note files in
// lexical order. Directories named resourcesDirName and hidden directories
// are not descended into.
func Scan(exportDir, resourcesDirName string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(exportDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != exportDir && (name == resourcesDirName || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if noteExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", exportDir, err)
	}
	return paths, nil
}

// noteFrontMatter mirrors the Joplin "Markdown + Front Matter" export header.
// Dates arrive as strings in a handful of layouts, so they are parsed
// manually rather than by the YAML decoder.
type noteFrontMatter struct {
	Title   string `yaml:"title"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated"`
}

// timeLayouts are tried in order when parsing front-matter dates. Joplin
// writes "2023-06-15 10:30:25Z"; other exporters use RFC3339 or bare dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFile reads a note file, parses its front matter, and extracts its
// attachment references. Attachments resolve against the note body links;
// targets that do not exist on disk are dropped. A YAML error in the front
// matter is returned as an error so the caller can skip the note.
func ParseFile(path, resourcesDirName string) (types.Note, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return types.Note{}, fmt.Errorf("reading note: %w", err)
	}

	var fm noteFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return types.Note{}, fmt.Errorf("parsing front matter: %w", err)
	}

	note := types.Note{
		Path:    path,
		Title:   strings.TrimSpace(fm.Title),
		Created: parseTime(fm.Created),
		Updated: parseTime(fm.Updated),
	}
	if note.Title == "" {
		base := filepath.Base(path)
		note.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	refs := extractRefs(body)
	note.Attachments = resolveRefs(refs, filepath.Dir(path), resourcesDirName)
	return note, nil
}

// parseTime tries each known layout and returns the zero time when none fit.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
