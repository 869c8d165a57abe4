// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dotenv loads credentials from an environment-style .env file.
// Each non-comment line is one KEY=VALUE pair; the uploader reads
// PAPERLESS_API_URL and PAPERLESS_API_TOKEN this way.
package dotenv

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads the file at path and returns a map of keys to trimmed values.
// A missing file is not an error; Load returns an empty map. Blank lines
// and lines starting with # are skipped, an optional "export " prefix is
// tolerated, and matching single or double quotes around a value are
// stripped. Lines without "=" produce a warning on stderr but do not abort.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			fmt.Fprintf(os.Stderr, "warning: %s:%d: not a KEY=VALUE line, skipping\n", path, lineNo)
			continue
		}

		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		if key == "" || value == "" {
			continue
		}
		env[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return env, nil
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
