// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"time"

	"github.com/djherbis/times"
)

// CreatedDate returns a file's creation date formatted YYYY-MM-DD in UTC.
// Birth time is used where the platform records one (macOS, some Linux
// filesystems); otherwise change time, then modification time.
func CreatedDate(path string) (string, error) {
	t, err := CreatedTime(path)
	if err != nil {
		return "", err
	}
	return t.UTC().Format("2006-01-02"), nil
}

// CreatedTime returns the best available creation-time proxy for path.
func CreatedTime(path string) (time.Time, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	switch {
	case ts.HasBirthTime():
		return ts.BirthTime(), nil
	case ts.HasChangeTime():
		return ts.ChangeTime(), nil
	default:
		return ts.ModTime(), nil
	}
}
