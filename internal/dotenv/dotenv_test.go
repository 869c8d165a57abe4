// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dotenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		want    map[string]string
	}{
		{
			name: "plain pairs",
			content: "PAPERLESS_API_URL=http://localhost:8000\n" +
				"PAPERLESS_API_TOKEN=abc123\n",
			want: map[string]string{
				"PAPERLESS_API_URL":   "http://localhost:8000",
				"PAPERLESS_API_TOKEN": "abc123",
			},
		},
		{
			name: "comments and blank lines",
			content: "# paperless credentials\n\n" +
				"PAPERLESS_API_TOKEN=abc123\n",
			want: map[string]string{"PAPERLESS_API_TOKEN": "abc123"},
		},
		{
			name:    "export prefix",
			content: "export PAPERLESS_API_TOKEN=abc123\n",
			want:    map[string]string{"PAPERLESS_API_TOKEN": "abc123"},
		},
		{
			name: "quoted values",
			content: `PAPERLESS_API_URL="http://localhost:8000"` + "\n" +
				`PAPERLESS_API_TOKEN='abc123'` + "\n",
			want: map[string]string{
				"PAPERLESS_API_URL":   "http://localhost:8000",
				"PAPERLESS_API_TOKEN": "abc123",
			},
		},
		{
			name:    "whitespace trimmed",
			content: "  PAPERLESS_API_TOKEN =  abc123  \n",
			want:    map[string]string{"PAPERLESS_API_TOKEN": "abc123"},
		},
		{
			name:    "malformed line skipped",
			content: "NOT A PAIR\nPAPERLESS_API_TOKEN=abc123\n",
			want:    map[string]string{"PAPERLESS_API_TOKEN": "abc123"},
		},
		{
			name:    "empty value dropped",
			content: "PAPERLESS_API_TOKEN=\n",
			want:    map[string]string{},
		},
		{
			name:    "missing file is not an error",
			missing: true,
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadValueWithEquals(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAPERLESS_API_TOKEN=abc=123==\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc=123==", got["PAPERLESS_API_TOKEN"])
}
