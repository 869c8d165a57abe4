package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperflow/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// ExportDir is the root of the note export (contains the notes and the
	// resources directory).
	ExportDir string `json:"export_dir" yaml:"export_dir"`

	// OutputDir is where generated PDFs are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ResourcesDirName is the name of the attachment directory the export
	// keeps next to the note directories (default "_resources").
	ResourcesDirName string `json:"resources_dir" yaml:"resources_dir"`

	// ManifestPath, when non-empty, names a YAML file recording what the
	// run produced.
	ManifestPath string `json:"manifest" yaml:"manifest"`

	// Verbose enables per-attachment debug lines.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// UploadConfig holds settings for the upload stage.
type UploadConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIURL is the Paperless base URL (e.g. "http://localhost:8000").
	APIURL string `json:"api_url" yaml:"api_url"`

	// APIToken authenticates requests ("Authorization: Token <APIToken>").
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// PDFDir is the folder whose *.pdf files are uploaded.
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// UploadDelay is the pause between consecutive uploads (default 0).
	UploadDelay time.Duration `json:"upload_delay" yaml:"upload_delay"`

	// Verbose enables per-request debug lines.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
