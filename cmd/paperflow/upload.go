package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperflow/internal/upload"
	"github.com/pdiddy/paperflow/pkg/types"
)

const (
	defaultUploadTimeout = 30 * time.Second
	defaultUserAgent     = "paperflow/0.1"

	envAPIURL   = "PAPERLESS_API_URL"
	envAPIToken = "PAPERLESS_API_TOKEN"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a folder of PDFs to Paperless-ngx",
	Long: `Upload posts every PDF in a folder to the Paperless-ngx document
creation endpoint, setting each remote document's creation date from the
file's filesystem birth time. Credentials come from flags, the PAPERLESS_*
environment variables or a .env file, or the config file, in that order.

Uploads are sequential with no idempotency key; re-running may create
duplicate remote documents.`,
	RunE: runUpload,
}

func init() {
	registerUploadFlags(uploadCmd)
	rootCmd.AddCommand(uploadCmd)
}

func registerUploadFlags(cmd *cobra.Command) {
	cmd.Flags().String("pdf-dir", "", "folder containing the PDFs to upload (required)")
	cmd.Flags().String("api-url", "", "Paperless-ngx base URL (default $"+envAPIURL+")")
	cmd.Flags().String("api-token", "", "Paperless-ngx API token (default $"+envAPIToken+")")
	cmd.Flags().Duration("timeout", defaultUploadTimeout, "HTTP request timeout")
	cmd.Flags().Duration("delay", 0, "delay between consecutive uploads (default none)")
	cmd.Flags().Bool("insecure-skip-verify", false, "disable TLS certificate verification (not recommended)")
	cmd.Flags().BoolP("verbose", "v", false, "enable per-request debug output")
	_ = cmd.MarkFlagRequired("pdf-dir")
}

// uploadConfig resolves the upload settings from the command's flags, the
// PAPERLESS_* environment (or .env), and the viper config file, in that
// order.
func uploadConfig(cmd *cobra.Command) (types.UploadConfig, error) {
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	if info, err := os.Stat(pdfDir); err != nil || !info.IsDir() {
		return types.UploadConfig{}, fmt.Errorf("PDF folder not found: %s", pdfDir)
	}

	apiURL, _ := cmd.Flags().GetString("api-url")
	apiURL = envDefault(envAPIURL, apiURL)
	if apiURL == "" {
		apiURL = viper.GetString("api_url")
	}
	apiToken, _ := cmd.Flags().GetString("api-token")
	apiToken = envDefault(envAPIToken, apiToken)
	if apiToken == "" {
		apiToken = viper.GetString("api_token")
	}
	if apiURL == "" || apiToken == "" {
		return types.UploadConfig{}, fmt.Errorf("API URL and token must be provided via flags, %s/%s, a .env file, or the config file", envAPIURL, envAPIToken)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if !cmd.Flags().Changed("timeout") {
		if v := viper.GetDuration("timeout"); v > 0 {
			timeout = v
		}
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if !cmd.Flags().Changed("delay") {
		if v := viper.GetDuration("upload_delay"); v > 0 {
			delay = v
		}
	}
	skipVerify, _ := cmd.Flags().GetBool("insecure-skip-verify")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return types.UploadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIURL:             apiURL,
		APIToken:           apiToken,
		PDFDir:             pdfDir,
		InsecureSkipVerify: skipVerify,
		UploadDelay:        delay,
		Verbose:            verbose,
	}, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := uploadConfig(cmd)
	if err != nil {
		return err
	}

	client := upload.NewClient(cfg)
	result, err := upload.UploadDir(context.Background(), client, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to upload", result.Failed)
	}
	return nil
}
