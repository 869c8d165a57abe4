// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload sends a folder of PDFs to a Paperless-ngx instance,
// setting each remote document's creation date from the local file's
// filesystem timestamps.
package upload

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paperflow/internal/httputil"
	"github.com/pdiddy/paperflow/pkg/types"
)

// postDocumentPath is the Paperless-ngx document creation endpoint.
const postDocumentPath = "/api/documents/post_document/"

// Client talks to one Paperless-ngx instance.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// NewClient builds a client from the upload configuration. With
// InsecureSkipVerify set, TLS certificate checks are disabled on a cloned
// default transport.
func NewClient(cfg types.UploadConfig) *Client {
	transport := http.DefaultTransport
	if cfg.InsecureSkipVerify {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		token:     cfg.APIToken,
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// Upload posts one PDF as a multipart create-document request: the file
// bytes under "document", the derived creation date under "created", and
// the filename stem under "title". Paperless answers 200/201 with a JSON
// string referencing the consume task; that reference is returned. Any
// other status is an error.
func (c *Client) Upload(ctx context.Context, pdfPath, created string) (string, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	base := filepath.Base(pdfPath)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", base)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.WriteField("created", created); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.WriteField("title", title); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+postDocumentPath, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Token "+c.token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	// The body is normally a JSON string (the consume task id); fall back
	// to the raw body when it is something else.
	var ref string
	if err := json.Unmarshal(respBody, &ref); err != nil || ref == "" {
		ref = strings.TrimSpace(string(respBody))
	}
	return ref, nil
}
