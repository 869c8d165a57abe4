// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paperflow/pkg/types"
)

// receivedUpload captures one multipart request seen by the test server.
type receivedUpload struct {
	auth     string
	filename string
	content  string
	created  string
	title    string
}

// newPaperlessServer fakes the post_document endpoint. Files whose name
// contains "reject" get a 500; everything else gets 200 with a task id.
func newPaperlessServer(t *testing.T, got *[]receivedUpload) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/post_document/" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("document")
		if err != nil {
			t.Errorf("missing document part: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		content, _ := io.ReadAll(file)
		file.Close()

		*got = append(*got, receivedUpload{
			auth:     r.Header.Get("Authorization"),
			filename: header.Filename,
			content:  string(content),
			created:  r.FormValue("created"),
			title:    r.FormValue("title"),
		})

		if strings.Contains(header.Filename, "reject") {
			http.Error(w, "consume error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "%q", "task-"+header.Filename)
	}))
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 "+name), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testClient(serverURL string) (*Client, types.UploadConfig) {
	cfg := types.UploadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "paperflow/test",
		},
		APIURL:   serverURL,
		APIToken: "test-token",
	}
	return NewClient(cfg), cfg
}

func TestClientUpload(t *testing.T) {
	var got []receivedUpload
	ts := newPaperlessServer(t, &got)
	defer ts.Close()

	dir := t.TempDir()
	pdf := writePDF(t, dir, "invoice.pdf")

	client, _ := testClient(ts.URL)
	ref, err := client.Upload(context.Background(), pdf, "2023-06-15")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if ref != "task-invoice.pdf" {
		t.Errorf("ref = %q, want the decoded task id", ref)
	}

	if len(got) != 1 {
		t.Fatalf("server saw %d uploads, want 1", len(got))
	}
	r := got[0]
	if r.auth != "Token test-token" {
		t.Errorf("Authorization = %q, want token scheme", r.auth)
	}
	if r.filename != "invoice.pdf" {
		t.Errorf("filename = %q", r.filename)
	}
	if r.content != "%PDF-1.4 invoice.pdf" {
		t.Errorf("file content = %q", r.content)
	}
	if r.created != "2023-06-15" {
		t.Errorf("created = %q, want the derived date", r.created)
	}
	if r.title != "invoice" {
		t.Errorf("title = %q, want the filename stem", r.title)
	}
}

func TestClientUploadNonSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusForbidden)
	}))
	defer ts.Close()

	dir := t.TempDir()
	pdf := writePDF(t, dir, "doc.pdf")

	client, _ := testClient(ts.URL)
	_, err := client.Upload(context.Background(), pdf, "2023-06-15")
	if err == nil {
		t.Fatal("expected error on HTTP 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %v, want status code included", err)
	}
}

func TestUploadDirContinuesAfterFailure(t *testing.T) {
	var got []receivedUpload
	ts := newPaperlessServer(t, &got)
	defer ts.Close()

	dir := t.TempDir()
	writePDF(t, dir, "a.pdf")
	writePDF(t, dir, "reject.pdf")
	writePDF(t, dir, "z.pdf")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	client, cfg := testClient(ts.URL)
	cfg.PDFDir = dir

	var log bytes.Buffer
	result, err := UploadDir(context.Background(), client, cfg, &log)
	if err != nil {
		t.Fatalf("UploadDir: %v", err)
	}

	if result.Uploaded != 2 {
		t.Errorf("Uploaded = %d, want 2", result.Uploaded)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1; the run must continue past failures", result.Failed)
	}
	if len(got) != 3 {
		t.Errorf("server saw %d uploads, want 3 (txt file excluded)", len(got))
	}
	if !strings.Contains(log.String(), "Batch summary: 2 uploaded, 1 failed") {
		t.Errorf("unexpected summary: %q", log.String())
	}
}

func TestUploadDirEmpty(t *testing.T) {
	client, cfg := testClient("http://unused.invalid")
	cfg.PDFDir = t.TempDir()

	var log bytes.Buffer
	result, err := UploadDir(context.Background(), client, cfg, &log)
	if err != nil {
		t.Fatalf("UploadDir: %v", err)
	}
	if result.Total() != 0 {
		t.Errorf("Total = %d, want 0", result.Total())
	}
	if !strings.Contains(log.String(), "no PDF files found") {
		t.Errorf("log = %q", log.String())
	}
}

func TestCreatedDate(t *testing.T) {
	dir := t.TempDir()
	pdf := writePDF(t, dir, "fresh.pdf")

	created, err := CreatedDate(pdf)
	if err != nil {
		t.Fatalf("CreatedDate: %v", err)
	}
	// The file was just written; whichever timestamp the platform supplies,
	// the derived date is today (UTC).
	want := time.Now().UTC().Format("2006-01-02")
	if created != want {
		t.Errorf("CreatedDate = %q, want %q", created, want)
	}
}
