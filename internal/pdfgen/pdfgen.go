// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfgen renders a sequence of images into a single PDF, one page
// per image, each page sized to its image.
package pdfgen

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/go-pdf/fpdf"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// renderDPI converts image pixels to page millimetres.
const renderDPI = 96.0

// FromImages writes a PDF at outPath containing one page per image, in the
// given order. Images that cannot be decoded are skipped with a warning on
// w; the page count actually rendered is returned. An error is returned
// when no image could be rendered or the PDF cannot be written.
func FromImages(imagePaths []string, outPath string, w io.Writer) (int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	pages := 0
	for i, path := range imagePaths {
		img, err := loadImage(path)
		if err != nil {
			fmt.Fprintf(w, "  warning: skipping image %s: %v\n", path, err)
			continue
		}

		wMM := float64(img.width) * 25.4 / renderDPI
		hMM := float64(img.height) * 25.4 / renderDPI

		name := fmt.Sprintf("page-%d", i)
		opts := fpdf.ImageOptions{ImageType: img.format}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: wMM, Ht: hMM})
		pdf.ImageOptions(name, 0, 0, wMM, hMM, false, opts, 0, "")
		pages++
	}

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("building PDF: %w", err)
	}
	if pages == 0 {
		return 0, fmt.Errorf("no renderable images")
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return 0, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return pages, nil
}

// loadedImage holds bytes ready to hand to fpdf plus their pixel size.
type loadedImage struct {
	data   []byte
	format string // fpdf image type: JPEG, PNG, or GIF
	width  int
	height int
}

// loadImage reads and sniffs an image file. JPEG, PNG, and GIF pass through
// untouched; BMP, TIFF, and WebP are decoded and re-encoded as PNG since
// fpdf cannot embed them directly. Unknown formats (HEIC among them) are an
// error.
func loadImage(path string) (loadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return loadedImage{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return loadedImage{}, fmt.Errorf("unsupported image format: %w", err)
	}

	switch format {
	case "jpeg":
		return loadedImage{data: data, format: "JPEG", width: cfg.Width, height: cfg.Height}, nil
	case "png":
		return loadedImage{data: data, format: "PNG", width: cfg.Width, height: cfg.Height}, nil
	case "gif":
		return loadedImage{data: data, format: "GIF", width: cfg.Width, height: cfg.Height}, nil
	}

	// bmp, tiff, webp: transcode to PNG.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return loadedImage{}, fmt.Errorf("decoding %s: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return loadedImage{}, fmt.Errorf("transcoding %s to png: %w", format, err)
	}
	b := img.Bounds()
	return loadedImage{data: buf.Bytes(), format: "PNG", width: b.Dx(), height: b.Dy()}, nil
}
