// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for the paperflow
// pipeline: notes parsed from an export, their attachments, and the
// per-stage configuration.
package types

import "time"

// AttachmentKind classifies an attachment by what the converter does with it.
type AttachmentKind int

const (
	KindUnknown AttachmentKind = iota
	KindPDF
	KindImage
)

func (k AttachmentKind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Attachment is a file referenced from a note body, resolved to an absolute
// path on disk. Ext is the intended extension (".pdf", ".jpg", ...), which
// may differ from the extension of the stored file when the note declared a
// MIME type or an alt text carrying the real format.
type Attachment struct {
	Path string
	Ext  string
	Kind AttachmentKind
}

// Note is a single markdown or HTML note parsed from the export. It is
// immutable after parse; Attachments preserves the order links appear in
// the body.
type Note struct {
	// Path is the absolute path of the source note file.
	Path string

	// Title comes from front matter, falling back to the filename stem.
	Title string

	// Created and Updated come from front matter and are zero when the
	// note carries no parseable timestamp.
	Created time.Time
	Updated time.Time

	Attachments []Attachment
}

// PDFs returns the note's PDF attachments in body order.
func (n Note) PDFs() []Attachment {
	return n.byKind(KindPDF)
}

// Images returns the note's image attachments in body order.
func (n Note) Images() []Attachment {
	return n.byKind(KindImage)
}

func (n Note) byKind(k AttachmentKind) []Attachment {
	var out []Attachment
	for _, a := range n.Attachments {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// ConversionStatus reports the outcome of converting a single note.
type ConversionStatus int

const (
	// ConversionNone means the note was skipped (output already present,
	// or nothing convertible was linked).
	ConversionNone ConversionStatus = iota
	ConversionDone
	ConversionFailed
)
