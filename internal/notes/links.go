// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// refSource records which link shape a reference was lifted from. The
// extension fallback rules differ per shape, so resolution needs to know.
type refSource int

const (
	refMarkdown refSource = iota
	refImg
	refAnchor
)

// linkRef is a raw attachment reference lifted from a note body before
// path resolution. Target is the link destination as written (possibly
// URL-escaped); Alt is the alt/anchor text; MIME is the declared content
// type when the tag carried one.
type linkRef struct {
	Target string
	Alt    string
	MIME   string
	Source refSource
}

// extractRefs collects attachment references from a note body. Exports mix
// three link shapes: <img> tags, markdown links/images, and <a href> tags.
// They are collected in that order; duplicates are removed later during
// resolution. The HTML pass runs over the raw body so inline HTML inside
// markdown and whole .html notes are handled the same way.
func extractRefs(body []byte) []linkRef {
	imgs, anchors := htmlRefs(body)

	refs := make([]linkRef, 0, len(imgs)+len(anchors))
	refs = append(refs, imgs...)
	refs = append(refs, markdownRefs(body)...)
	refs = append(refs, anchors...)
	return refs
}

// markdownRefs walks the goldmark AST and returns link and image
// destinations with their text as Alt.
func markdownRefs(body []byte) []linkRef {
	var refs []linkRef

	doc := goldmark.DefaultParser().Parse(text.NewReader(body))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			refs = append(refs, linkRef{
				Target: string(node.Destination),
				Alt:    string(node.Text(body)),
			})
		case *ast.Image:
			refs = append(refs, linkRef{
				Target: string(node.Destination),
				Alt:    string(node.Text(body)),
			})
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// htmlRefs tokenizes the body and returns <img src> references and
// <a href> references separately, each with their type attribute and
// alt/anchor text.
func htmlRefs(body []byte) (imgs, anchors []linkRef) {
	z := html.NewTokenizer(bytes.NewReader(body))

	var openAnchor *linkRef
	var anchorText strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			// Includes io.EOF; a pending anchor at EOF is kept as-is.
			if openAnchor != nil {
				openAnchor.Alt = strings.TrimSpace(anchorText.String())
				anchors = append(anchors, *openAnchor)
			}
			return imgs, anchors

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "img":
				ref := refFromAttrs(tok.Attr, "src")
				ref.Source = refImg
				if ref.Target != "" {
					imgs = append(imgs, ref)
				}
			case "a":
				ref := refFromAttrs(tok.Attr, "href")
				ref.Source = refAnchor
				if ref.Target != "" {
					openAnchor = &ref
					anchorText.Reset()
				}
			}

		case html.TextToken:
			if openAnchor != nil {
				anchorText.Write(z.Text())
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "a" && openAnchor != nil {
				openAnchor.Alt = strings.TrimSpace(anchorText.String())
				anchors = append(anchors, *openAnchor)
				openAnchor = nil
			}
		}
	}
}

// refFromAttrs builds a linkRef from tag attributes, reading the target
// from srcAttr ("src" or "href") plus the optional type and alt attributes.
func refFromAttrs(attrs []html.Attribute, srcAttr string) linkRef {
	var ref linkRef
	for _, a := range attrs {
		switch a.Key {
		case srcAttr:
			ref.Target = a.Val
		case "type":
			ref.MIME = strings.ToLower(strings.TrimSpace(a.Val))
		case "alt":
			ref.Alt = a.Val
		}
	}
	return ref
}
