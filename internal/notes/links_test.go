// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"testing"
)

func TestMarkdownRefs(t *testing.T) {
	body := []byte("# Scan\n\n" +
		"Here is [the invoice](../_resources/invoice.pdf) and " +
		"![first page](../_resources/scan1.jpg).\n\n" +
		"A bare id with format in the text: [receipt.png](../_resources/abc123)\n")

	refs := markdownRefs(body)
	if len(refs) != 3 {
		t.Fatalf("got %d refs, want 3: %+v", len(refs), refs)
	}

	if refs[0].Target != "../_resources/invoice.pdf" || refs[0].Alt != "the invoice" {
		t.Errorf("link ref = %+v", refs[0])
	}
	if refs[1].Target != "../_resources/scan1.jpg" || refs[1].Alt != "first page" {
		t.Errorf("image ref = %+v", refs[1])
	}
	if refs[2].Target != "../_resources/abc123" || refs[2].Alt != "receipt.png" {
		t.Errorf("bare-id ref = %+v", refs[2])
	}
}

func TestHTMLRefs(t *testing.T) {
	body := []byte(`<p>
<img src="../_resources/one.bin" type="image/png" alt="one.png">
<img alt="no source">
<a href="../_resources/doc.bin" type="application/pdf">the document</a>
<a href="../_resources/photo">photo.jpg</a>
</p>`)

	imgs, anchors := htmlRefs(body)

	if len(imgs) != 1 {
		t.Fatalf("got %d img refs, want 1: %+v", len(imgs), imgs)
	}
	if imgs[0].Target != "../_resources/one.bin" || imgs[0].MIME != "image/png" || imgs[0].Alt != "one.png" {
		t.Errorf("img ref = %+v", imgs[0])
	}

	if len(anchors) != 2 {
		t.Fatalf("got %d anchor refs, want 2: %+v", len(anchors), anchors)
	}
	if anchors[0].MIME != "application/pdf" || anchors[0].Alt != "the document" {
		t.Errorf("anchor ref = %+v", anchors[0])
	}
	if anchors[1].Alt != "photo.jpg" {
		t.Errorf("anchor text = %q, want %q", anchors[1].Alt, "photo.jpg")
	}
}

func TestExtractRefsOrder(t *testing.T) {
	// img tags first, then markdown links, then anchors.
	body := []byte(`[md link](md.pdf)
<img src="img.png">
<a href="anchor.pdf">anchor</a>`)

	refs := extractRefs(body)
	if len(refs) != 3 {
		t.Fatalf("got %d refs, want 3: %+v", len(refs), refs)
	}
	want := []string{"img.png", "md.pdf", "anchor.pdf"}
	for i, target := range want {
		if refs[i].Target != target {
			t.Errorf("refs[%d].Target = %q, want %q", i, refs[i].Target, target)
		}
	}
}
