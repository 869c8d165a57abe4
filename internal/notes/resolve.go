// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paperflow/pkg/types"
)

// mimeToExt maps declared content types to the extension the converter
// should treat the attachment as. The type attribute wins over whatever
// extension the stored filename happens to carry.
var mimeToExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tif",
	"image/webp":      ".webp",
	"image/heic":      ".heic",
	"application/pdf": ".pdf",
}

// imageExtensions is the set of intended extensions rendered into the
// per-note PDF.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
}

// anchorTrustedExts are href suffixes taken at face value for <a> tags.
// Anything else defers to the anchor text, which tends to carry the real
// filename when the stored resource has an opaque suffix.
var anchorTrustedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".tif":  true,
}

// resolveRefs turns raw body references into attachments: URL-unescape the
// target, work out the intended extension, resolve against the resources
// directory (then the note's own directory), and drop anything that is not
// a PDF or image or does not exist on disk. Duplicates are removed, first
// occurrence wins, body order is preserved.
//
// The intended extension starts as the target's suffix. A mapped type
// attribute always wins. Otherwise the alt/anchor text may override it:
// always for <img> tags, for <a> tags when the href suffix is not trusted,
// and for markdown links only when the target has no suffix at all (bare
// resource ids, which also gain the alt suffix on the stored name).
func resolveRefs(refs []linkRef, noteDir, resourcesDirName string) []types.Attachment {
	var out []types.Attachment
	seen := make(map[string]bool)

	for _, ref := range refs {
		target := ref.Target
		if decoded, err := url.PathUnescape(target); err == nil {
			target = decoded
		}
		// External links and Joplin-internal ":/" ids are not attachments.
		if strings.Contains(target, "://") || strings.HasPrefix(target, ":/") {
			continue
		}

		name := path.Base(target)
		if name == "." || name == "/" || name == "" {
			continue
		}
		ext := strings.ToLower(path.Ext(name))

		if mapped, ok := mimeToExt[ref.MIME]; ok {
			ext = mapped
		} else if altExt := strings.ToLower(path.Ext(ref.Alt)); altExt != "" {
			switch ref.Source {
			case refImg:
				ext = altExt
			case refAnchor:
				if !anchorTrustedExts[ext] {
					ext = altExt
				}
			default:
				if ext == "" {
					ext = altExt
					name += altExt
				}
			}
		}

		kind := kindForExt(ext)
		if kind == types.KindUnknown {
			continue
		}

		resolved, ok := resolvePath(target, name, noteDir, resourcesDirName)
		if !ok || seen[resolved] {
			continue
		}
		seen[resolved] = true

		out = append(out, types.Attachment{Path: resolved, Ext: ext, Kind: kind})
	}
	return out
}

// resolvePath finds the attachment on disk: the export keeps resources in a
// sibling directory of the note folder, so <noteDir>/../<resources>/<name>
// is tried first, then the target relative to the note itself.
func resolvePath(target, name, noteDir, resourcesDirName string) (string, bool) {
	candidates := []string{
		filepath.Join(noteDir, "..", resourcesDirName, name),
		filepath.Join(noteDir, filepath.FromSlash(target)),
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(c); err == nil {
			return abs, true
		}
		return filepath.Clean(c), true
	}
	return "", false
}

func kindForExt(ext string) types.AttachmentKind {
	switch {
	case ext == ".pdf":
		return types.KindPDF
	case imageExtensions[ext]:
		return types.KindImage
	default:
		return types.KindUnknown
	}
}
