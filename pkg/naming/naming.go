// Package naming derives file extensions and collision-resistant filenames
// for downloaded images.
package naming

import (
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"

	"wallgrab/pkg/utils"
)

// SupportedExtensions lists the image extensions the pipeline recognizes.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp"}

// DefaultExtension is used when neither the content type nor the URL path
// identifies the format.
const DefaultExtension = ".jpg"

// contentTypeExtensions maps known image MIME types to their extension.
var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

var (
	titleStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	titleCollapse = regexp.MustCompile(`[-\s]+`)
)

// maxTitleRunes caps the sanitized title prefix of a filename.
const maxTitleRunes = 50

// Extension resolves the file extension for a fetched image: known content
// type first, then the URL path suffix, then DefaultExtension.
func Extension(rawURL, contentType string) string {
	if contentType != "" {
		if mimeType, _, err := mime.ParseMediaType(contentType); err == nil {
			if ext, ok := contentTypeExtensions[mimeType]; ok {
				return ext
			}
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		for _, supported := range SupportedExtensions {
			if ext == supported {
				return ext
			}
		}
	}

	return DefaultExtension
}

// Filename builds the stored filename for an image URL. A non-empty title in
// the metadata becomes a sanitized prefix; the short URL hash keeps names for
// distinct URLs distinct even when titles collide.
func Filename(rawURL string, metadata map[string]string, ext string) string {
	hash := utils.URLHash(rawURL)

	if title := metadata["title"]; title != "" {
		return SanitizeTitle(title) + "_" + hash + ext
	}
	return "wallpaper_" + hash + ext
}

// SanitizeTitle reduces a title to filename-safe characters: strips runes
// outside letters/digits/underscore/hyphen/whitespace, collapses
// hyphen/whitespace runs to single underscores, and truncates to 50 runes.
func SanitizeTitle(title string) string {
	s := titleStrip.ReplaceAllString(title, "")
	s = titleCollapse.ReplaceAllString(s, "_")
	if r := []rune(s); len(r) > maxTitleRunes {
		s = string(r[:maxTitleRunes])
	}
	return s
}
