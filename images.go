package reportengine

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const uploadsURLPrefix = "/uploads/"

// UploadedImage is an attachment read fully into memory from the request.
type UploadedImage struct {
	Filename string // as sent by the client, path separators included
	Data     []byte
}

var separatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// SanitizeFilename replaces path separators with underscores so the name
// always stays inside the upload directory.
func SanitizeFilename(name string) string {
	return separatorReplacer.Replace(name)
}

// ImageURL is the public-looking path returned for a stored upload. The name
// is path-escaped, so "50%off.png" or "x#y.png" still yield a single valid path.
func ImageURL(safeName string) string {
	return uploadsURLPrefix + url.PathEscape(safeName)
}

// saveImage writes data to dir/safeName, creating dir if needed. An existing
// file with the same name is overwritten.
func saveImage(dir, safeName string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	path := filepath.Join(dir, safeName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// imageInfo is best-effort metadata for logging; uploads are never rejected
// because they fail to decode.
type imageInfo struct {
	Format string
	Width  int
	Height int
}

func (i imageInfo) String() string {
	return fmt.Sprintf("%s %dx%d", i.Format, i.Width, i.Height)
}

// probeImage reads only the image header.
func probeImage(data []byte) (imageInfo, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return imageInfo{}, false
	}
	return imageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, true
}
