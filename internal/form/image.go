package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/five82/reel/internal/api"
	"github.com/five82/reel/internal/config"
)

// NotImageMessage is shown when the attached file is not an image.
const NotImageMessage = "Please select an image file"

// MaxImageBytes caps poster attachments.
const MaxImageBytes = 10 << 20

// Image is a poster read from disk and ready to upload.
type Image struct {
	Path string
	Name string
	MIME string
	Data []byte
}

// Upload converts the attachment for the gateway.
func (img Image) Upload() api.Upload {
	return api.Upload{Filename: img.Name, Data: img.Data}
}

// Summary is a one-line description for the form.
func (img Image) Summary() string {
	return fmt.Sprintf("%s (%s, %d KB)", img.Name, img.MIME, (len(img.Data)+1023)/1024)
}

// LoadImage reads path and checks that it holds an image. A non-image file
// yields an error wrapping api.ErrNotImage.
func LoadImage(path string) (Image, error) {
	resolved, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return Image{}, fmt.Errorf("resolve image path: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Image{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("%w: %s is a directory", api.ErrNotImage, resolved)
	}
	if info.Size() > MaxImageBytes {
		return Image{}, fmt.Errorf("image is larger than %d MB", MaxImageBytes>>20)
	}
	mt, err := mimetype.DetectFile(resolved)
	if err != nil {
		return Image{}, fmt.Errorf("detect image type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, fmt.Errorf("%w: detected %s", api.ErrNotImage, mt.String())
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	return Image{Path: resolved, Name: filepath.Base(resolved), MIME: mt.String(), Data: data}, nil
}
