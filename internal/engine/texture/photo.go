// Package texture decodes page photos and uploads them as OpenGL textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
)

// DefaultMaxSize bounds the longest side of an uploaded photo.
const DefaultMaxSize = 1024

// photoExts lists the extensions ListPhotos picks up.
var photoExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// Decode decodes PNG, JPEG, GIF or BMP data.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Fit scales img down so its longest side is at most maxSize, keeping the
// aspect ratio. Smaller images are only converted.
func Fit(img image.Image, maxSize uint) *image.RGBA {
	b := img.Bounds()
	if maxSize > 0 && (uint(b.Dx()) > maxSize || uint(b.Dy()) > maxSize) {
		img = resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
	}
	return ToRGBA(img)
}

// ToRGBA converts any image.Image to *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// CoverCrop trims img to the given aspect ratio (width / height) around its
// center, so a photo fills the page without stretching.
func CoverCrop(img *image.RGBA, aspect float32) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || aspect <= 0 {
		return img
	}

	cw, ch := w, int(float32(w)/aspect+0.5)
	if ch > h {
		cw, ch = int(float32(h)*aspect+0.5), h
	}
	if cw == w && ch == h {
		return img
	}

	x0 := b.Min.X + (w-cw)/2
	y0 := b.Min.Y + (h-ch)/2
	return ToRGBA(img.SubImage(image.Rect(x0, y0, x0+cw, y0+ch)))
}

// LoadPhoto reads, decodes and fits a photo for a page of the given aspect.
func LoadPhoto(path string, maxSize uint, aspect float32) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return CoverCrop(Fit(img, maxSize), aspect), nil
}

// ListPhotos returns the image files in dir sorted by name.
func ListPhotos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !photoExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
