// Package poster probes thumbnail images shown before the first video frame.
//
// Only the image header is read, so probing a large poster is cheap. PNG,
// JPEG, GIF and WebP are recognized.
package poster

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/go-drift/videooverlay/pkg/graphics"
)

// ErrUnknownFormat is returned for images in a format that is not registered.
var ErrUnknownFormat = image.ErrFormat

// Info describes a probed poster.
type Info struct {
	Format string
	Size   graphics.Size
}

// AspectRatio returns width/height, or 0 for an empty image.
func (i Info) AspectRatio() float64 {
	if i.Size.Height == 0 {
		return 0
	}
	return i.Size.Width / i.Size.Height
}

// FitWidth returns the size of the poster scaled to the given width.
func (i Info) FitWidth(width float64) graphics.Size {
	ratio := i.AspectRatio()
	if ratio == 0 {
		return graphics.Size{Width: width}
	}
	return graphics.Size{Width: width, Height: width / ratio}
}

// Probe reads an image header from r.
func Probe(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(bufio.NewReader(r))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, ErrUnknownFormat
		}
		return Info{}, fmt.Errorf("poster: decode header: %w", err)
	}
	return Info{
		Format: format,
		Size:   graphics.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)},
	}, nil
}

// ProbeFile probes the image at path.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("poster: %w", err)
	}
	defer f.Close()
	info, err := Probe(f)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// ProbeLocal probes ref when it names a local file. Empty references and
// URLs are not probed and report ok == false.
func ProbeLocal(ref string) (info Info, ok bool, err error) {
	if ref == "" || strings.Contains(ref, "://") {
		return Info{}, false, nil
	}
	info, err = ProbeFile(ref)
	return info, err == nil, err
}
