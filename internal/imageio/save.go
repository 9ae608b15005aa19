package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	img "github.com/ironsheep/quicksnap/internal/imaging"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// saveMode is the permission given to newly created image files, before umask.
const saveMode os.FileMode = 0o644

// saveFormats maps lower-case extensions to encoders.
var saveFormats = map[string]imaging.Format{
	".png":  imaging.PNG,
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".bmp":  imaging.BMP,
	".gif":  imaging.GIF,
}

// encode is replaced in tests to simulate encoder failures.
var encode = func(w io.Writer, src *img.Image, format imaging.Format) error {
	return imaging.Encode(w, src.NRGBA(), format, imaging.JPEGQuality(JPEGQuality))
}

// FormatFromPath returns the encoder chosen for path.
// Unknown or missing extensions select PNG.
func FormatFromPath(path string) imaging.Format {
	if f, ok := saveFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return imaging.PNG
}

// HasImageExtension reports whether path ends in one of the supported save extensions.
func HasImageExtension(path string) bool {
	_, ok := saveFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// createTemp creates a new file in dir named like ".quicksnap-XXXX<ext>" with perm
// (subject to umask).
func createTemp(dir, ext string, perm os.FileMode) (*os.File, error) {
	for i := 0; i < 100; i++ {
		name := filepath.Join(dir, ".quicksnap-"+strconv.FormatUint(uint64(rand.Uint32()), 36)+ext)
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no unused temporary name in %s", dir)
}

// Save encodes src to path, choosing the format from the extension.
//
// JPEG and BMP have no alpha channel, so RGBA images are flattened to RGB before
// encoding. The data is written to a temporary file in the destination directory and
// renamed over path only after encoding succeeded.
func Save(src *img.Image, path string) (err error) {
	format := FormatFromPath(path)
	if format == imaging.JPEG || format == imaging.BMP {
		src = src.ToRGB()
	}

	dir := filepath.Dir(path)
	perm, existing := saveMode, false
	if fi, statErr := os.Stat(path); statErr == nil && fi.Mode().IsRegular() {
		perm, existing = fi.Mode().Perm(), true
	}

	tmp, err := createTemp(dir, filepath.Ext(path), perm)
	if err != nil {
		return fmt.Errorf("failed to create file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = encode(tmp, src, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if existing {
		// umask may have narrowed the mode of the replacement
		if err = tmp.Chmod(perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s: %w", path, err)
		}
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes src as PNG in memory.
func EncodePNG(src *img.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src.NRGBA(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
