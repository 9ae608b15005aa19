// Package imageio moves images between the editor and the outside world.
//
// It covers three channels:
//   - files: LoadFile decodes PNG, JPEG, BMP and GIF; Save encodes by extension
//   - the system clipboard: Clipboard reads and writes PNG payloads
//   - raw bytes: Decode normalises any supported stream into an imaging.Image
//
// # Format Normalisation
//
// PNG and GIF sources become imaging.FormatRGBA. JPEG and BMP sources become
// imaging.FormatRGB. When saving, JPEG and BMP targets are flattened to RGB first.
//
// # Atomic Writes
//
// Save encodes into a temporary file next to the target and renames it into place,
// so a failed save never leaves a truncated image behind.
package imageio
